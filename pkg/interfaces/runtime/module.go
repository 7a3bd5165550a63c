// Package runtime 提供内核运行时的模块契约定义
//
// 📋 **运行时模块契约 (Runtime Module Contract)**
//
// 本文件定义了可插拔运行时模块必须实现的接口，专注于：
// - 模块身份：注册表内唯一的模块索引与名称
// - 操作调度：调用路由、成本函数（声明权重）
// - 区块钩子：每区块前后按注册顺序执行的钩子
// - 状态访问：模块独占的存储单元读写视图
//
// 🎯 **设计原则**
// - 能力契约：模块只引用抽象接口，宿主在组合期一次性绑定具体实现，
//   缺失或冲突的绑定是组合失败，绝不推迟到运行期
// - 全有或全无：操作失败时不得留下任何局部状态变更
// - 确定性：操作必须确定性地选择成功或一个具名错误
package runtime

import (
	"context"

	"github.com/weisyn/kernel/pkg/types"
)

// ============================================================================
//                           状态访问视图
// ============================================================================

// StateReader 模块存储单元的只读视图
//
// 视图在创建时即绑定到单个模块的键空间，
// 模块之间不可能越界读取对方的存储单元。
type StateReader interface {
	// Get 读取存储单元中指定键的值
	// 单值存储单元使用nil键；键不存在时返回nil值和nil错误
	Get(cell string, key []byte) ([]byte, error)

	// Has 检查存储单元中指定键是否存在
	Has(cell string, key []byte) (bool, error)
}

// StateWriter 模块存储单元的读写视图
//
// ⚠️ **注意**：只有当前正在调度的模块可以通过本视图写入自己的存储单元，
// 区块记账状态只由调度执行器修改，模块无法触及。
type StateWriter interface {
	StateReader

	// Set 写入存储单元中指定键的值
	Set(cell string, key, value []byte) error

	// Delete 删除存储单元中指定键的值
	Delete(cell string, key []byte) error
}

// ============================================================================
//                           事件与调度结果
// ============================================================================

// EventSink 模块事件接收器
//
// 由调度执行器在调用前绑定模块索引与命令索引，
// 模块只负责投递自己的事件负载。
type EventSink interface {
	// Deposit 投递一条事件负载
	Deposit(payload interface{})
}

// DispatchResult 模块操作的执行结果
type DispatchResult struct {
	// ActualWeight 实际消耗权重
	// nil 表示按声明权重记账；不为nil时取声明权重与实际权重的较小值
	ActualWeight *types.Weight
}

// ============================================================================
//                           模块契约
// ============================================================================

// Module 运行时模块接口
//
// 🎯 **业务语义**：一个自包含的单元，拥有类型化的持久存储单元、
// 一组可调用操作、一组事件与一组具名错误
type Module interface {
	// Index 模块在注册表内的唯一索引
	// 组合期固定，此后不可变；索引复用被禁止
	Index() uint8

	// Name 模块名称（用于日志与错误描述）
	Name() string

	// Weigh 操作成本函数
	// 返回调用的声明权重与调度分类；声明权重是离线测量确立的
	// 纯函数结果，运行期不重新推导
	// 调用不属于本模块时返回 types.ErrUnknownCall
	Weigh(call types.Call) (types.Weight, types.DispatchClass, error)

	// Dispatch 执行一次操作调用
	//
	// 实现必须：
	//   (a) 校验origin是否满足操作要求的授权级别
	//   (b) 按文档化前置条件校验参数
	//   (c) 确定性地返回成功或一个具名错误（*types.ModuleError）
	//   (d) 错误时不留下任何局部状态变更（调用级覆盖层保证）
	Dispatch(ctx context.Context, origin types.Origin, call types.Call, state StateWriter, events EventSink) (*DispatchResult, error)

	// OnInitialize 区块前钩子（按注册顺序执行）
	// 返回钩子自身消耗的权重，计入区块累计量；
	// 若模块的终结钩子有不可忽略的开销，须在此处一并预先声明
	OnInitialize(ctx context.Context, height uint64, state StateWriter) types.Weight

	// OnFinalize 区块后钩子（按注册顺序执行）
	// 不单独返回权重：终结开销由OnInitialize的返回值预先声明，
	// 区块权重核算在终结阶段不再增长
	OnFinalize(ctx context.Context, height uint64, state StateWriter) error
}
