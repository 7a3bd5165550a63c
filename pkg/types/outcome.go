// Package types 调度结果与错误分类定义
//
// 🎯 **错误分类体系**
//   - 结构性错误：命令在任何收费/状态变更前被拒绝（未知模块、序号错误等）
//   - 资源性错误：限额或余额不足导致的拒绝，可在后续区块重新提交
//   - 模块功能性错误：模块自行声明的失败，照常收费并推进序号
//   - 致命错误：组合期缺陷在运行期暴露，必须中止整个区块处理
package types

import (
	"errors"
	"fmt"
	"math/big"
)

// ============================================================================
//                           结构性 / 资源性错误哨兵
// ============================================================================

var (
	// ErrUnknownModule 目标模块索引未注册
	ErrUnknownModule = errors.New("未知模块索引")

	// ErrUnknownCall 模块存在但操作索引未定义
	ErrUnknownCall = errors.New("未知操作索引")

	// ErrBadSequence 命令序号与账户链上序号不匹配
	ErrBadSequence = errors.New("命令序号不匹配")

	// ErrMalformedExtrinsic 命令结构不完整或无法解析
	ErrMalformedExtrinsic = errors.New("命令格式错误")

	// ErrBadOrigin 调用来源不满足操作要求的授权级别
	ErrBadOrigin = errors.New("调用来源无效")

	// ErrExceedsBlockLimit 累计权重将超过区块限额
	ErrExceedsBlockLimit = errors.New("超过区块权重限额")

	// ErrInsufficientFunds 付费账户余额不足以覆盖费用
	ErrInsufficientFunds = errors.New("余额不足以支付费用")
)

// ============================================================================
//                           模块功能性错误
// ============================================================================

// ModuleError 模块声明的功能性错误
//
// 📋 **语义**：命令格式合法且消耗了资源，但请求的效果未发生。
// 费用照常收取，序号照常推进，该操作的局部状态变更被丢弃。
type ModuleError struct {
	Module uint8  // 产生错误的模块索引
	Name   string // 模块内声明的错误名称
}

// NewModuleError 构造模块功能性错误
func NewModuleError(module uint8, name string) *ModuleError {
	return &ModuleError{Module: module, Name: name}
}

// Error 实现error接口
func (e *ModuleError) Error() string {
	return fmt.Sprintf("模块错误 [module=%d, name=%s]", e.Module, e.Name)
}

// AsModuleError 判断错误链中是否包含模块功能性错误
func AsModuleError(err error) (*ModuleError, bool) {
	var me *ModuleError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}

// ============================================================================
//                           致命错误（中止区块处理）
// ============================================================================

// FatalError 致命不变量违背
//
// ⚠️ **注意**：致命错误表示组合期缺陷（如模块索引冲突、记账不变量被破坏），
// 继续处理会破坏"累计权重不超过限额"这一核心不变量，
// 因此必须中止整个区块的处理，而非静默吸收。
type FatalError struct {
	Reason string
	Err    error
}

// NewFatalError 构造致命错误
func NewFatalError(reason string, err error) *FatalError {
	return &FatalError{Reason: reason, Err: err}
}

// Error 实现error接口
func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("致命错误: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("致命错误: %s", e.Reason)
}

// Unwrap 支持errors.Is/As链式判断
func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal 判断错误是否为致命错误
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// ============================================================================
//                           调度结果
// ============================================================================

// DispatchOutcome 单条命令的调度结果
//
// 🎯 **功能**：记录一次命令应用的成功/失败、实际消耗权重与费用
// 📋 **生命周期**：每条命令恰好产生一次，从不自动重试
type DispatchOutcome struct {
	// Success 调度是否成功
	Success bool `json:"success"`

	// Class 命令的调度分类
	Class DispatchClass `json:"class"`

	// WeightConsumed 实际记账的消耗权重
	WeightConsumed Weight `json:"weight_consumed"`

	// FeePaid 实际收取的费用（未收费时为零）
	FeePaid *big.Int `json:"fee_paid"`

	// Err 失败原因（成功时为nil）
	Err error `json:"-"`
}
