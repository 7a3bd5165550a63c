// Package system 实现系统模块
//
// 🎯 **核心职责**
// - 账户序号（nonce）的存储与推进（实现 runtime.Sequencer 能力）
// - Remark 操作：将任意数据摘要上链作为备注
//
// 📋 **存储单元**
//   - account: 账户标识 → 序号（8字节big-endian）
package system

import (
	"context"
	"encoding/binary"
	"fmt"

	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"github.com/weisyn/kernel/pkg/types"
	"golang.org/x/crypto/blake2b"
)

// 存储单元名
const cellAccount = "account"

// 模块声明的错误名
const errNameRemarkTooLarge = "RemarkTooLarge"

// 确保 Module 实现运行时契约与序号能力
var (
	_ runtimeInterface.Module    = (*Module)(nil)
	_ runtimeInterface.Sequencer = (*Module)(nil)
)

// Capability 系统模块的能力契约
//
// 宿主在组合期绑定一次，绑定缺失是组合失败而非运行期错误。
type Capability interface {
	// RemarkBaseWeight Remark操作的基础权重
	RemarkBaseWeight() types.Weight

	// RemarkByteWeight Remark操作每字节的附加计算权重
	RemarkByteWeight() uint64

	// MaxRemarkLen Remark数据的最大字节数
	MaxRemarkLen() int
}

// Module 系统模块
type Module struct {
	index uint8
	cap   Capability
}

// New 创建系统模块并绑定能力
func New(index uint8, capability Capability) (*Module, error) {
	if capability == nil {
		return nil, fmt.Errorf("system: 能力绑定不能为空")
	}
	if capability.MaxRemarkLen() <= 0 {
		return nil, fmt.Errorf("system: MaxRemarkLen 必须为正数")
	}
	return &Module{index: index, cap: capability}, nil
}

// Index 模块索引
func (m *Module) Index() uint8 { return m.index }

// Name 模块名称
func (m *Module) Name() string { return "system" }

// Weigh 操作成本函数
func (m *Module) Weigh(call types.Call) (types.Weight, types.DispatchClass, error) {
	switch c := call.(type) {
	case *RemarkCall:
		weight := m.cap.RemarkBaseWeight().Add(
			types.NewWeight(uint64(len(c.Data))*m.cap.RemarkByteWeight(), 0))
		return weight, types.ClassNormal, nil
	default:
		return types.ZeroWeight, types.ClassNormal, types.ErrUnknownCall
	}
}

// Dispatch 执行一次操作调用
func (m *Module) Dispatch(ctx context.Context, origin types.Origin, call types.Call, state runtimeInterface.StateWriter, events runtimeInterface.EventSink) (*runtimeInterface.DispatchResult, error) {
	switch c := call.(type) {
	case *RemarkCall:
		return m.remark(origin, c, events)
	default:
		return nil, types.ErrUnknownCall
	}
}

// remark 记录一条链上备注
// 数据本身不持久化，只发出其摘要事件
func (m *Module) remark(origin types.Origin, call *RemarkCall, events runtimeInterface.EventSink) (*runtimeInterface.DispatchResult, error) {
	who, err := origin.EnsureSigned()
	if err != nil {
		return nil, err
	}
	if len(call.Data) > m.cap.MaxRemarkLen() {
		return nil, types.NewModuleError(m.index, errNameRemarkTooLarge)
	}

	digest := blake2b.Sum256(call.Data)
	events.Deposit(&RemarkedEvent{
		Who:  who.String(),
		Hash: fmt.Sprintf("%x", digest),
	})
	return nil, nil
}

// OnInitialize 区块前钩子
func (m *Module) OnInitialize(ctx context.Context, height uint64, state runtimeInterface.StateWriter) types.Weight {
	return types.ZeroWeight
}

// OnFinalize 区块后钩子
func (m *Module) OnFinalize(ctx context.Context, height uint64, state runtimeInterface.StateWriter) error {
	return nil
}

// ============================================================================
//                           Sequencer 能力实现
// ============================================================================

// Nonce 查询账户当前序号
func (m *Module) Nonce(ctx context.Context, state runtimeInterface.StateReader, who types.AccountID) (uint64, error) {
	raw, err := state.Get(cellAccount, who.Bytes())
	if err != nil {
		return 0, fmt.Errorf("读取账户序号失败: %w", err)
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, fmt.Errorf("账户序号编码无效: 长度%d", len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}

// BumpNonce 将账户序号加一
func (m *Module) BumpNonce(ctx context.Context, state runtimeInterface.StateWriter, who types.AccountID) error {
	current, err := m.Nonce(ctx, state, who)
	if err != nil {
		return err
	}
	var encoded [8]byte
	binary.BigEndian.PutUint64(encoded[:], current+1)
	return state.Set(cellAccount, who.Bytes(), encoded[:])
}
