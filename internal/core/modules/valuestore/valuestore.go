// Package valuestore 实现单值存储模块
//
// 🎯 **核心职责**
// - 维护一个全局uint32存储槽（StoreValue操作整体覆写）
// - 演示最小模块形态：单存储单元、单操作、单事件
//
// 📋 **存储单元**
//   - value: 空键 → 当前存储值（4字节big-endian）
package valuestore

import (
	"context"
	"encoding/binary"
	"fmt"

	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"github.com/weisyn/kernel/pkg/types"
)

// 存储单元名
const cellValue = "value"

// 模块声明的错误名
const (
	errNameValueTooLarge = "ValueTooLarge"
)

// 确保 Module 实现运行时契约
var _ runtimeInterface.Module = (*Module)(nil)

// Capability 单值存储模块的能力契约
type Capability interface {
	// MaxStoredValue 允许写入的最大值
	MaxStoredValue() uint32

	// StoreValueWeight StoreValue操作的声明权重
	StoreValueWeight() types.Weight
}

// Module 单值存储模块
type Module struct {
	index uint8
	cap   Capability
}

// New 创建单值存储模块并绑定能力
func New(index uint8, capability Capability) (*Module, error) {
	if capability == nil {
		return nil, fmt.Errorf("valuestore: 能力绑定不能为空")
	}
	return &Module{index: index, cap: capability}, nil
}

// Index 模块索引
func (m *Module) Index() uint8 { return m.index }

// Name 模块名称
func (m *Module) Name() string { return "valuestore" }

// Weigh 操作成本函数
func (m *Module) Weigh(call types.Call) (types.Weight, types.DispatchClass, error) {
	switch call.(type) {
	case *StoreValueCall:
		return m.cap.StoreValueWeight(), types.ClassNormal, nil
	default:
		return types.ZeroWeight, types.ClassNormal, types.ErrUnknownCall
	}
}

// Dispatch 执行一次操作调用
func (m *Module) Dispatch(ctx context.Context, origin types.Origin, call types.Call, state runtimeInterface.StateWriter, events runtimeInterface.EventSink) (*runtimeInterface.DispatchResult, error) {
	switch c := call.(type) {
	case *StoreValueCall:
		return m.storeValue(ctx, origin, c, state, events)
	default:
		return nil, types.ErrUnknownCall
	}
}

// storeValue 整体覆写存储槽
func (m *Module) storeValue(ctx context.Context, origin types.Origin, call *StoreValueCall, state runtimeInterface.StateWriter, events runtimeInterface.EventSink) (*runtimeInterface.DispatchResult, error) {
	who, err := origin.EnsureSigned()
	if err != nil {
		return nil, err
	}
	if call.Value > m.cap.MaxStoredValue() {
		return nil, types.NewModuleError(m.index, errNameValueTooLarge)
	}

	var raw [4]byte
	binary.BigEndian.PutUint32(raw[:], call.Value)
	if err := state.Set(cellValue, nil, raw[:]); err != nil {
		return nil, err
	}

	events.Deposit(&ValueStoredEvent{Value: call.Value, Who: who.String()})
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

// SetValue 直接写入存储槽（创世加载专用，绕过权重与来源检查）
func SetValue(state runtimeInterface.StateWriter, value uint32) error {
	var raw [4]byte
	binary.BigEndian.PutUint32(raw[:], value)
	return state.Set(cellValue, nil, raw[:])
}

// CurrentValue 读取当前存储值（不存在时返回0）
func CurrentValue(state runtimeInterface.StateReader) (uint32, error) {
	raw, err := state.Get(cellValue, nil)
	if err != nil {
		return 0, fmt.Errorf("读取存储值失败: %w", err)
	}
	if len(raw) < 4 {
		return 0, nil
	}
	return binary.BigEndian.Uint32(raw), nil
}
