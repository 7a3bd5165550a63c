// Package balances 实现余额模块
//
// 🎯 **核心职责**
// - 账户余额的存储与转移（Transfer操作）
// - 实现 runtime.Currency 能力，供费用引擎扣款
//
// 📋 **存储单元**
//   - balance: 账户标识 → 余额（big-endian大整数，128位范围）
//
// ⚠️ **不变量**：余额永不为负；任何余额写入都不得超过128位无符号范围
package balances

import (
	"context"
	"fmt"
	"math/big"

	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"github.com/weisyn/kernel/pkg/types"
)

// 存储单元名
const cellBalance = "balance"

// 模块声明的错误名
const (
	errNameInsufficientBalance = "InsufficientBalance"
	errNameOverflow            = "Overflow"
	errNameZeroValue           = "ZeroValue"
	errNameSelfTransfer        = "SelfTransfer"
)

// maxBalance 余额上限（2^128 - 1）
var maxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// 确保 Module 实现运行时契约与货币能力
var (
	_ runtimeInterface.Module   = (*Module)(nil)
	_ runtimeInterface.Currency = (*Module)(nil)
)

// Capability 余额模块的能力契约
type Capability interface {
	// TransferWeight Transfer操作的声明权重
	TransferWeight() types.Weight
}

// Module 余额模块
type Module struct {
	index uint8
	cap   Capability
}

// New 创建余额模块并绑定能力
func New(index uint8, capability Capability) (*Module, error) {
	if capability == nil {
		return nil, fmt.Errorf("balances: 能力绑定不能为空")
	}
	return &Module{index: index, cap: capability}, nil
}

// Index 模块索引
func (m *Module) Index() uint8 { return m.index }

// Name 模块名称
func (m *Module) Name() string { return "balances" }

// Weigh 操作成本函数
func (m *Module) Weigh(call types.Call) (types.Weight, types.DispatchClass, error) {
	switch call.(type) {
	case *TransferCall:
		return m.cap.TransferWeight(), types.ClassNormal, nil
	default:
		return types.ZeroWeight, types.ClassNormal, types.ErrUnknownCall
	}
}

// Dispatch 执行一次操作调用
func (m *Module) Dispatch(ctx context.Context, origin types.Origin, call types.Call, state runtimeInterface.StateWriter, events runtimeInterface.EventSink) (*runtimeInterface.DispatchResult, error) {
	switch c := call.(type) {
	case *TransferCall:
		return m.transfer(ctx, origin, c, state, events)
	default:
		return nil, types.ErrUnknownCall
	}
}

// transfer 在两个账户之间转移余额
func (m *Module) transfer(ctx context.Context, origin types.Origin, call *TransferCall, state runtimeInterface.StateWriter, events runtimeInterface.EventSink) (*runtimeInterface.DispatchResult, error) {
	from, err := origin.EnsureSigned()
	if err != nil {
		return nil, err
	}
	if call.Value == nil || call.Value.Sign() <= 0 {
		return nil, types.NewModuleError(m.index, errNameZeroValue)
	}
	// 自转账会让两次读取返回同一笔转出前余额，后写覆盖前写导致凭空增发
	if from == call.To {
		return nil, types.NewModuleError(m.index, errNameSelfTransfer)
	}

	fromBalance, err := m.readBalance(state, from)
	if err != nil {
		return nil, err
	}
	if fromBalance.Cmp(call.Value) < 0 {
		return nil, types.NewModuleError(m.index, errNameInsufficientBalance)
	}

	toBalance, err := m.readBalance(state, call.To)
	if err != nil {
		return nil, err
	}
	newToBalance := new(big.Int).Add(toBalance, call.Value)
	if newToBalance.Cmp(maxBalance) > 0 {
		return nil, types.NewModuleError(m.index, errNameOverflow)
	}

	if err := m.writeBalance(state, from, new(big.Int).Sub(fromBalance, call.Value)); err != nil {
		return nil, err
	}
	if err := m.writeBalance(state, call.To, newToBalance); err != nil {
		return nil, err
	}

	events.Deposit(&TransferredEvent{
		From:  from.String(),
		To:    call.To.String(),
		Value: call.Value.String(),
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
//                           Currency 能力实现
// ============================================================================

// FreeBalance 查询账户可用余额
func (m *Module) FreeBalance(ctx context.Context, state runtimeInterface.StateReader, who types.AccountID) (*big.Int, error) {
	return m.readBalanceFrom(state, who)
}

// Withdraw 从账户扣除金额
// 余额不足时返回 types.ErrInsufficientFunds，不产生任何状态变更
func (m *Module) Withdraw(ctx context.Context, state runtimeInterface.StateWriter, who types.AccountID, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("balances: 扣款金额不能为负")
	}

	balance, err := m.readBalance(state, who)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return types.ErrInsufficientFunds
	}
	return m.writeBalance(state, who, new(big.Int).Sub(balance, amount))
}

// Deposit 向账户存入金额
func (m *Module) Deposit(ctx context.Context, state runtimeInterface.StateWriter, who types.AccountID, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("balances: 存入金额不能为负")
	}

	balance, err := m.readBalance(state, who)
	if err != nil {
		return err
	}
	newBalance := new(big.Int).Add(balance, amount)
	if newBalance.Cmp(maxBalance) > 0 {
		return fmt.Errorf("balances: 存入后余额超过上限")
	}
	return m.writeBalance(state, who, newBalance)
}

// ============================================================================
//                           内部辅助
// ============================================================================

func (m *Module) readBalance(state runtimeInterface.StateReader, who types.AccountID) (*big.Int, error) {
	return m.readBalanceFrom(state, who)
}

func (m *Module) readBalanceFrom(state runtimeInterface.StateReader, who types.AccountID) (*big.Int, error) {
	raw, err := state.Get(cellBalance, who.Bytes())
	if err != nil {
		return nil, fmt.Errorf("读取账户余额失败: %w", err)
	}
	return types.BalanceFromBytes(raw), nil
}

func (m *Module) writeBalance(state runtimeInterface.StateWriter, who types.AccountID, value *big.Int) error {
	return state.Set(cellBalance, who.Bytes(), types.BalanceToBytes(value))
}
