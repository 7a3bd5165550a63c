package balances_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/kernel/internal/core/infrastructure/storage/memory"
	"github.com/weisyn/kernel/internal/core/modules/balances"
	"github.com/weisyn/kernel/internal/core/state"
	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"github.com/weisyn/kernel/pkg/types"
)

type capability struct{}

func (capability) TransferWeight() types.Weight { return types.NewWeight(200_000_000, 8_000) }

type collectSink struct {
	payloads []interface{}
}

func (s *collectSink) Deposit(payload interface{}) {
	s.payloads = append(s.payloads, payload)
}

func accountID(b byte) types.AccountID {
	var id types.AccountID
	id[0] = b
	return id
}

func newView(t *testing.T) runtimeInterface.StateWriter {
	t.Helper()
	mgr, err := state.NewManager(memory.New(), 4, nil)
	require.NoError(t, err)
	bs, err := mgr.BeginBlock(1)
	require.NoError(t, err)
	return bs.View(context.Background(), 2)
}

// TestModule_Transfer_MovesValue 验证转账在双方账户间守恒移动
func TestModule_Transfer_MovesValue(t *testing.T) {
	// Arrange
	mod, err := balances.New(2, capability{})
	require.NoError(t, err)
	ctx := context.Background()
	view := newView(t)
	alice, bob := accountID(1), accountID(2)
	require.NoError(t, mod.Deposit(ctx, view, alice, big.NewInt(100)))
	sink := &collectSink{}

	// Act
	_, err = mod.Dispatch(ctx, types.SignedOrigin(alice),
		&balances.TransferCall{Index: 2, To: bob, Value: big.NewInt(30)}, view, sink)

	// Assert
	require.NoError(t, err)
	fromBalance, err := mod.FreeBalance(ctx, view, alice)
	require.NoError(t, err)
	toBalance, err := mod.FreeBalance(ctx, view, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(70), fromBalance.Int64())
	assert.Equal(t, int64(30), toBalance.Int64())

	require.Len(t, sink.payloads, 1)
	evt, ok := sink.payloads[0].(*balances.TransferredEvent)
	require.True(t, ok)
	assert.Equal(t, alice.String(), evt.From)
	assert.Equal(t, bob.String(), evt.To)
	assert.Equal(t, "30", evt.Value)
}

// TestModule_Transfer_Insufficient_ModuleError 验证余额不足返回具名模块错误
func TestModule_Transfer_Insufficient_ModuleError(t *testing.T) {
	mod, err := balances.New(2, capability{})
	require.NoError(t, err)
	ctx := context.Background()
	view := newView(t)
	alice, bob := accountID(1), accountID(2)
	require.NoError(t, mod.Deposit(ctx, view, alice, big.NewInt(10)))

	_, err = mod.Dispatch(ctx, types.SignedOrigin(alice),
		&balances.TransferCall{Index: 2, To: bob, Value: big.NewInt(11)}, view, &collectSink{})

	me, ok := types.AsModuleError(err)
	require.True(t, ok)
	assert.Equal(t, "InsufficientBalance", me.Name)
	assert.Equal(t, uint8(2), me.Module)

	// 失败后双方余额不变
	fromBalance, err := mod.FreeBalance(ctx, view, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(10), fromBalance.Int64())
}

// TestModule_Transfer_SelfTransfer_ModuleError 验证自转账被拒绝且余额不变
func TestModule_Transfer_SelfTransfer_ModuleError(t *testing.T) {
	// Arrange
	mod, err := balances.New(2, capability{})
	require.NoError(t, err)
	ctx := context.Background()
	view := newView(t)
	alice := accountID(1)
	require.NoError(t, mod.Deposit(ctx, view, alice, big.NewInt(100)))
	sink := &collectSink{}

	// Act
	_, err = mod.Dispatch(ctx, types.SignedOrigin(alice),
		&balances.TransferCall{Index: 2, To: alice, Value: big.NewInt(50)}, view, sink)

	// Assert
	me, ok := types.AsModuleError(err)
	require.True(t, ok)
	assert.Equal(t, "SelfTransfer", me.Name)
	assert.Equal(t, uint8(2), me.Module)

	// 余额保持100，不可凭空增发
	balance, err := mod.FreeBalance(ctx, view, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance.Int64())
	assert.Empty(t, sink.payloads)
}

// TestModule_Transfer_ZeroOrNil_ModuleError 验证非正金额被拒绝
func TestModule_Transfer_ZeroOrNil_ModuleError(t *testing.T) {
	mod, err := balances.New(2, capability{})
	require.NoError(t, err)
	ctx := context.Background()
	view := newView(t)
	alice := accountID(1)

	for _, value := range []*big.Int{nil, big.NewInt(0), big.NewInt(-5)} {
		_, err = mod.Dispatch(ctx, types.SignedOrigin(alice),
			&balances.TransferCall{Index: 2, To: accountID(2), Value: value}, view, &collectSink{})
		me, ok := types.AsModuleError(err)
		require.True(t, ok)
		assert.Equal(t, "ZeroValue", me.Name)
	}
}

// TestModule_Transfer_Overflow_ModuleError 验证接收方越过128位上限被拒绝
func TestModule_Transfer_Overflow_ModuleError(t *testing.T) {
	mod, err := balances.New(2, capability{})
	require.NoError(t, err)
	ctx := context.Background()
	view := newView(t)
	alice, bob := accountID(1), accountID(2)

	// bob已持有上限值，任何入账都会越界
	limit := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	require.NoError(t, mod.Deposit(ctx, view, bob, limit))
	require.NoError(t, mod.Deposit(ctx, view, alice, big.NewInt(10)))

	_, err = mod.Dispatch(ctx, types.SignedOrigin(alice),
		&balances.TransferCall{Index: 2, To: bob, Value: big.NewInt(1)}, view, &collectSink{})

	me, ok := types.AsModuleError(err)
	require.True(t, ok)
	assert.Equal(t, "Overflow", me.Name)
}

// TestModule_Withdraw_Insufficient_SentinelError 验证扣款路径返回资源性哨兵错误
func TestModule_Withdraw_Insufficient_SentinelError(t *testing.T) {
	mod, err := balances.New(2, capability{})
	require.NoError(t, err)
	ctx := context.Background()
	view := newView(t)
	alice := accountID(1)
	require.NoError(t, mod.Deposit(ctx, view, alice, big.NewInt(3)))

	err = mod.Withdraw(ctx, view, alice, big.NewInt(4))
	assert.ErrorIs(t, err, types.ErrInsufficientFunds)

	balance, err := mod.FreeBalance(ctx, view, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(3), balance.Int64(), "失败的扣款不得动账")
}

// TestModule_WithdrawDeposit_RoundTrip 验证存取款对称
func TestModule_WithdrawDeposit_RoundTrip(t *testing.T) {
	mod, err := balances.New(2, capability{})
	require.NoError(t, err)
	ctx := context.Background()
	view := newView(t)
	alice := accountID(1)

	require.NoError(t, mod.Deposit(ctx, view, alice, big.NewInt(50)))
	require.NoError(t, mod.Withdraw(ctx, view, alice, big.NewInt(20)))
	require.NoError(t, mod.Deposit(ctx, view, alice, big.NewInt(5)))

	balance, err := mod.FreeBalance(ctx, view, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(35), balance.Int64())
}

// TestModule_Transfer_RequiresSignedOrigin 验证匿名来源被拒绝
func TestModule_Transfer_RequiresSignedOrigin(t *testing.T) {
	mod, err := balances.New(2, capability{})
	require.NoError(t, err)

	_, err = mod.Dispatch(context.Background(), types.NoneOrigin(),
		&balances.TransferCall{Index: 2, To: accountID(2), Value: big.NewInt(1)},
		newView(t), &collectSink{})

	assert.ErrorIs(t, err, types.ErrBadOrigin)
}
