package fee_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chainconfig "github.com/weisyn/kernel/internal/config/chain"
	"github.com/weisyn/kernel/internal/core/fee"
	"github.com/weisyn/kernel/internal/core/infrastructure/storage/memory"
	"github.com/weisyn/kernel/internal/core/modules/balances"
	"github.com/weisyn/kernel/internal/core/state"
	"github.com/weisyn/kernel/pkg/types"
)

type transferCapability struct{}

func (transferCapability) TransferWeight() types.Weight { return types.NewWeight(1, 0) }

func newEngine(t *testing.T, options *chainconfig.ChainOptions) (*fee.Engine, *balances.Module) {
	t.Helper()
	currency, err := balances.New(2, transferCapability{})
	require.NoError(t, err)
	engine, err := fee.New(options, currency)
	require.NoError(t, err)
	return engine, currency
}

func defaultOptions() *chainconfig.ChainOptions {
	return &chainconfig.ChainOptions{
		ComputeFeeRate: 1,
		ProofFeeRate:   1,
		WeightFeeScale: 1_000_000,
		LengthFeeRate:  0,
	}
}

// TestEngine_Assess_WeightOnly 验证权重换算：每百万权重单位收1费用单位
func TestEngine_Assess_WeightOnly(t *testing.T) {
	engine, _ := newEngine(t, defaultOptions())

	got := engine.Assess(types.NewWeight(9_000_000, 0), 0, nil)

	assert.Equal(t, int64(9), got.Int64())
}

// TestEngine_Assess_AllComponents 验证计算、证明、长度与小费各分量相加
func TestEngine_Assess_AllComponents(t *testing.T) {
	options := defaultOptions()
	options.ProofFeeRate = 2
	options.LengthFeeRate = 3
	engine, _ := newEngine(t, options)

	// compute: 5_000_000/1_000_000 = 5
	// proof:   4_000_000*2/1_000_000 = 8
	// length:  10*3 = 30
	// tip:     7
	got := engine.Assess(types.NewWeight(5_000_000, 4_000_000), 10, big.NewInt(7))

	assert.Equal(t, int64(50), got.Int64())
}

// TestEngine_Assess_RoundsDown 验证换算除法向下取整
func TestEngine_Assess_RoundsDown(t *testing.T) {
	engine, _ := newEngine(t, defaultOptions())

	got := engine.Assess(types.NewWeight(1_999_999, 0), 0, nil)

	assert.Equal(t, int64(1), got.Int64())
}

// TestEngine_Assess_Monotonic 验证费用对权重单调不减
func TestEngine_Assess_Monotonic(t *testing.T) {
	engine, _ := newEngine(t, defaultOptions())

	previous := new(big.Int).Neg(big.NewInt(1))
	for _, compute := range []uint64{0, 1, 1_000_000, 5_000_000, 100_000_000} {
		current := engine.Assess(types.NewWeight(compute, 0), 0, nil)
		assert.True(t, current.Cmp(previous) >= 0,
			"权重 %d 的费用不应低于更小权重的费用", compute)
		previous = current
	}
}

// TestEngine_Charge_InsufficientFunds 验证余额不足时报哨兵错误且不动账
func TestEngine_Charge_InsufficientFunds(t *testing.T) {
	// Arrange
	engine, currency := newEngine(t, defaultOptions())
	mgr, err := state.NewManager(memory.New(), 4, nil)
	require.NoError(t, err)
	ctx := context.Background()
	bs, err := mgr.BeginBlock(1)
	require.NoError(t, err)
	view := bs.View(ctx, 2)

	var payer types.AccountID
	payer[0] = 1
	require.NoError(t, currency.Deposit(ctx, view, payer, big.NewInt(5)))

	// Act
	err = engine.Charge(ctx, view, payer, big.NewInt(10))

	// Assert
	assert.ErrorIs(t, err, types.ErrInsufficientFunds)
	balance, err := currency.FreeBalance(ctx, view, payer)
	require.NoError(t, err)
	assert.Equal(t, int64(5), balance.Int64(), "收费失败不得动账")
}

// TestEngine_Charge_DeductsExactAmount 验证收费精确扣减
func TestEngine_Charge_DeductsExactAmount(t *testing.T) {
	engine, currency := newEngine(t, defaultOptions())
	mgr, err := state.NewManager(memory.New(), 4, nil)
	require.NoError(t, err)
	ctx := context.Background()
	bs, err := mgr.BeginBlock(1)
	require.NoError(t, err)
	view := bs.View(ctx, 2)

	var payer types.AccountID
	payer[0] = 2
	require.NoError(t, currency.Deposit(ctx, view, payer, big.NewInt(100)))

	require.NoError(t, engine.Charge(ctx, view, payer, big.NewInt(9)))

	balance, err := currency.FreeBalance(ctx, view, payer)
	require.NoError(t, err)
	assert.Equal(t, int64(91), balance.Int64())
}

// TestNew_ZeroScale_Fails 验证权重费率分母为零在组合期失败
func TestNew_ZeroScale_Fails(t *testing.T) {
	options := defaultOptions()
	options.WeightFeeScale = 0
	currency, err := balances.New(2, transferCapability{})
	require.NoError(t, err)

	_, err = fee.New(options, currency)
	assert.Error(t, err)
}
