package types_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weisyn/kernel/pkg/types"
)

// TestWeight_Add_Saturates 验证加法在任一维度上溢时钳制在最大值
func TestWeight_Add_Saturates(t *testing.T) {
	// Arrange
	nearMax := types.NewWeight(math.MaxUint64-10, 100)

	// Act
	sum := nearMax.Add(types.NewWeight(100, 50))

	// Assert
	assert.Equal(t, uint64(math.MaxUint64), sum.Compute, "计算维度应钳制在最大值")
	assert.Equal(t, uint64(150), sum.ProofSize, "未上溢的维度应正常相加")
}

// TestWeight_Sub_Saturates 验证减法下溢时钳制在零
func TestWeight_Sub_Saturates(t *testing.T) {
	// Arrange
	small := types.NewWeight(10, 500)

	// Act
	diff := small.Sub(types.NewWeight(100, 200))

	// Assert
	assert.Equal(t, uint64(0), diff.Compute, "下溢维度应钳制在零")
	assert.Equal(t, uint64(300), diff.ProofSize)
}

// TestWeight_AnyExceeds_ComponentWise 验证限额检查按分量判定
func TestWeight_AnyExceeds_ComponentWise(t *testing.T) {
	limit := types.NewWeight(1000, 1000)

	assert.False(t, types.NewWeight(1000, 1000).AnyExceeds(limit), "恰好等于限额不算超限")
	assert.True(t, types.NewWeight(1001, 0).AnyExceeds(limit), "单一维度超限即算超限")
	assert.True(t, types.NewWeight(0, 1001).AnyExceeds(limit))
	assert.False(t, types.NewWeight(999, 999).AnyExceeds(limit))
}

// TestWeight_Min 验证按维度取较小值
func TestWeight_Min(t *testing.T) {
	a := types.NewWeight(100, 900)
	b := types.NewWeight(500, 300)

	got := a.Min(b)

	assert.Equal(t, types.NewWeight(100, 300), got)
}

// TestWeight_CmpScalar 验证标量序比较
func TestWeight_CmpScalar(t *testing.T) {
	assert.Equal(t, 0, types.NewWeight(5, 5).CmpScalar(types.NewWeight(5, 5)))
	assert.Equal(t, -1, types.NewWeight(4, 9).CmpScalar(types.NewWeight(5, 0)), "Compute优先")
	assert.Equal(t, 1, types.NewWeight(5, 6).CmpScalar(types.NewWeight(5, 5)))
}
