// Package types 提供内核系统的公共类型定义
//
// 本文件定义权重（Weight）相关的公共类型，权重是所有资源计量的统一货币
package types

import (
	"fmt"
	"math"
)

// ============================================================================
//                           权重模型（二维资源计量）
// ============================================================================

// Weight 二维资源消耗计量
//
// 🎯 **功能**：统一度量一次操作的资源成本
// 📋 **维度**：
//   - Compute: 计算时间单位（执行耗时的抽象刻度）
//   - ProofSize: 存储证明大小单位（状态访问产生的证明字节数）
//
// ⚠️ **注意**：所有算术运算均为饱和语义，永不上溢/下溢。
// 计量模型唯一不允许的失败模式是"少记账"，多记账是安全的。
type Weight struct {
	Compute   uint64 `json:"compute"`    // 计算时间单位
	ProofSize uint64 `json:"proof_size"` // 存储证明大小单位
}

// ZeroWeight 零权重
var ZeroWeight = Weight{}

// NewWeight 从固定分量构造权重
func NewWeight(compute, proofSize uint64) Weight {
	return Weight{Compute: compute, ProofSize: proofSize}
}

// MaxWeight 返回两个维度均为最大值的权重
func MaxWeight() Weight {
	return Weight{Compute: math.MaxUint64, ProofSize: math.MaxUint64}
}

// Add 饱和加法
// 任一维度上溢时钳制在 uint64 最大值
func (w Weight) Add(other Weight) Weight {
	return Weight{
		Compute:   saturatingAdd(w.Compute, other.Compute),
		ProofSize: saturatingAdd(w.ProofSize, other.ProofSize),
	}
}

// Sub 饱和减法
// 任一维度下溢时钳制在零
func (w Weight) Sub(other Weight) Weight {
	return Weight{
		Compute:   saturatingSub(w.Compute, other.Compute),
		ProofSize: saturatingSub(w.ProofSize, other.ProofSize),
	}
}

// AnyExceeds 限额检查（分量偏序）
// 任一维度超过限额即视为超限，用于区块限额判定
func (w Weight) AnyExceeds(limit Weight) bool {
	return w.Compute > limit.Compute || w.ProofSize > limit.ProofSize
}

// AllLte 所有维度均不超过限额
func (w Weight) AllLte(limit Weight) bool {
	return w.Compute <= limit.Compute && w.ProofSize <= limit.ProofSize
}

// CmpScalar 标量序比较（先比较 Compute，再比较 ProofSize）
// 返回 -1/0/1，用于需要全序的标量限额判定
func (w Weight) CmpScalar(other Weight) int {
	if w.Compute != other.Compute {
		if w.Compute < other.Compute {
			return -1
		}
		return 1
	}
	if w.ProofSize != other.ProofSize {
		if w.ProofSize < other.ProofSize {
			return -1
		}
		return 1
	}
	return 0
}

// IsZero 是否为零权重
func (w Weight) IsZero() bool {
	return w.Compute == 0 && w.ProofSize == 0
}

// Min 返回每个维度的较小值
func (w Weight) Min(other Weight) Weight {
	out := w
	if other.Compute < out.Compute {
		out.Compute = other.Compute
	}
	if other.ProofSize < out.ProofSize {
		out.ProofSize = other.ProofSize
	}
	return out
}

// String 返回权重的可读表示
func (w Weight) String() string {
	return fmt.Sprintf("Weight(compute=%d, proof_size=%d)", w.Compute, w.ProofSize)
}

func saturatingAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return math.MaxUint64
	}
	return sum
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
