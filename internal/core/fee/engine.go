// Package fee 实现费用引擎
//
// 🎯 **核心职责**
// - 将声明权重与编码长度换算为费用金额（纯函数评估）
// - 通过货币能力在调度前扣款（执行前收费，失败不退款）
//
// 📋 **换算公式**
//
//	fee = compute·ComputeFeeRate/WeightFeeScale
//	    + proof·ProofFeeRate/WeightFeeScale
//	    + encodedLen·LengthFeeRate + tip
//
// ⚠️ **不变量**：换算对权重与长度单调；除法向下取整
package fee

import (
	"context"
	"fmt"
	"math/big"

	chainconfig "github.com/weisyn/kernel/internal/config/chain"
	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"github.com/weisyn/kernel/pkg/types"
)

// 确保 Engine 实现费用评估能力
var _ runtimeInterface.FeeAssessor = (*Engine)(nil)

// Engine 费用引擎
type Engine struct {
	options  *chainconfig.ChainOptions
	currency runtimeInterface.Currency
}

// New 创建费用引擎并绑定货币能力
func New(options *chainconfig.ChainOptions, currency runtimeInterface.Currency) (*Engine, error) {
	if options == nil {
		return nil, fmt.Errorf("fee: 链参数配置不能为空")
	}
	if options.WeightFeeScale == 0 {
		return nil, fmt.Errorf("fee: 权重费率分母不能为零")
	}
	if currency == nil {
		return nil, fmt.Errorf("fee: 货币能力绑定不能为空")
	}
	return &Engine{options: options, currency: currency}, nil
}

// Assess 评估一次调度的费用（无副作用）
func (e *Engine) Assess(weight types.Weight, encodedLen int, tip *big.Int) *big.Int {
	scale := new(big.Int).SetUint64(e.options.WeightFeeScale)

	computePart := new(big.Int).SetUint64(weight.Compute)
	computePart.Mul(computePart, new(big.Int).SetUint64(e.options.ComputeFeeRate))
	computePart.Quo(computePart, scale)

	proofPart := new(big.Int).SetUint64(weight.ProofSize)
	proofPart.Mul(proofPart, new(big.Int).SetUint64(e.options.ProofFeeRate))
	proofPart.Quo(proofPart, scale)

	lengthPart := big.NewInt(int64(encodedLen))
	lengthPart.Mul(lengthPart, new(big.Int).SetUint64(e.options.LengthFeeRate))

	total := new(big.Int).Add(computePart, proofPart)
	total.Add(total, lengthPart)
	if tip != nil && tip.Sign() > 0 {
		total.Add(total, tip)
	}
	return total
}

// Charge 从账户扣除费用
// 余额不足时返回 types.ErrInsufficientFunds，不产生任何状态变更
func (e *Engine) Charge(ctx context.Context, state runtimeInterface.StateWriter, who types.AccountID, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	return e.currency.Withdraw(ctx, state, who, amount)
}
