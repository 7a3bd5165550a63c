// Package chain 提供链参数配置（区块限额、费率、历史深度）
package chain

import "github.com/weisyn/kernel/pkg/types"

// ChainOptions 链参数配置选项
//
// 组合期固定，运行期只读。所有限额与费率变更都要求重新组合。
type ChainOptions struct {
	ChainID string `json:"chain_id"` // 链标识

	// === 区块权重限额 ===
	Weights types.BlockWeights `json:"weights"` // 区块权重限额

	// === 费用参数 ===
	// 费用换算：fee = compute*ComputeFeeRate/WeightFeeScale
	//              + proof*ProofFeeRate/WeightFeeScale
	//              + encodedLen*LengthFeeRate + tip
	ComputeFeeRate uint64 `json:"compute_fee_rate"` // 计算单位费率（分子）
	ProofFeeRate   uint64 `json:"proof_fee_rate"`   // 证明单位费率（分子）
	WeightFeeScale uint64 `json:"weight_fee_scale"` // 权重费率分母
	LengthFeeRate  uint64 `json:"length_fee_rate"`  // 每字节长度费率

	// === 历史快照 ===
	HistoryDepth int `json:"history_depth"` // 保留可查询历史的区块数

	// === 创世配置 ===
	GenesisPath string `json:"genesis_path"` // 创世配置文件路径（空表示无创世文件）
}

// Config 链参数配置实现
type Config struct {
	options *ChainOptions
}

// New 创建链参数配置实现
func New(userConfig *types.UserChainConfig) *Config {
	options := createDefaultChainOptions()
	applyUserChainConfig(options, userConfig)
	return &Config{options: options}
}

// GetOptions 获取完整的链参数配置
func (c *Config) GetOptions() *ChainOptions {
	return c.options
}

// applyUserChainConfig 将用户配置覆盖到默认值之上
func applyUserChainConfig(options *ChainOptions, user *types.UserChainConfig) {
	if user == nil {
		return
	}
	if user.ChainID != nil {
		options.ChainID = *user.ChainID
	}
	if user.MaxBlockCompute != nil {
		options.Weights.MaxBlock.Compute = *user.MaxBlockCompute
	}
	if user.MaxBlockProofSize != nil {
		options.Weights.MaxBlock.ProofSize = *user.MaxBlockProofSize
	}
	if user.NormalRatio != nil {
		ratio := *user.NormalRatio
		if ratio > 100 {
			ratio = 100
		}
		options.Weights.MaxNormal = types.NewWeight(
			options.Weights.MaxBlock.Compute/100*uint64(ratio),
			options.Weights.MaxBlock.ProofSize/100*uint64(ratio),
		)
	}
	if user.ComputeFeeRate != nil {
		options.ComputeFeeRate = *user.ComputeFeeRate
	}
	if user.ProofFeeRate != nil {
		options.ProofFeeRate = *user.ProofFeeRate
	}
	if user.WeightFeeScale != nil && *user.WeightFeeScale > 0 {
		options.WeightFeeScale = *user.WeightFeeScale
	}
	if user.LengthFeeRate != nil {
		options.LengthFeeRate = *user.LengthFeeRate
	}
	if user.HistoryDepth != nil && *user.HistoryDepth >= 0 {
		options.HistoryDepth = *user.HistoryDepth
	}
	if user.GenesisPath != nil {
		options.GenesisPath = *user.GenesisPath
	}
}
