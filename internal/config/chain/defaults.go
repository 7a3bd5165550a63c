package chain

import "github.com/weisyn/kernel/pkg/types"

// 链参数默认值
const (
	// defaultChainID 默认链标识
	defaultChainID = "kernel-dev"

	// defaultMaxBlockCompute 区块计算上限
	// 对应约2秒的参考执行时间刻度
	defaultMaxBlockCompute = 2_000_000_000

	// defaultMaxBlockProofSize 区块证明大小上限（5MB）
	defaultMaxBlockProofSize = 5 * 1024 * 1024

	// defaultNormalRatioPercent 普通类命令可占区块限额的百分比
	// 剩余额度预留给运维类命令
	defaultNormalRatioPercent = 75

	// defaultBaseExtrinsicCompute 每条命令的固定基础计算权重
	// 覆盖解码、序号校验等与操作本身无关的固定开销
	defaultBaseExtrinsicCompute = 100_000

	// defaultComputeFeeRate 计算单位费率分子
	defaultComputeFeeRate = 1

	// defaultProofFeeRate 证明单位费率分子
	defaultProofFeeRate = 1

	// defaultWeightFeeScale 权重费率分母
	// 每1,000,000个权重单位收取1个费用单位
	defaultWeightFeeScale = 1_000_000

	// defaultLengthFeeRate 每字节长度费率
	// 默认为零，按长度计费由宿主显式开启
	defaultLengthFeeRate = 0

	// defaultHistoryDepth 历史快照保留深度（区块数）
	defaultHistoryDepth = 64
)

// createDefaultChainOptions 创建默认链参数配置
func createDefaultChainOptions() *ChainOptions {
	maxBlock := types.NewWeight(defaultMaxBlockCompute, defaultMaxBlockProofSize)
	return &ChainOptions{
		ChainID: defaultChainID,
		Weights: types.BlockWeights{
			BaseExtrinsic: types.NewWeight(defaultBaseExtrinsicCompute, 0),
			MaxBlock:      maxBlock,
			MaxNormal: types.NewWeight(
				maxBlock.Compute/100*defaultNormalRatioPercent,
				maxBlock.ProofSize/100*defaultNormalRatioPercent,
			),
		},
		ComputeFeeRate: defaultComputeFeeRate,
		ProofFeeRate:   defaultProofFeeRate,
		WeightFeeScale: defaultWeightFeeScale,
		LengthFeeRate:  defaultLengthFeeRate,
		HistoryDepth:   defaultHistoryDepth,
	}
}
