// Package types 用户配置结构定义
//
// 🔧 **零值陷阱处理说明**：
// 为了区分"用户未设置"和"用户设置为零值"，用户配置统一使用指针类型：
//   - nil: 用户未在配置文件中设置该字段，使用系统默认值
//   - &value: 用户明确设置了该值，即使是零值也会被采用
package types

// AppConfig 应用统一配置结构
// 对应配置文件（JSON）的顶层结构
type AppConfig struct {
	Log     *UserLogConfig     `json:"log,omitempty"`     // 日志配置
	Storage *UserStorageConfig `json:"storage,omitempty"` // 存储配置
	Chain   *UserChainConfig   `json:"chain,omitempty"`   // 链参数配置
	Metrics *UserMetricsConfig `json:"metrics,omitempty"` // 指标配置
}

// UserLogConfig 用户日志配置
type UserLogConfig struct {
	Level      *string `json:"level,omitempty"`       // 日志级别 (debug, info, warn, error, fatal)
	ToConsole  *bool   `json:"to_console,omitempty"`  // 是否输出到控制台
	FilePath   *string `json:"file_path,omitempty"`   // 日志文件路径（空表示不写文件）
	MaxSize    *int    `json:"max_size,omitempty"`    // 单个日志文件最大大小(MB)
	MaxBackups *int    `json:"max_backups,omitempty"` // 最大备份文件数
	MaxAge     *int    `json:"max_age,omitempty"`     // 日志文件最大保留天数
	Compress   *bool   `json:"compress,omitempty"`    // 是否压缩历史日志文件
}

// UserStorageConfig 用户存储配置
type UserStorageConfig struct {
	Engine     *string `json:"engine,omitempty"`      // 存储引擎 (badger | memory)
	DataPath   *string `json:"data_path,omitempty"`   // 数据目录
	SyncWrites *bool   `json:"sync_writes,omitempty"` // 是否同步写入磁盘
}

// UserChainConfig 用户链参数配置
type UserChainConfig struct {
	ChainID *string `json:"chain_id,omitempty"` // 链标识

	// 区块权重限额
	MaxBlockCompute   *uint64 `json:"max_block_compute,omitempty"`   // 区块计算上限
	MaxBlockProofSize *uint64 `json:"max_block_proof_size,omitempty"` // 区块证明大小上限
	NormalRatio       *uint32 `json:"normal_ratio_percent,omitempty"` // 普通类占比（百分比）

	// 费用参数
	ComputeFeeRate *uint64 `json:"compute_fee_rate,omitempty"` // 计算单位费率（分子）
	ProofFeeRate   *uint64 `json:"proof_fee_rate,omitempty"`   // 证明单位费率（分子）
	WeightFeeScale *uint64 `json:"weight_fee_scale,omitempty"` // 权重费率分母
	LengthFeeRate  *uint64 `json:"length_fee_rate,omitempty"`  // 每字节长度费率

	// 历史快照
	HistoryDepth *int `json:"history_depth,omitempty"` // 保留可查询历史的区块数

	// 创世文件
	GenesisPath *string `json:"genesis_path,omitempty"` // 创世配置文件路径
}

// UserMetricsConfig 用户指标配置
type UserMetricsConfig struct {
	Enabled    *bool   `json:"enabled,omitempty"`     // 是否启用指标
	ListenAddr *string `json:"listen_addr,omitempty"` // 指标HTTP监听地址
}
