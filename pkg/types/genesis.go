// Package types 创世配置类型定义
package types

// GenesisConfig 创世状态配置
//
// 🎯 **功能**：描述零号区块之前一次性加载的初始状态
// 📋 **约束**：必须在首个区块的 Initializing 阶段之前加载，且仅加载一次
type GenesisConfig struct {
	// ChainID 链标识
	ChainID string `json:"chain_id"`

	// Balances 初始余额表（base58账户 → 余额数值字符串）
	Balances map[string]string `json:"balances,omitempty"`

	// StoredValue 示例存储模块的初始值
	StoredValue *uint32 `json:"stored_value,omitempty"`
}
