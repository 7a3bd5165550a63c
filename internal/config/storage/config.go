// Package storage 提供存储引擎配置
package storage

import "github.com/weisyn/kernel/pkg/types"

// 存储引擎标识
const (
	// EngineBadger BadgerDB持久化引擎
	EngineBadger = "badger"
	// EngineMemory 内存引擎（测试与临时运行）
	EngineMemory = "memory"
)

// StorageOptions 存储配置选项
type StorageOptions struct {
	Engine     string `json:"engine"`      // 存储引擎 (badger | memory)
	DataPath   string `json:"data_path"`   // 数据目录
	SyncWrites bool   `json:"sync_writes"` // 是否同步写入磁盘
}

// Config 存储配置实现
type Config struct {
	options *StorageOptions
}

// New 创建存储配置实现
func New(userConfig *types.UserStorageConfig) *Config {
	options := createDefaultStorageOptions()
	if userConfig != nil {
		if userConfig.Engine != nil {
			options.Engine = *userConfig.Engine
		}
		if userConfig.DataPath != nil {
			options.DataPath = *userConfig.DataPath
		}
		if userConfig.SyncWrites != nil {
			options.SyncWrites = *userConfig.SyncWrites
		}
	}
	return &Config{options: options}
}

// GetOptions 获取完整的存储配置选项
func (c *Config) GetOptions() *StorageOptions {
	return c.options
}
