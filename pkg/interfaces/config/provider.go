// Package config provides configuration provider interfaces.
//
// 配置提供者接口：将配置文件解析结果转换为各模块可直接消费的选项结构。
// 每个Get方法都会应用默认值并合并用户覆盖，调用方拿到的永远是完整配置。
package config

import (
	chainconfig "github.com/weisyn/kernel/internal/config/chain"
	logconfig "github.com/weisyn/kernel/internal/config/log"
	storageconfig "github.com/weisyn/kernel/internal/config/storage"
	"github.com/weisyn/kernel/pkg/types"
)

// Provider 配置提供者接口
type Provider interface {
	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetStorage 获取存储配置
	GetStorage() *storageconfig.StorageOptions

	// GetChain 获取链参数配置（区块限额、费率、历史深度）
	GetChain() *chainconfig.ChainOptions

	// GetGenesis 获取创世配置（可能为nil，表示无创世文件）
	GetGenesis() *types.GenesisConfig

	// GetAppConfig 获取原始应用配置
	GetAppConfig() *types.AppConfig
}

// AppOptions 应用级别的配置选项接口
type AppOptions interface {
	// GetAppConfig 获取统一的应用配置
	GetAppConfig() *types.AppConfig

	// GetConfigFilePath 获取配置文件路径（空表示使用默认值）
	GetConfigFilePath() string
}
