// Package config 提供应用配置管理功能
package config

import (
	"encoding/json"
	"fmt"
	"os"

	chainconfig "github.com/weisyn/kernel/internal/config/chain"
	logconfig "github.com/weisyn/kernel/internal/config/log"
	storageconfig "github.com/weisyn/kernel/internal/config/storage"
	"github.com/weisyn/kernel/pkg/interfaces/config"
	"github.com/weisyn/kernel/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	return &Provider{appConfig: appConfig}
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *logconfig.LogOptions {
	var userLogConfig *types.UserLogConfig
	if p.appConfig != nil {
		userLogConfig = p.appConfig.Log
	}
	return logconfig.New(userLogConfig).GetOptions()
}

// GetStorage 获取存储配置
func (p *Provider) GetStorage() *storageconfig.StorageOptions {
	var userStorageConfig *types.UserStorageConfig
	if p.appConfig != nil {
		userStorageConfig = p.appConfig.Storage
	}
	return storageconfig.New(userStorageConfig).GetOptions()
}

// GetChain 获取链参数配置
func (p *Provider) GetChain() *chainconfig.ChainOptions {
	var userChainConfig *types.UserChainConfig
	if p.appConfig != nil {
		userChainConfig = p.appConfig.Chain
	}
	return chainconfig.New(userChainConfig).GetOptions()
}

// GetGenesis 获取创世配置
// 从链参数中指定的创世文件加载；未配置或加载失败时返回nil
func (p *Provider) GetGenesis() *types.GenesisConfig {
	chainOptions := p.GetChain()
	if chainOptions.GenesisPath == "" {
		return nil
	}

	data, err := os.ReadFile(chainOptions.GenesisPath)
	if err != nil {
		fmt.Printf("读取创世配置文件失败: %v\n", err)
		return nil
	}

	var genesis types.GenesisConfig
	if err := json.Unmarshal(data, &genesis); err != nil {
		fmt.Printf("解析创世配置文件失败: %v\n", err)
		return nil
	}

	return &genesis
}

// GetAppConfig 获取原始应用配置
func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}
