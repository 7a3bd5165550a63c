// Package config 提供应用配置管理功能
package config

import (
	chainconfig "github.com/weisyn/kernel/internal/config/chain"
	logconfig "github.com/weisyn/kernel/internal/config/log"
	storageconfig "github.com/weisyn/kernel/internal/config/storage"
	"github.com/weisyn/kernel/pkg/interfaces/config"
	"go.uber.org/fx"
)

// ConfigParams 定义配置模块的依赖参数
type ConfigParams struct {
	fx.In

	// 应用配置选项
	AppOptions config.AppOptions `optional:"true"`
}

// ConfigOutput 定义配置模块的输出结构
type ConfigOutput struct {
	fx.Out

	// 配置提供者
	Provider config.Provider
}

// Module 返回配置模块
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			ProvideConfigServices,
			// 提供具体的配置类型用于依赖注入
			func(provider config.Provider) *chainconfig.ChainOptions {
				return provider.GetChain()
			},
			func(provider config.Provider) *logconfig.LogOptions {
				return provider.GetLog()
			},
			func(provider config.Provider) *storageconfig.StorageOptions {
				return provider.GetStorage()
			},
		),
	)
}

// ProvideConfigServices 创建配置提供者
func ProvideConfigServices(params ConfigParams) ConfigOutput {
	var provider config.Provider
	if params.AppOptions != nil {
		provider = NewProvider(params.AppOptions.GetAppConfig())
	} else {
		// 无应用配置时使用全默认值
		provider = NewProvider(nil)
	}

	return ConfigOutput{Provider: provider}
}
