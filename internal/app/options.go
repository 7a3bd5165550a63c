package app

import (
	"github.com/weisyn/kernel/pkg/interfaces/config"
	"github.com/weisyn/kernel/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径
	configFilePath string

	// 用户配置
	appConfig *types.AppConfig
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithChain 设置链参数配置选项
func WithChain(userChainConfig *types.UserChainConfig) Option {
	return func(o *options) {
		if o.appConfig == nil {
			o.appConfig = &types.AppConfig{}
		}
		o.appConfig.Chain = userChainConfig
	}
}

// WithStorage 设置存储配置选项
func WithStorage(userStorageConfig *types.UserStorageConfig) Option {
	return func(o *options) {
		if o.appConfig == nil {
			o.appConfig = &types.AppConfig{}
		}
		o.appConfig.Storage = userStorageConfig
	}
}

// WithLog 设置日志配置选项
func WithLog(userLogConfig *types.UserLogConfig) Option {
	return func(o *options) {
		if o.appConfig == nil {
			o.appConfig = &types.AppConfig{}
		}
		o.appConfig.Log = userLogConfig
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetAppConfig 获取统一的应用配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}

// GetConfigFilePath 获取配置文件路径
func (o *options) GetConfigFilePath() string {
	return o.configFilePath
}
