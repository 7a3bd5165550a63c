// Package app 提供内核应用的组装与启动
//
// 🎯 **核心职责**
// - 从配置文件加载用户配置（缺失时使用全默认值）
// - 按层组装fx依赖图并托管应用生命周期
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/weisyn/kernel/configs"
	"github.com/weisyn/kernel/pkg/interfaces/config"
	"github.com/weisyn/kernel/pkg/types"
	"go.uber.org/fx"
)

// defaultConfigPath 默认配置文件路径
const defaultConfigPath = "configs/kernel.json"

// ProvideAppOptions 提供应用配置选项实例
// 为依赖注入系统提供config.AppOptions接口的实现
func ProvideAppOptions(opts *options) config.AppOptions {
	return loadConfigFromFile(opts)
}

// loadConfigFromFile 从配置文件加载配置（支持自定义路径）
//
// 🔧 **零值陷阱处理**：配置字段统一使用指针类型，
// nil表示用户未设置（采用默认值），&value表示用户明确设置。
func loadConfigFromFile(opts *options) *options {
	configPath := opts.configFilePath
	if configPath == "" {
		configPath = defaultConfigPath
	}

	var data []byte
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if opts.appConfig != nil {
			// 文件不存在但已通过Option传入配置：直接使用
			return opts
		}
		// 回退到内置的开发环境配置
		data = configs.GetDevelopmentConfig()
	} else {
		data, err = os.ReadFile(configPath)
		if err != nil {
			fmt.Printf("读取配置文件失败: %v，使用默认配置\n", err)
			return opts
		}
	}

	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		fmt.Printf("解析配置文件失败: %v，使用默认配置\n", err)
		return opts
	}

	opts.appConfig = &appConfig
	return opts
}

// New 创建内核应用
func New(opts ...Option) *fx.App {
	bootstrap := NewBootstrap(newOptions(opts...))
	return bootstrap.Build()
}

// Run 组装并运行内核应用直到收到停止信号
func Run(ctx context.Context, opts ...Option) error {
	fxApp := New(opts...)

	if err := fxApp.Start(ctx); err != nil {
		return fmt.Errorf("应用启动失败: %w", err)
	}

	// 等待停止信号
	<-fxApp.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	if err := fxApp.Stop(stopCtx); err != nil {
		return fmt.Errorf("应用停止失败: %w", err)
	}
	return nil
}
