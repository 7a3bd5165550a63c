// Package storage 提供存储基础设施的组装
package storage

import (
	"context"
	"fmt"

	storageconfig "github.com/weisyn/kernel/internal/config/storage"
	"github.com/weisyn/kernel/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/kernel/internal/core/infrastructure/storage/memory"
	"github.com/weisyn/kernel/pkg/interfaces/config"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	interfaces "github.com/weisyn/kernel/pkg/interfaces/infrastructure/storage"
	"go.uber.org/fx"
)

// ModuleInput 存储模块输入依赖
type ModuleInput struct {
	fx.In

	Provider  config.Provider // 配置提供者
	Logger    log.Logger      `optional:"true"` // 日志记录器（可选）
	Lifecycle fx.Lifecycle    // 生命周期管理
}

// ModuleOutput 存储模块输出服务
type ModuleOutput struct {
	fx.Out

	KVStore interfaces.KVStore // 键值存储
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(
			func(input ModuleInput) (ModuleOutput, error) {
				store, err := NewKVStore(input.Provider.GetStorage(), input.Logger)
				if err != nil {
					return ModuleOutput{}, err
				}

				input.Lifecycle.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						return store.Close()
					},
				})

				return ModuleOutput{KVStore: store}, nil
			},
		),
	)
}

// NewKVStore 按配置创建键值存储实例
func NewKVStore(options *storageconfig.StorageOptions, logger log.Logger) (interfaces.KVStore, error) {
	if options == nil {
		return nil, fmt.Errorf("存储配置不能为空")
	}

	switch options.Engine {
	case storageconfig.EngineBadger:
		return badger.New(options, logger)
	case storageconfig.EngineMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("不支持的存储引擎: %s", options.Engine)
	}
}
