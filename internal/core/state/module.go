// Package state 提供状态管理模块的组装
package state

import (
	"github.com/weisyn/kernel/pkg/interfaces/config"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/storage"
	"go.uber.org/fx"
)

// ModuleInput 状态模块输入依赖
type ModuleInput struct {
	fx.In

	Provider config.Provider // 配置提供者
	KVStore  storage.KVStore // 键值存储
	Logger   log.Logger      `optional:"true"` // 日志记录器（可选）
}

// ModuleOutput 状态模块输出服务
type ModuleOutput struct {
	fx.Out

	Manager *Manager // 状态管理器
}

// Module 返回状态管理模块
func Module() fx.Option {
	return fx.Module("state",
		fx.Provide(
			func(input ModuleInput) (ModuleOutput, error) {
				manager, err := NewManager(input.KVStore, input.Provider.GetChain().HistoryDepth, input.Logger)
				if err != nil {
					return ModuleOutput{}, err
				}
				return ModuleOutput{Manager: manager}, nil
			},
		),
	)
}
