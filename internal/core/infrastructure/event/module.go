// Package event 提供事件管理功能
package event

import (
	"context"

	eventInterface "github.com/weisyn/kernel/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// ModuleInput 事件模块输入依赖
type ModuleInput struct {
	fx.In

	Logger    log.Logger   `optional:"true"` // 日志记录器（可选）
	Lifecycle fx.Lifecycle // 生命周期管理
}

// ModuleOutput 事件模块输出服务
type ModuleOutput struct {
	fx.Out

	EventBus eventInterface.EventBus // 事件总线
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(
			func(input ModuleInput) ModuleOutput {
				bus := New(input.Logger)

				input.Lifecycle.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return bus.Start(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return bus.Stop(ctx)
					},
				})

				return ModuleOutput{EventBus: bus}
			},
		),
	)
}
