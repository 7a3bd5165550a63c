package genesis

import (
	"context"
	"fmt"

	"github.com/weisyn/kernel/internal/core/state"
	"github.com/weisyn/kernel/pkg/constants"
	"github.com/weisyn/kernel/pkg/interfaces/config"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"go.uber.org/fx"
)

// ModuleInput 创世模块输入依赖
type ModuleInput struct {
	fx.In

	Provider  config.Provider           // 配置提供者
	State     *state.Manager            // 状态管理器
	Currency  runtimeInterface.Currency // 货币能力
	Logger    log.Logger                `optional:"true"` // 日志记录器（可选）
	Lifecycle fx.Lifecycle              // 生命周期管理
}

// ModuleOutput 创世模块输出服务
type ModuleOutput struct {
	fx.Out

	Loader *Loader // 创世加载器
}

// Module 返回创世模块
// 创世加载挂在启动钩子上，先于任何区块处理完成
func Module() fx.Option {
	return fx.Module("genesis",
		fx.Provide(
			func(input ModuleInput) (ModuleOutput, error) {
				currencyIndex := constants.ModuleIndexBalances
				if mod, ok := input.Currency.(runtimeInterface.Module); ok {
					currencyIndex = mod.Index()
				} else {
					return ModuleOutput{}, fmt.Errorf("genesis: 货币能力实现方必须是运行时模块")
				}

				loader, err := NewLoader(input.State, input.Currency,
					currencyIndex, constants.ModuleIndexValueStore, input.Logger)
				if err != nil {
					return ModuleOutput{}, err
				}

				input.Lifecycle.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return loader.EnsureLoaded(ctx, input.Provider.GetGenesis())
					},
				})

				return ModuleOutput{Loader: loader}, nil
			},
		),
	)
}
