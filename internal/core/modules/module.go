package modules

import (
	"github.com/weisyn/kernel/internal/core/modules/balances"
	"github.com/weisyn/kernel/internal/core/modules/system"
	"github.com/weisyn/kernel/internal/core/modules/valuestore"
	"github.com/weisyn/kernel/pkg/constants"
	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"go.uber.org/fx"
)

// ModuleOutput 模块集合输出服务
type ModuleOutput struct {
	fx.Out

	Modules   []runtimeInterface.Module // 有序模块列表（钩子按此顺序触发）
	Currency  runtimeInterface.Currency // 余额能力
	Sequencer runtimeInterface.Sequencer // 序号能力
}

// Module 返回运行时模块集合
//
// 模块顺序在此处固定：system → balances → valuestore。
// OnInitialize/OnFinalize 钩子严格按该顺序执行。
func Module() fx.Option {
	return fx.Module("modules",
		fx.Provide(
			func() (ModuleOutput, error) {
				sys, err := system.New(constants.ModuleIndexSystem, systemCapability{})
				if err != nil {
					return ModuleOutput{}, err
				}
				bal, err := balances.New(constants.ModuleIndexBalances, balancesCapability{})
				if err != nil {
					return ModuleOutput{}, err
				}
				store, err := valuestore.New(constants.ModuleIndexValueStore, valuestoreCapability{})
				if err != nil {
					return ModuleOutput{}, err
				}

				return ModuleOutput{
					Modules:   []runtimeInterface.Module{sys, bal, store},
					Currency:  bal,
					Sequencer: sys,
				}, nil
			},
		),
	)
}
