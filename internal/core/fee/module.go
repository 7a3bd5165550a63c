package fee

import (
	"github.com/weisyn/kernel/pkg/interfaces/config"
	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"go.uber.org/fx"
)

// ModuleInput 费用模块输入依赖
type ModuleInput struct {
	fx.In

	Provider config.Provider           // 配置提供者
	Currency runtimeInterface.Currency // 货币能力
}

// ModuleOutput 费用模块输出服务
type ModuleOutput struct {
	fx.Out

	Engine   *Engine                      // 费用引擎
	Assessor runtimeInterface.FeeAssessor // 费用评估能力
}

// Module 返回费用模块
func Module() fx.Option {
	return fx.Module("fee",
		fx.Provide(
			func(input ModuleInput) (ModuleOutput, error) {
				engine, err := New(input.Provider.GetChain(), input.Currency)
				if err != nil {
					return ModuleOutput{}, err
				}
				return ModuleOutput{Engine: engine, Assessor: engine}, nil
			},
		),
	)
}
