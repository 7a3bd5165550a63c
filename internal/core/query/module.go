package query

import (
	"fmt"

	"github.com/weisyn/kernel/internal/core/executive"
	"github.com/weisyn/kernel/internal/core/state"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"go.uber.org/fx"
)

// ModuleInput 查询模块输入依赖
type ModuleInput struct {
	fx.In

	State     *state.Manager             // 状态管理器
	Executive *executive.Executive       // 调度执行器
	Sequencer runtimeInterface.Sequencer // 序号能力
	Currency  runtimeInterface.Currency  // 货币能力
	Logger    log.Logger                 `optional:"true"` // 日志记录器（可选）
}

// ModuleOutput 查询模块输出服务
type ModuleOutput struct {
	fx.Out

	Service *Service // 只读查询服务
}

// Module 返回查询模块
func Module() fx.Option {
	return fx.Module("query",
		fx.Provide(
			func(input ModuleInput) (ModuleOutput, error) {
				seqMod, ok := input.Sequencer.(runtimeInterface.Module)
				if !ok {
					return ModuleOutput{}, fmt.Errorf("query: 序号能力实现方必须是运行时模块")
				}
				curMod, ok := input.Currency.(runtimeInterface.Module)
				if !ok {
					return ModuleOutput{}, fmt.Errorf("query: 货币能力实现方必须是运行时模块")
				}

				service, err := New(input.State, input.Executive,
					input.Sequencer, seqMod.Index(),
					input.Currency, curMod.Index(), input.Logger)
				if err != nil {
					return ModuleOutput{}, err
				}
				return ModuleOutput{Service: service}, nil
			},
		),
	)
}
