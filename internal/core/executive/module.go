package executive

import (
	"fmt"

	"github.com/weisyn/kernel/internal/core/fee"
	"github.com/weisyn/kernel/internal/core/infrastructure/metrics"
	"github.com/weisyn/kernel/internal/core/runtime/registry"
	"github.com/weisyn/kernel/internal/core/state"
	"github.com/weisyn/kernel/pkg/interfaces/config"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"go.uber.org/fx"
)

// ModuleInput 执行器模块输入依赖
type ModuleInput struct {
	fx.In

	Provider  config.Provider              // 配置提供者
	Registry  *registry.Registry           // 模块注册表
	State     *state.Manager               // 状态管理器
	Fees      *fee.Engine                  // 费用引擎
	Sequencer runtimeInterface.Sequencer   // 序号能力
	Currency  runtimeInterface.Currency    // 货币能力
	EventBus  event.EventBus               `optional:"true"` // 事件总线（可选）
	Metrics   *metrics.Metrics             `optional:"true"` // 运行时指标（可选）
	Logger    log.Logger                   `optional:"true"` // 日志记录器（可选）
}

// ModuleOutput 执行器模块输出服务
type ModuleOutput struct {
	fx.Out

	Executive *Executive // 区块调度执行器
}

// Module 返回执行器模块
func Module() fx.Option {
	return fx.Module("executive",
		fx.Provide(
			func(input ModuleInput) (ModuleOutput, error) {
				seqIndex, err := moduleIndexOf(input.Sequencer)
				if err != nil {
					return ModuleOutput{}, fmt.Errorf("序号能力绑定无效: %w", err)
				}
				curIndex, err := moduleIndexOf(input.Currency)
				if err != nil {
					return ModuleOutput{}, fmt.Errorf("货币能力绑定无效: %w", err)
				}

				exec, err := New(Params{
					Registry:       input.Registry,
					State:          input.State,
					Fees:           input.Fees,
					Sequencer:      input.Sequencer,
					SequencerIndex: seqIndex,
					CurrencyIndex:  curIndex,
					Weights:        input.Provider.GetChain().Weights,
					EventBus:       input.EventBus,
					Metrics:        input.Metrics,
					Logger:         input.Logger,
				})
				if err != nil {
					return ModuleOutput{}, err
				}
				return ModuleOutput{Executive: exec}, nil
			},
		),
	)
}

// moduleIndexOf 解析能力实现方的模块索引
// 能力由某个运行时模块实现时，其存储单元归属该模块的键空间
func moduleIndexOf(capability interface{}) (uint8, error) {
	mod, ok := capability.(runtimeInterface.Module)
	if !ok {
		return 0, fmt.Errorf("能力实现方必须是运行时模块")
	}
	return mod.Index(), nil
}
