package registry

import (
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"go.uber.org/fx"
)

// ModuleInput 注册表模块输入依赖
type ModuleInput struct {
	fx.In

	Modules []runtimeInterface.Module // 有序模块列表
	Logger  log.Logger                `optional:"true"` // 日志记录器（可选）
}

// ModuleOutput 注册表模块输出服务
type ModuleOutput struct {
	fx.Out

	Registry *Registry // 模块注册表
}

// Module 返回注册表模块
func Module() fx.Option {
	return fx.Module("registry",
		fx.Provide(
			func(input ModuleInput) (ModuleOutput, error) {
				reg, err := New(input.Modules)
				if err != nil {
					return ModuleOutput{}, err
				}
				if input.Logger != nil {
					input.Logger.Infof("模块注册表已建立: 共%d个模块, 索引=%v",
						len(input.Modules), reg.Indices())
				}
				return ModuleOutput{Registry: reg}, nil
			},
		),
	)
}
