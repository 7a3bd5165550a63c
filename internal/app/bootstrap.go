package app

import (
	config "github.com/weisyn/kernel/internal/config"
	"github.com/weisyn/kernel/internal/core/executive"
	"github.com/weisyn/kernel/internal/core/fee"
	"github.com/weisyn/kernel/internal/core/genesis"
	"github.com/weisyn/kernel/internal/core/infrastructure/event"
	log "github.com/weisyn/kernel/internal/core/infrastructure/log"
	"github.com/weisyn/kernel/internal/core/infrastructure/metrics"
	"github.com/weisyn/kernel/internal/core/infrastructure/storage"
	"github.com/weisyn/kernel/internal/core/modules"
	"github.com/weisyn/kernel/internal/core/query"
	"github.com/weisyn/kernel/internal/core/runtime/registry"
	"github.com/weisyn/kernel/internal/core/state"
	logInterface "github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts  *options
	fxApp *fx.App
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{opts: opts}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		config.Module(),  // 1. 配置(不依赖其他)
		log.Module(),     // 2. 日志(依赖配置)
		metrics.Module(), // 3. 指标(依赖配置和日志)
	}
}

// SetupCommunicationLayer 设置通信与数据层模块
func (b *Bootstrap) SetupCommunicationLayer() []fx.Option {
	return []fx.Option{
		event.Module(),   // 事件总线(依赖基础设施)
		storage.Module(), // 键值存储(依赖基础设施)
		state.Module(),   // 状态管理(依赖存储)
	}
}

// SetupBusinessLayer 设置业务逻辑层模块
//
// 加载顺序必须遵循模块间的依赖关系：
// 运行时模块 → 注册表 → 费用 → 执行器 → 创世/查询
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		modules.Module(),   // 1. 运行时模块集合与能力绑定
		registry.Module(),  // 2. 模块注册表(依赖模块集合)
		fee.Module(),       // 3. 费用引擎(依赖货币能力)
		executive.Module(), // 4. 调度执行器(依赖注册表/状态/费用/序号)
		genesis.Module(),   // 5. 创世加载(依赖状态与货币能力)
		query.Module(),     // 6. 只读查询(依赖状态与执行器)
	}
}

// AssembleOptions 按层组装全部fx选项
func (b *Bootstrap) AssembleOptions(extra ...fx.Option) []fx.Option {
	var opts []fx.Option
	opts = append(opts, fx.Provide(func() *options { return b.opts }))
	opts = append(opts, fx.Provide(ProvideAppOptions))
	opts = append(opts, b.SetupInfrastructureLayer()...)
	opts = append(opts, b.SetupCommunicationLayer()...)
	opts = append(opts, b.SetupBusinessLayer()...)

	// fx按需构建依赖图：显式锚定顶层服务，保证整条链路被实例化
	opts = append(opts, fx.Invoke(anchorServices))

	opts = append(opts, extra...)
	return opts
}

// anchorServices 锚定依赖图的顶层服务
type anchorInput struct {
	fx.In

	Loader  *genesis.Loader
	Service *query.Service
	Logger  logInterface.Logger `optional:"true"`
}

func anchorServices(input anchorInput) {
	if input.Logger != nil {
		input.Logger.Info("内核依赖图组装完成")
	}
}

// Build 构建fx应用
func (b *Bootstrap) Build(extra ...fx.Option) *fx.App {
	b.fxApp = fx.New(b.AssembleOptions(extra...)...)
	return b.fxApp
}
