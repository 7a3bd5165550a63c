// Package metrics 提供指标基础设施的组装
package metrics

import (
	"context"
	"net"
	"net/http"

	"github.com/weisyn/kernel/pkg/interfaces/config"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// ModuleInput 指标模块输入依赖
type ModuleInput struct {
	fx.In

	Provider  config.Provider // 配置提供者
	Logger    log.Logger      `optional:"true"` // 日志记录器（可选）
	Lifecycle fx.Lifecycle    // 生命周期管理
}

// ModuleOutput 指标模块输出服务
type ModuleOutput struct {
	fx.Out

	Metrics *Metrics // 运行时指标集合
}

// Module 返回指标模块
// 配置启用时在独立端口上暴露 /metrics 抓取端点
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(
			func(input ModuleInput) ModuleOutput {
				m := New()
				setupListener(input, m)
				return ModuleOutput{Metrics: m}
			},
		),
	)
}

// setupListener 按配置挂载指标HTTP端点
func setupListener(input ModuleInput, m *Metrics) {
	appConfig := input.Provider.GetAppConfig()
	if appConfig == nil || appConfig.Metrics == nil {
		return
	}
	if appConfig.Metrics.Enabled == nil || !*appConfig.Metrics.Enabled {
		return
	}

	listenAddr := ":9615"
	if appConfig.Metrics.ListenAddr != nil && *appConfig.Metrics.ListenAddr != "" {
		listenAddr = *appConfig.Metrics.ListenAddr
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{Handler: mux}

	input.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return err
			}
			if input.Logger != nil {
				input.Logger.Infof("指标端点已启动: http://%s/metrics", listener.Addr())
			}
			go func() {
				_ = server.Serve(listener)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
