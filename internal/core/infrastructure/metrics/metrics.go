// Package metrics 提供基于Prometheus的运行时指标
//
// 📋 **指标清单**
// - kernel_block_height: 当前处理的区块高度
// - kernel_block_weight_compute / kernel_block_weight_proof_size: 区块累计权重
// - kernel_extrinsics_total{result}: 按结果分类的命令计数
// - kernel_fees_charged_total: 累计收取的费用
// - kernel_events_emitted_total: 累计发出的运行时事件数
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 命令结果标签取值
const (
	ResultApplied  = "applied"  // 调度成功
	ResultFailed   = "failed"   // 模块功能性失败
	ResultRejected = "rejected" // 结构性/资源性拒绝
)

// Metrics 运行时指标集合
type Metrics struct {
	registry *prometheus.Registry

	BlockHeight          prometheus.Gauge
	BlockWeightCompute   prometheus.Gauge
	BlockWeightProofSize prometheus.Gauge
	ExtrinsicsTotal      *prometheus.CounterVec
	FeesChargedTotal     prometheus.Counter
	EventsEmittedTotal   prometheus.Counter
}

// New 创建指标集合并注册到独立的registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		BlockHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kernel_block_height",
			Help: "当前处理的区块高度",
		}),
		BlockWeightCompute: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kernel_block_weight_compute",
			Help: "当前区块累计计算权重",
		}),
		BlockWeightProofSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kernel_block_weight_proof_size",
			Help: "当前区块累计证明大小权重",
		}),
		ExtrinsicsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kernel_extrinsics_total",
			Help: "按结果分类的命令计数",
		}, []string{"result"}),
		FeesChargedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kernel_fees_charged_total",
			Help: "累计收取的费用（费用单位）",
		}),
		EventsEmittedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kernel_events_emitted_total",
			Help: "累计发出的运行时事件数",
		}),
	}

	registry.MustRegister(
		m.BlockHeight,
		m.BlockWeightCompute,
		m.BlockWeightProofSize,
		m.ExtrinsicsTotal,
		m.FeesChargedTotal,
		m.EventsEmittedTotal,
	)

	return m
}

// Handler 返回Prometheus抓取端点的HTTP处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
