// Package event 提供内核系统的事件总线接口定义
//
// 📋 **事件总线接口 (Event Bus Interface)**
//
// 本文件定义了内核系统的事件总线接口，专注于：
// - 发布/订阅：基于主题的事件分发
// - 订阅管理：支持同步/异步订阅与按标识退订
// - 生命周期：总线的启动与停止
//
// 🔗 **组件关系**
// - 运行时事件流在区块终结时通过本总线对外发布
// - 外部观察者按主题订阅并消费事件
package event

import (
	"context"

	"github.com/weisyn/kernel/pkg/types"
)

// EventType 事件主题类型
type EventType string

// 内核标准事件主题
const (
	// TopicBlockStarted 区块开始处理
	TopicBlockStarted EventType = "kernel.block.started"
	// TopicBlockFinalized 区块终结
	TopicBlockFinalized EventType = "kernel.block.finalized"
	// TopicRuntimeEvent 运行时模块事件
	TopicRuntimeEvent EventType = "kernel.runtime.event"
)

// EventBus 事件总线接口
type EventBus interface {
	// Subscribe 同步订阅指定主题
	Subscribe(eventType EventType, handler interface{}) error

	// SubscribeAsync 异步订阅指定主题
	// transactional为true时同一订阅者的回调串行执行
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error

	// SubscribeOnce 订阅一次性事件
	SubscribeOnce(eventType EventType, handler interface{}) error

	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error

	// SubscribeWithID 订阅并返回订阅标识，可用于按标识退订
	SubscribeWithID(eventType EventType, handler func(data interface{})) (types.SubscriptionID, error)

	// UnsubscribeByID 按订阅标识退订
	UnsubscribeByID(id types.SubscriptionID) error

	// Publish 发布事件到指定主题
	Publish(eventType EventType, args ...interface{})

	// WaitAsync 等待所有异步回调完成
	WaitAsync()

	// HasCallback 检查主题是否存在订阅者
	HasCallback(eventType EventType) bool

	// Start 启动事件总线
	Start(ctx context.Context) error

	// Stop 停止事件总线
	Stop(ctx context.Context) error

	// IsRunning 返回总线运行状态
	IsRunning() bool
}
