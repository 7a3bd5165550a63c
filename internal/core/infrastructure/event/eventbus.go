// 基于asaskevich/EventBus的事件总线实现
// 承载运行时事件流的对外发布与订阅管理

package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	evbus "github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	eventInterface "github.com/weisyn/kernel/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/kernel/pkg/types"
)

// EventBus 是基于asaskevich/EventBus的实现
//
// 🎯 **功能**：
// - 保持与底层asaskevich/EventBus的完全兼容
// - 新增按订阅标识退订的管理能力
// - 增加生命周期管理与基础指标统计
type EventBus struct {
	bus    evbus.Bus  // 底层事件总线
	logger log.Logger // 日志记录器

	running atomic.Bool // 运行状态

	// 订阅标识管理
	subMu         sync.RWMutex
	subscriptions map[types.SubscriptionID]*subscription

	// 指标统计
	publishedCount atomic.Uint64
}

// subscription 按标识管理的订阅信息
type subscription struct {
	eventType eventInterface.EventType
	handler   func(data interface{})
}

// New 创建事件总线实例
func New(logger log.Logger) eventInterface.EventBus {
	return &EventBus{
		bus:           evbus.New(),
		logger:        logger,
		subscriptions: make(map[types.SubscriptionID]*subscription),
	}
}

// Subscribe 同步订阅指定主题
func (eb *EventBus) Subscribe(eventType eventInterface.EventType, handler interface{}) error {
	return eb.bus.Subscribe(string(eventType), handler)
}

// SubscribeAsync 异步订阅指定主题
func (eb *EventBus) SubscribeAsync(eventType eventInterface.EventType, handler interface{}, transactional bool) error {
	return eb.bus.SubscribeAsync(string(eventType), handler, transactional)
}

// SubscribeOnce 订阅一次性事件
func (eb *EventBus) SubscribeOnce(eventType eventInterface.EventType, handler interface{}) error {
	return eb.bus.SubscribeOnce(string(eventType), handler)
}

// Unsubscribe 取消订阅
func (eb *EventBus) Unsubscribe(eventType eventInterface.EventType, handler interface{}) error {
	return eb.bus.Unsubscribe(string(eventType), handler)
}

// SubscribeWithID 订阅并返回订阅标识
func (eb *EventBus) SubscribeWithID(eventType eventInterface.EventType, handler func(data interface{})) (types.SubscriptionID, error) {
	if handler == nil {
		return "", fmt.Errorf("订阅处理函数不能为空")
	}

	if err := eb.bus.Subscribe(string(eventType), handler); err != nil {
		return "", fmt.Errorf("订阅主题 %s 失败: %w", eventType, err)
	}

	id := types.SubscriptionID(uuid.New().String())

	eb.subMu.Lock()
	eb.subscriptions[id] = &subscription{eventType: eventType, handler: handler}
	eb.subMu.Unlock()

	return id, nil
}

// UnsubscribeByID 按订阅标识退订
func (eb *EventBus) UnsubscribeByID(id types.SubscriptionID) error {
	eb.subMu.Lock()
	sub, ok := eb.subscriptions[id]
	if ok {
		delete(eb.subscriptions, id)
	}
	eb.subMu.Unlock()

	if !ok {
		return fmt.Errorf("订阅标识不存在: %s", id)
	}
	return eb.bus.Unsubscribe(string(sub.eventType), sub.handler)
}

// Publish 发布事件到指定主题
func (eb *EventBus) Publish(eventType eventInterface.EventType, args ...interface{}) {
	eb.publishedCount.Add(1)
	eb.bus.Publish(string(eventType), args...)
}

// WaitAsync 等待所有异步回调完成
func (eb *EventBus) WaitAsync() {
	eb.bus.WaitAsync()
}

// HasCallback 检查主题是否存在订阅者
func (eb *EventBus) HasCallback(eventType eventInterface.EventType) bool {
	return eb.bus.HasCallback(string(eventType))
}

// Start 启动事件总线
func (eb *EventBus) Start(ctx context.Context) error {
	if !eb.running.CompareAndSwap(false, true) {
		return fmt.Errorf("事件总线已在运行")
	}
	if eb.logger != nil {
		eb.logger.Debug("事件总线已启动")
	}
	return nil
}

// Stop 停止事件总线
// 等待在途异步回调完成后返回
func (eb *EventBus) Stop(ctx context.Context) error {
	if !eb.running.CompareAndSwap(true, false) {
		return nil
	}
	eb.bus.WaitAsync()
	if eb.logger != nil {
		eb.logger.Debugf("事件总线已停止，累计发布事件数: %d", eb.publishedCount.Load())
	}
	return nil
}

// IsRunning 返回总线运行状态
func (eb *EventBus) IsRunning() bool {
	return eb.running.Load()
}
