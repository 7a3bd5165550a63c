package event_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/kernel/internal/core/infrastructure/event"
	eventInterface "github.com/weisyn/kernel/pkg/interfaces/infrastructure/event"
)

// TestEventBus_PublishSubscribe 验证同步发布订阅
func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := event.New(nil)
	require.NoError(t, bus.Start(context.Background()))
	defer func() { _ = bus.Stop(context.Background()) }()

	var received atomic.Int32
	require.NoError(t, bus.Subscribe(eventInterface.TopicBlockFinalized, func(height uint64) {
		received.Add(1)
		assert.Equal(t, uint64(7), height)
	}))

	bus.Publish(eventInterface.TopicBlockFinalized, uint64(7))

	assert.Equal(t, int32(1), received.Load())
}

// TestEventBus_SubscribeWithID_UnsubscribeStopsDelivery 验证按标识退订
func TestEventBus_SubscribeWithID_UnsubscribeStopsDelivery(t *testing.T) {
	bus := event.New(nil)
	require.NoError(t, bus.Start(context.Background()))
	defer func() { _ = bus.Stop(context.Background()) }()

	var received atomic.Int32
	id, err := bus.SubscribeWithID(eventInterface.TopicRuntimeEvent, func(data interface{}) {
		received.Add(1)
	})
	require.NoError(t, err)

	bus.Publish(eventInterface.TopicRuntimeEvent, "payload")
	require.NoError(t, bus.UnsubscribeByID(id))
	bus.Publish(eventInterface.TopicRuntimeEvent, "payload")

	assert.Equal(t, int32(1), received.Load(), "退订后不再接收事件")

	assert.Error(t, bus.UnsubscribeByID(id), "重复退订应报错")
}

// TestEventBus_Start_Twice_Fails 验证重复启动被拒绝
func TestEventBus_Start_Twice_Fails(t *testing.T) {
	bus := event.New(nil)
	require.NoError(t, bus.Start(context.Background()))
	assert.Error(t, bus.Start(context.Background()))
	require.NoError(t, bus.Stop(context.Background()))
	assert.False(t, bus.IsRunning())
}
