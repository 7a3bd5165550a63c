package state_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/kernel/internal/core/infrastructure/storage/memory"
	"github.com/weisyn/kernel/internal/core/state"
	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"github.com/weisyn/kernel/pkg/types"
)

func newManager(t *testing.T, historyDepth int) *state.Manager {
	t.Helper()
	mgr, err := state.NewManager(memory.New(), historyDepth, nil)
	require.NoError(t, err)
	return mgr
}

// commitBlock 提交一个只写入单个键的区块
func commitBlock(t *testing.T, mgr *state.Manager, height uint64, moduleIndex uint8, cell string, key, value []byte) {
	t.Helper()
	ctx := context.Background()
	bs, err := mgr.BeginBlock(height)
	require.NoError(t, err)
	if value != nil {
		require.NoError(t, bs.View(ctx, moduleIndex).Set(cell, key, value))
	}
	require.NoError(t, bs.Commit(ctx, nil))
}

// TestManager_BeginBlock_RejectsOverlap 验证同一时刻至多一个进行中的区块
func TestManager_BeginBlock_RejectsOverlap(t *testing.T) {
	mgr := newManager(t, 8)

	bs, err := mgr.BeginBlock(1)
	require.NoError(t, err)

	_, err = mgr.BeginBlock(2)
	assert.Error(t, err, "上一个区块未终结时不允许开始新区块")

	bs.Abort()
	_, err = mgr.BeginBlock(1)
	assert.NoError(t, err, "中止后可重新开始区块")
}

// TestManager_BeginBlock_RejectsHeightGap 验证区块高度必须连续
func TestManager_BeginBlock_RejectsHeightGap(t *testing.T) {
	mgr := newManager(t, 8)
	commitBlock(t, mgr, 1, 0, "cell", []byte("k"), []byte("v"))

	_, err := mgr.BeginBlock(5)
	assert.Error(t, err, "高度跳跃应被拒绝")

	_, err = mgr.BeginBlock(2)
	assert.NoError(t, err)
}

// TestCallFrame_Discard_DropsChanges 验证调用帧失败时不留下任何局部变更
func TestCallFrame_Discard_DropsChanges(t *testing.T) {
	// Arrange
	mgr := newManager(t, 8)
	ctx := context.Background()
	bs, err := mgr.BeginBlock(1)
	require.NoError(t, err)
	require.NoError(t, bs.View(ctx, 0).Set("cell", []byte("base"), []byte("old")))

	// Act: 调用帧写入后整体丢弃
	frame := bs.Nested()
	require.NoError(t, frame.View(ctx, 0).Set("cell", []byte("base"), []byte("new")))
	require.NoError(t, frame.View(ctx, 0).Set("cell", []byte("extra"), []byte("x")))
	frame.Discard()

	// Assert: 区块层只保留帧外的写入
	value, err := bs.View(ctx, 0).Get("cell", []byte("base"))
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), value)

	value, err = bs.View(ctx, 0).Get("cell", []byte("extra"))
	require.NoError(t, err)
	assert.Nil(t, value)
}

// TestCallFrame_Commit_MergesChanges 验证调用帧成功时变更并入区块层
func TestCallFrame_Commit_MergesChanges(t *testing.T) {
	mgr := newManager(t, 8)
	ctx := context.Background()
	bs, err := mgr.BeginBlock(1)
	require.NoError(t, err)

	frame := bs.Nested()
	require.NoError(t, frame.View(ctx, 3).Set("cell", []byte("k"), []byte("v")))
	frame.Commit()

	value, err := bs.View(ctx, 3).Get("cell", []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}

// TestModuleView_IsolatedByModuleIndex 验证模块视图之间键空间隔离
func TestModuleView_IsolatedByModuleIndex(t *testing.T) {
	mgr := newManager(t, 8)
	ctx := context.Background()
	bs, err := mgr.BeginBlock(1)
	require.NoError(t, err)

	require.NoError(t, bs.View(ctx, 1).Set("cell", []byte("k"), []byte("one")))

	value, err := bs.View(ctx, 2).Get("cell", []byte("k"))
	require.NoError(t, err)
	assert.Nil(t, value, "不同模块索引的同名单元互不可见")
}

// TestBlockState_Commit_PersistsAcrossRestart 验证提交后的状态可被新管理器读到
func TestBlockState_Commit_PersistsAcrossRestart(t *testing.T) {
	kv := memory.New()
	mgr, err := state.NewManager(kv, 8, nil)
	require.NoError(t, err)
	ctx := context.Background()

	bs, err := mgr.BeginBlock(1)
	require.NoError(t, err)
	require.NoError(t, bs.View(ctx, 0).Set("cell", []byte("k"), []byte("v")))
	require.NoError(t, bs.Commit(ctx, nil))

	// 用同一底层存储重建管理器（重启恢复场景）
	restored, err := state.NewManager(kv, 8, nil)
	require.NoError(t, err)
	height, committed := restored.LastHeight()
	assert.True(t, committed)
	assert.Equal(t, uint64(1), height)

	value, err := restored.ReaderLatest(ctx, 0).Get("cell", []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}

// TestManager_ReaderAt_ReplaysHistory 验证历史高度查询回放撤销日志
func TestManager_ReaderAt_ReplaysHistory(t *testing.T) {
	mgr := newManager(t, 8)
	ctx := context.Background()

	commitBlock(t, mgr, 1, 0, "cell", []byte("k"), []byte("v1"))
	commitBlock(t, mgr, 2, 0, "cell", []byte("k"), []byte("v2"))
	commitBlock(t, mgr, 3, 0, "cell", []byte("k"), []byte("v3"))

	for _, tc := range []struct {
		height uint64
		want   []byte
	}{
		{1, []byte("v1")},
		{2, []byte("v2")},
		{3, []byte("v3")},
	} {
		reader, err := mgr.ReaderAt(ctx, 0, tc.height)
		require.NoError(t, err)
		value, err := reader.Get("cell", []byte("k"))
		require.NoError(t, err)
		assert.Equal(t, tc.want, value, "高度 %d 的值应与提交时一致", tc.height)
	}
}

// TestManager_ReaderAt_DeletedKeyRestored 验证历史查询能还原被删除前的值
func TestManager_ReaderAt_DeletedKeyRestored(t *testing.T) {
	mgr := newManager(t, 8)
	ctx := context.Background()

	commitBlock(t, mgr, 1, 0, "cell", []byte("k"), []byte("v1"))

	bs, err := mgr.BeginBlock(2)
	require.NoError(t, err)
	require.NoError(t, bs.View(ctx, 0).Delete("cell", []byte("k")))
	require.NoError(t, bs.Commit(ctx, nil))

	// 最新高度：键已删除
	value, err := mgr.ReaderLatest(ctx, 0).Get("cell", []byte("k"))
	require.NoError(t, err)
	assert.Nil(t, value)

	// 高度1：键仍存在
	reader, err := mgr.ReaderAt(ctx, 0, 1)
	require.NoError(t, err)
	value, err = reader.Get("cell", []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), value)
}

// TestManager_ReaderAt_BeyondRetention_ReturnsError 验证超出保留范围的查询报错
func TestManager_ReaderAt_BeyondRetention_ReturnsError(t *testing.T) {
	mgr := newManager(t, 2)
	ctx := context.Background()

	for h := uint64(1); h <= 5; h++ {
		commitBlock(t, mgr, h, 0, "cell", []byte("k"), []byte{byte(h)})
	}

	_, err := mgr.ReaderAt(ctx, 0, 1)
	assert.Error(t, err, "超出撤销日志覆盖范围的高度应报错而非给出错误数据")

	_, err = mgr.ReaderAt(ctx, 0, 9)
	assert.Error(t, err, "尚未提交的高度应报错")

	_, err = mgr.ReaderAt(ctx, 0, 5)
	assert.NoError(t, err)
}

// TestManager_ZeroHistoryDepth_RetainsNothing 验证历史深度为0时不累积撤销日志
func TestManager_ZeroHistoryDepth_RetainsNothing(t *testing.T) {
	mgr := newManager(t, 0)
	ctx := context.Background()

	for h := uint64(1); h <= 64; h++ {
		commitBlock(t, mgr, h, 0, "cell", []byte("k"), []byte{byte(h)})
	}

	// 仅最新高度可查，任何历史高度均报错
	_, err := mgr.ReaderAt(ctx, 0, 63)
	assert.Error(t, err, "深度为0时不保留任何历史高度")

	reader, err := mgr.ReaderAt(ctx, 0, 64)
	require.NoError(t, err)
	value, err := reader.Get("cell", []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte{64}, value)
}

// TestManager_EventsAt_RoundTrip 验证事件日志随区块落盘并可重放
func TestManager_EventsAt_RoundTrip(t *testing.T) {
	mgr := newManager(t, 8)
	ctx := context.Background()

	bs, err := mgr.BeginBlock(1)
	require.NoError(t, err)
	index := uint32(0)
	events := &types.BlockEvents{
		Height: 1,
		Events: []types.RuntimeEvent{
			{Module: 2, ExtrinsicIndex: &index, Payload: map[string]interface{}{"value": "42"}},
		},
	}
	require.NoError(t, bs.Commit(ctx, events))

	replayed, err := mgr.EventsAt(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, replayed)
	assert.Equal(t, uint64(1), replayed.Height)
	require.Len(t, replayed.Events, 1)
	assert.Equal(t, uint8(2), replayed.Events[0].Module)
	require.NotNil(t, replayed.Events[0].ExtrinsicIndex)
	assert.Equal(t, uint32(0), *replayed.Events[0].ExtrinsicIndex)

	missing, err := mgr.EventsAt(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, missing, "无事件日志的高度返回nil")
}

// TestManager_GenesisLoad_OnceOnly 验证创世加载的一次性约束
func TestManager_GenesisLoad_OnceOnly(t *testing.T) {
	mgr := newManager(t, 8)
	ctx := context.Background()

	load := func(view func(moduleIndex uint8) runtimeInterface.StateWriter) error {
		return view(0).Set("cell", []byte("init"), []byte("yes"))
	}

	require.NoError(t, mgr.GenesisLoad(ctx, load))

	value, err := mgr.ReaderLatest(ctx, 0).Get("cell", []byte("init"))
	require.NoError(t, err)
	assert.Equal(t, []byte("yes"), value)

	err = mgr.GenesisLoad(ctx, load)
	assert.Error(t, err, "重复加载创世应被拒绝")
}

// TestManager_GenesisLoad_AfterCommit_Rejected 验证已有区块历史时禁止加载创世
func TestManager_GenesisLoad_AfterCommit_Rejected(t *testing.T) {
	mgr := newManager(t, 8)
	commitBlock(t, mgr, 1, 0, "cell", []byte("k"), []byte("v"))

	err := mgr.GenesisLoad(context.Background(), func(view func(moduleIndex uint8) runtimeInterface.StateWriter) error {
		return nil
	})
	assert.Error(t, err)
}
