package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/kernel/internal/core/infrastructure/storage/memory"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/storage"
)

// TestStore_GetMissing_ReturnsNilNil 验证缺失键的约定返回
func TestStore_GetMissing_ReturnsNilNil(t *testing.T) {
	store := memory.New()

	value, err := store.Get(context.Background(), []byte("missing"))

	require.NoError(t, err)
	assert.Nil(t, value)
}

// TestStore_SetGetDelete_RoundTrip 验证基本读写删
func TestStore_SetGetDelete_RoundTrip(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, []byte("k"), []byte("v")))

	value, err := store.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)

	exists, err := store.Exists(ctx, []byte("k"))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, []byte("k")))
	exists, err = store.Exists(ctx, []byte("k"))
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestStore_PrefixScan 验证前缀扫描只命中匹配键
func TestStore_PrefixScan(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, []byte("s/1/a"), []byte("1")))
	require.NoError(t, store.Set(ctx, []byte("s/1/b"), []byte("2")))
	require.NoError(t, store.Set(ctx, []byte("s/2/a"), []byte("3")))

	result, err := store.PrefixScan(ctx, []byte("s/1/"))

	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, []byte("1"), result["s/1/a"])
}

// TestStore_RunInTransaction_RollsBackOnError 验证事务失败时整体丢弃
func TestStore_RunInTransaction_RollsBackOnError(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, []byte("k"), []byte("old")))

	err := store.RunInTransaction(ctx, func(tx storage.KVTransaction) error {
		if err := tx.Set([]byte("k"), []byte("new")); err != nil {
			return err
		}
		return errors.New("失败")
	})
	require.Error(t, err)

	value, err := store.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), value, "失败的事务不得留下任何写入")
}

// TestStore_RunInTransaction_ReadsOwnWrites 验证事务内读到自己的缓冲写
func TestStore_RunInTransaction_ReadsOwnWrites(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	err := store.RunInTransaction(ctx, func(tx storage.KVTransaction) error {
		if err := tx.Set([]byte("k"), []byte("v")); err != nil {
			return err
		}
		value, err := tx.Get([]byte("k"))
		if err != nil {
			return err
		}
		assert.Equal(t, []byte("v"), value)
		return nil
	})
	require.NoError(t, err)

	value, err := store.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}
