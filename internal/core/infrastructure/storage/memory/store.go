// Package memory 提供内存键值存储实现
// 用于测试与临时运行场景，不提供持久化
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/storage"
)

// 确保 Store 实现了 storage.KVStore 接口
var _ storage.KVStore = (*Store)(nil)

// Store 内存键值存储
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New 创建内存存储实例
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get 获取指定键的值
// 键不存在时返回nil值和nil错误
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[string(key)]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set 设置键值对
func (s *Store) Set(ctx context.Context, key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[string(key)] = stored
	return nil
}

// Delete 删除指定键的值
func (s *Store) Delete(ctx context.Context, key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, string(key))
	return nil
}

// Exists 检查键是否存在
func (s *Store) Exists(ctx context.Context, key []byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[string(key)]
	return ok, nil
}

// PrefixScan 按前缀扫描键值对
func (s *Store) PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string][]byte)
	p := string(prefix)
	for k, v := range s.data {
		if strings.HasPrefix(k, p) {
			out := make([]byte, len(v))
			copy(out, v)
			result[k] = out
		}
	}
	return result, nil
}

// RunInTransaction 在事务中执行操作
// 写入先缓冲，fn成功返回后整体应用；失败时丢弃全部缓冲
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx storage.KVTransaction) error) error {
	txn := &transaction{
		store:  s,
		writes: make(map[string]*[]byte),
	}
	if err := fn(txn); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range txn.writes {
		if v == nil {
			delete(s.data, k)
			continue
		}
		s.data[k] = *v
	}
	return nil
}

// Close 关闭存储（内存实现为空操作）
func (s *Store) Close() error {
	return nil
}

// transaction 内存事务：写缓冲 + 读穿透
type transaction struct {
	store *Store
	// writes 键 → 待写值；nil表示删除
	writes map[string]*[]byte
}

func (t *transaction) Get(key []byte) ([]byte, error) {
	if v, ok := t.writes[string(key)]; ok {
		if v == nil {
			return nil, nil
		}
		out := make([]byte, len(*v))
		copy(out, *v)
		return out, nil
	}
	return t.store.Get(context.Background(), key)
}

func (t *transaction) Set(key, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	t.writes[string(key)] = &stored
	return nil
}

func (t *transaction) Delete(key []byte) error {
	t.writes[string(key)] = nil
	return nil
}

func (t *transaction) Exists(key []byte) (bool, error) {
	if v, ok := t.writes[string(key)]; ok {
		return v != nil, nil
	}
	return t.store.Exists(context.Background(), key)
}
