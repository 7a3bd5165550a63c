// Package badger 提供基于BadgerDB的存储实现
package badger

import (
	"context"
	"fmt"
	"os"

	badgerdb "github.com/dgraph-io/badger/v3"
	storageconfig "github.com/weisyn/kernel/internal/config/storage"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	interfaces "github.com/weisyn/kernel/pkg/interfaces/infrastructure/storage"
)

// 确保 Store 实现了 interfaces.KVStore 接口
var _ interfaces.KVStore = (*Store)(nil)

// Store 实现KVStore接口
type Store struct {
	db     *badgerdb.DB
	logger log.Logger
}

// New 创建新的BadgerDB存储实例
// 初始化数据库并确保数据目录存在
func New(options *storageconfig.StorageOptions, logger log.Logger) (*Store, error) {
	if options == nil {
		return nil, fmt.Errorf("存储配置不能为空")
	}

	dataDir := options.DataPath
	if dataDir == "" {
		dataDir = "./data/kernel"
		if logger != nil {
			logger.Warnf("BadgerDB数据目录路径未配置，使用默认路径: %s", dataDir)
		}
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("无法创建BadgerDB数据目录 %s: %w", dataDir, err)
	}

	opts := badgerdb.DefaultOptions(dataDir)
	opts.SyncWrites = options.SyncWrites
	// 降低缓存占用：状态单元的工作集远小于Badger默认假设
	opts.BlockCacheSize = 64 << 20
	opts.IndexCacheSize = 64 << 20
	opts.NumMemtables = 2
	opts.Logger = nil

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("打开BadgerDB失败: %w", err)
	}

	if logger != nil {
		logger.Infof("BadgerDB存储已初始化，数据目录: %s", dataDir)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close 关闭BadgerDB数据库连接
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("关闭BadgerDB失败: %w", err)
	}
	return nil
}

// Get 获取指定键的值
// 键不存在时返回nil值和nil错误
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if err == badgerdb.ErrKeyNotFound {
				return nil
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("读取键失败: %w", err)
	}
	return value, nil
}

// Set 设置键值对
func (s *Store) Set(ctx context.Context, key, value []byte) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return fmt.Errorf("写入键失败: %w", err)
	}
	return nil
}

// Delete 删除指定键的值
func (s *Store) Delete(ctx context.Context, key []byte) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("删除键失败: %w", err)
	}
	return nil
}

// Exists 检查键是否存在
func (s *Store) Exists(ctx context.Context, key []byte) (bool, error) {
	exists := false
	err := s.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(key)
		if err != nil {
			if err == badgerdb.ErrKeyNotFound {
				return nil
			}
			return err
		}
		exists = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("检查键是否存在失败: %w", err)
	}
	return exists, nil
}

// PrefixScan 按前缀扫描键值对
func (s *Store) PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error) {
	result := make(map[string][]byte)
	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("复制键值失败: %w", err)
			}
			result[string(item.KeyCopy(nil))] = value
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("前缀扫描失败: %w", err)
	}
	return result, nil
}

// RunInTransaction 在事务中执行操作
// fn返回错误时事务回滚，否则提交
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx interfaces.KVTransaction) error) error {
	return s.db.Update(func(txn *badgerdb.Txn) error {
		return fn(&Transaction{txn: txn})
	})
}
