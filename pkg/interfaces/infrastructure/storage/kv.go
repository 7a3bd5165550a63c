// Package storage 提供内核系统的键值存储接口定义
//
// 💾 **键值存储服务 (Key-Value Storage Service)**
//
// 本文件定义了内核系统的键值存储接口，专注于：
// - 高性能存储：键值对的读写与前缀扫描
// - 事务支持：原子批量写入
// - 实现无关：BadgerDB 与内存实现并存，按配置选择
//
// 🔗 **组件关系**
// - KVStore：被状态管理器用于模块存储单元的持久化
// - 与Badger实现：生产环境的默认引擎
// - 与Memory实现：测试与临时运行场景
package storage

import "context"

// KVStore 定义了键值存储的应用接口
// 提供简单易用的键值存储操作，适用于需要高性能键值操作的场景
type KVStore interface {
	// Get 获取指定键的值
	// 如果键不存在，返回nil值和nil错误
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set 设置键值对
	// 如果键已存在，将覆盖原有值
	Set(ctx context.Context, key, value []byte) error

	// Delete 删除指定键的值
	// 如果键不存在，不会返回错误
	Delete(ctx context.Context, key []byte) error

	// Exists 检查键是否存在
	Exists(ctx context.Context, key []byte) (bool, error)

	// PrefixScan 按前缀扫描键值对
	// 返回所有键以指定前缀开头的键值对，map的键为键的字符串表示
	PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error)

	// RunInTransaction 在事务中执行操作
	// fn函数在事务上下文中执行，可以执行多个原子操作
	// 如果fn返回错误，事务将被回滚；成功执行则提交
	RunInTransaction(ctx context.Context, fn func(tx KVTransaction) error) error

	// Close 关闭存储
	// 确保所有待处理的写入落盘，应用关闭时必须调用
	Close() error
}

// KVTransaction 定义了键值存储事务操作接口
// 事务保证所有操作要么全部成功，要么全部失败
type KVTransaction interface {
	// Get 获取指定键的值
	// 如果键不存在，返回nil值和nil错误
	Get(key []byte) ([]byte, error)

	// Set 设置键值对
	Set(key, value []byte) error

	// Delete 删除指定键的值
	Delete(key []byte) error

	// Exists 检查键是否存在
	Exists(key []byte) (bool, error)
}
