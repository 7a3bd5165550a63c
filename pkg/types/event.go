// Package types 运行时事件类型定义
package types

// SubscriptionID 事件订阅标识
type SubscriptionID string

// RuntimeEvent 运行时事件
//
// 🎯 **业务语义**：模块在命令执行过程中发出的通知
// 📋 **不变量**：按模块索引标记、追加写入、发出后不可变，
// 与产生它的区块和命令索引关联
type RuntimeEvent struct {
	// Module 发出事件的模块索引
	Module uint8 `json:"module"`

	// ExtrinsicIndex 产生事件的命令在区块内的序号
	// 事件只能在命令执行过程中发出，该序号始终存在；
	// 指针类型为日志格式预留非命令来源的扩展空间
	ExtrinsicIndex *uint32 `json:"extrinsic_index,omitempty"`

	// Payload 模块自定义的事件负载
	Payload interface{} `json:"payload"`
}

// BlockEvents 单个区块的事件日志
//
// 📋 **语义**：区块内事件的有序集合，区块终结后只读，
// 可从持久化数据完整重放
type BlockEvents struct {
	Height uint64         `json:"height"`
	Events []RuntimeEvent `json:"events"`
}
