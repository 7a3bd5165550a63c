package valuestore

import "github.com/weisyn/kernel/pkg/types"

// 操作索引
const (
	// CallIndexStoreValue StoreValue操作
	CallIndexStoreValue uint8 = 0
)

// 确保调用类型实现 types.Call
var _ types.Call = (*StoreValueCall)(nil)

// StoreValueCall 存储槽覆写操作
//
// 📋 **前置条件**：来源必须为已签名账户；值不超过能力绑定的上限
type StoreValueCall struct {
	// Index 目标模块索引（由构造方设置）
	Index uint8

	// Value 要写入的值
	Value uint32
}

// ModuleIndex 目标模块索引
func (c *StoreValueCall) ModuleIndex() uint8 { return c.Index }

// CallIndex 模块内操作索引
func (c *StoreValueCall) CallIndex() uint8 { return CallIndexStoreValue }

// EncodedLen 调用参数的编码字节长度
func (c *StoreValueCall) EncodedLen() int { return 1 + 4 }
