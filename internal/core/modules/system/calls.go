package system

import "github.com/weisyn/kernel/pkg/types"

// 操作索引
const (
	// CallIndexRemark Remark操作
	CallIndexRemark uint8 = 0
)

// 确保调用类型实现 types.Call
var _ types.Call = (*RemarkCall)(nil)

// RemarkCall 链上备注操作
//
// 📋 **前置条件**：来源必须为已签名账户；数据长度不超过能力绑定的上限
type RemarkCall struct {
	// Index 目标模块索引（由构造方设置）
	Index uint8

	// Data 备注数据
	Data []byte
}

// ModuleIndex 目标模块索引
func (c *RemarkCall) ModuleIndex() uint8 { return c.Index }

// CallIndex 模块内操作索引
func (c *RemarkCall) CallIndex() uint8 { return CallIndexRemark }

// EncodedLen 调用参数的编码字节长度
func (c *RemarkCall) EncodedLen() int { return 2 + len(c.Data) }
