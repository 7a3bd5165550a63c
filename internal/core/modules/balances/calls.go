package balances

import (
	"math/big"

	"github.com/weisyn/kernel/pkg/types"
)

// 操作索引
const (
	// CallIndexTransfer Transfer操作
	CallIndexTransfer uint8 = 0
)

// transferOverheadLen 编码开销：操作索引(1) + 接收方(32) + 金额(16)
const transferOverheadLen = 1 + 32 + 16

// 确保调用类型实现 types.Call
var _ types.Call = (*TransferCall)(nil)

// TransferCall 余额转移操作
//
// 📋 **前置条件**：来源必须为已签名账户；金额为正且发送方余额充足
type TransferCall struct {
	// Index 目标模块索引（由构造方设置）
	Index uint8

	// To 接收方账户
	To types.AccountID

	// Value 转移金额
	Value *big.Int
}

// ModuleIndex 目标模块索引
func (c *TransferCall) ModuleIndex() uint8 { return c.Index }

// CallIndex 模块内操作索引
func (c *TransferCall) CallIndex() uint8 { return CallIndexTransfer }

// EncodedLen 调用参数的编码字节长度（金额按固定宽度计）
func (c *TransferCall) EncodedLen() int { return transferOverheadLen }
