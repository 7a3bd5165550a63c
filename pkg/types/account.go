// Package types 账户相关公共类型
//
// 🎯 **设计理念**
// 本文件定义账户标识与余额的公共表示。内核对账户的要求刻意保持最小：
// 标识可比较、可复制，余额支持加减与排序，签名验证由外部协作者完成。
package types

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/mr-tron/base58"
)

// AccountIDLength 账户标识字节长度
const AccountIDLength = 32

// AccountID 账户标识（32字节）
//
// 🎯 **业务语义**：命令提交者的链上身份
// 📋 **表示形式**：二进制32字节；对外展示使用base58编码
type AccountID [AccountIDLength]byte

// AccountIDFromBytes 从字节切片构造账户标识
// 长度不等于32字节时返回错误
func AccountIDFromBytes(raw []byte) (AccountID, error) {
	var id AccountID
	if len(raw) != AccountIDLength {
		return id, fmt.Errorf("账户标识长度无效: 期望%d字节, 实际%d字节", AccountIDLength, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// AccountIDFromString 从base58字符串解析账户标识
func AccountIDFromString(encoded string) (AccountID, error) {
	raw, err := base58.Decode(encoded)
	if err != nil {
		return AccountID{}, fmt.Errorf("解析账户标识失败: %w", err)
	}
	return AccountIDFromBytes(raw)
}

// Bytes 返回账户标识的字节表示
func (a AccountID) Bytes() []byte {
	out := make([]byte, AccountIDLength)
	copy(out, a[:])
	return out
}

// String 返回base58编码的账户标识
func (a AccountID) String() string {
	return base58.Encode(a[:])
}

// MarshalJSON 实现JSON序列化（base58字符串形式）
func (a AccountID) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON 实现JSON反序列化
func (a *AccountID) UnmarshalJSON(data []byte) error {
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}
	id, err := AccountIDFromString(encoded)
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// ============================================================================
//                           余额辅助函数
// ============================================================================
//
// 余额使用 *big.Int 表示（128位无符号范围），不变量：永不为负。

// NewBalance 从uint64构造余额
func NewBalance(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// BalanceFromBytes 从big-endian字节解码余额
// 空字节视为零余额
func BalanceFromBytes(raw []byte) *big.Int {
	return new(big.Int).SetBytes(raw)
}

// BalanceToBytes 将余额编码为big-endian字节
func BalanceToBytes(v *big.Int) []byte {
	if v == nil {
		return nil
	}
	return v.Bytes()
}
