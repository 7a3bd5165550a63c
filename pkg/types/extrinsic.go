// Package types 外部命令（Extrinsic）与调度分类类型定义
//
// 🎯 **设计理念**
// 外部命令是进入内核的唯一写入路径。命令的签名验证与网络传输由
// 外部协作者完成，内核只复核序号（nonce）与权重/费用约束。
package types

import "math/big"

// ============================================================================
//                           调度分类
// ============================================================================

// DispatchClass 调度分类
//
// 🎯 **功能**：区分普通命令与运维命令的限额池
// 📋 **语义**：
//   - Normal: 普通命令，受普通类子限额约束
//   - Operational: 运维命令，绕过普通类子限额，但仍受区块绝对上限约束
type DispatchClass int

const (
	// ClassNormal 普通调度类
	ClassNormal DispatchClass = iota
	// ClassOperational 运维调度类
	ClassOperational
)

// String 返回调度分类的字符串表示
func (c DispatchClass) String() string {
	switch c {
	case ClassOperational:
		return "operational"
	default:
		return "normal"
	}
}

// BlockWeights 区块权重限额配置
//
// 📋 **约束关系**：
//   - MaxBlock 是区块的绝对上限，任何分类的累计权重都不得令总量越过它
//   - MaxNormal 是普通类的子限额（仅约束普通类累计量）
//
// 组合期固定，运行期只读。
type BlockWeights struct {
	// BaseExtrinsic 每条命令的固定基础权重（进入累计量）
	BaseExtrinsic Weight `json:"base_extrinsic"`
	// MaxBlock 区块绝对权重上限
	MaxBlock Weight `json:"max_block"`
	// MaxNormal 普通类权重子限额
	MaxNormal Weight `json:"max_normal"`
}

// ============================================================================
//                           命令与调用
// ============================================================================

// Call 模块操作调用（按模块索引标记的可区分联合）
//
// 🎯 **功能**：将一次操作调用静态地定位到 (模块索引, 操作索引)
// 📋 **实现**：每个运行时模块提供自己的具体调用结构体，
// 路由在模块内部通过类型开关穷尽处理
type Call interface {
	// ModuleIndex 目标模块索引
	ModuleIndex() uint8

	// CallIndex 模块内操作索引
	CallIndex() uint8

	// EncodedLen 调用参数的编码字节长度（用于按长度计费）
	EncodedLen() int
}

// ExtrinsicOverheadLen 命令头部（签名者、序号、小费等）的编码长度
const ExtrinsicOverheadLen = 1 + AccountIDLength + 8 + 16

// Extrinsic 外部命令
//
// 🎯 **业务语义**：外部提交的、带序号的、指向单个模块操作的指令
// 📋 **不变量**：Nonce 必须与签名账户的链上序号精确相等，
// 成功应用后序号加一，防止重放
type Extrinsic struct {
	// Signer 签名账户（nil 表示系统插入的无签名命令）
	Signer *AccountID

	// Call 目标模块操作调用
	Call Call

	// Nonce 账户序号
	Nonce uint64

	// Tip 可选附加小费（nil 视为零）
	Tip *big.Int
}

// EncodedLen 命令整体的编码字节长度
func (e *Extrinsic) EncodedLen() int {
	if e == nil || e.Call == nil {
		return 0
	}
	return ExtrinsicOverheadLen + e.Call.EncodedLen()
}

// TipValue 返回小费金额（nil 安全）
func (e *Extrinsic) TipValue() *big.Int {
	if e == nil || e.Tip == nil {
		return new(big.Int)
	}
	return e.Tip
}
