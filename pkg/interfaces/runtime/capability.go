// Package runtime 跨模块能力接口定义
//
// 📋 **能力绑定 (Capability Binding)**
//
// 模块之间不得直接相互引用，跨模块协作通过本文件定义的能力接口进行：
// 宿主在组合期将某个模块的具体实现绑定到其他组件声明的能力槽位上。
// 典型例子：费用引擎通过 Currency 能力扣款，具体由余额模块实现。
package runtime

import (
	"context"
	"math/big"

	"github.com/weisyn/kernel/pkg/types"
)

// Currency 货币能力
//
// 🎯 **功能**：以余额为载体的价值转移能力
// 📋 **绑定方**：余额模块实现，费用引擎与其他模块消费
type Currency interface {
	// FreeBalance 查询账户可用余额
	FreeBalance(ctx context.Context, state StateReader, who types.AccountID) (*big.Int, error)

	// Withdraw 从账户扣除金额
	// 余额不足时返回 types.ErrInsufficientFunds，且不产生任何状态变更
	Withdraw(ctx context.Context, state StateWriter, who types.AccountID, amount *big.Int) error

	// Deposit 向账户存入金额
	Deposit(ctx context.Context, state StateWriter, who types.AccountID, amount *big.Int) error
}

// Sequencer 账户序号能力
//
// 🎯 **功能**：账户命令序号（nonce）的查询与推进
// 📋 **绑定方**：系统模块实现，调度执行器消费
// ⚠️ **不变量**：序号只能逐一递增，从不跳跃或回退
type Sequencer interface {
	// Nonce 查询账户当前序号
	Nonce(ctx context.Context, state StateReader, who types.AccountID) (uint64, error)

	// BumpNonce 将账户序号加一
	BumpNonce(ctx context.Context, state StateWriter, who types.AccountID) error
}

// FeeAssessor 费用评估能力
//
// 🎯 **功能**：将权重与编码长度换算为费用金额
// 📋 **绑定方**：费用引擎实现，调度执行器与查询服务消费
type FeeAssessor interface {
	// Assess 评估费用（纯函数，无副作用）
	// 换算函数必须对权重与长度单调
	Assess(weight types.Weight, encodedLen int, tip *big.Int) *big.Int
}
