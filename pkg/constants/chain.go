// Package constants 定义链级常量
package constants

import "github.com/weisyn/kernel/pkg/types"

// 规范模块索引
//
// ⚠️ **注意**：索引一旦对外发布即不可复用，
// 否则在途命令的路由会产生歧义。
const (
	// ModuleIndexSystem 系统模块
	ModuleIndexSystem uint8 = 0
	// ModuleIndexBalances 余额模块
	ModuleIndexBalances uint8 = 2
	// ModuleIndexValueStore 示例存储模块
	ModuleIndexValueStore uint8 = 10
)

// 默认操作权重（离线基准测量确立，运行期视为常量）
var (
	// DefaultRemarkBaseWeight 系统备注操作的基础权重
	DefaultRemarkBaseWeight = types.NewWeight(1_000_000, 0)

	// DefaultRemarkByteWeight 系统备注操作每字节的附加计算权重
	DefaultRemarkByteWeight = uint64(1_000)

	// DefaultTransferWeight 余额转账操作权重
	DefaultTransferWeight = types.NewWeight(200_000_000, 8_000)

	// DefaultStoreValueWeight 示例存储操作权重
	DefaultStoreValueWeight = types.NewWeight(9_000_000, 0)
)

// DefaultMaxStoredValue 示例存储模块允许的最大存储值
const DefaultMaxStoredValue uint32 = 1<<24 - 1

// DefaultMaxRemarkLen 系统备注数据的最大字节数
const DefaultMaxRemarkLen = 8 * 1024
