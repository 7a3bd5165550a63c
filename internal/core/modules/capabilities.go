// Package modules 组装运行时模块集合及其能力绑定
package modules

import (
	"github.com/weisyn/kernel/internal/core/modules/balances"
	"github.com/weisyn/kernel/internal/core/modules/system"
	"github.com/weisyn/kernel/internal/core/modules/valuestore"
	"github.com/weisyn/kernel/pkg/constants"
	"github.com/weisyn/kernel/pkg/types"
)

// systemCapability 系统模块的默认能力绑定
type systemCapability struct{}

func (systemCapability) RemarkBaseWeight() types.Weight { return constants.DefaultRemarkBaseWeight }
func (systemCapability) RemarkByteWeight() uint64       { return constants.DefaultRemarkByteWeight }
func (systemCapability) MaxRemarkLen() int              { return constants.DefaultMaxRemarkLen }

// balancesCapability 余额模块的默认能力绑定
type balancesCapability struct{}

func (balancesCapability) TransferWeight() types.Weight { return constants.DefaultTransferWeight }

// valuestoreCapability 示例存储模块的默认能力绑定
type valuestoreCapability struct{}

func (valuestoreCapability) MaxStoredValue() uint32 { return constants.DefaultMaxStoredValue }
func (valuestoreCapability) StoreValueWeight() types.Weight {
	return constants.DefaultStoreValueWeight
}

// 编译期确认能力绑定满足各模块契约
var (
	_ system.Capability     = systemCapability{}
	_ balances.Capability   = balancesCapability{}
	_ valuestore.Capability = valuestoreCapability{}
)
