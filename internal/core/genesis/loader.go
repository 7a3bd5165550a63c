// Package genesis 实现创世状态加载
//
// 🎯 **核心职责**
// - 将创世配置（初始余额、示例存储初值）一次性写入状态
// - 防重放：已加载过创世或已提交过区块时拒绝再次加载
package genesis

import (
	"context"
	"fmt"
	"math/big"

	"github.com/weisyn/kernel/internal/core/modules/valuestore"
	"github.com/weisyn/kernel/internal/core/state"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"github.com/weisyn/kernel/pkg/types"
)

// Loader 创世状态加载器
type Loader struct {
	state *state.Manager
	// currency 货币能力（创世余额经由它写入，保持余额编码的单一出口）
	currency        runtimeInterface.Currency
	currencyIndex   uint8
	valuestoreIndex uint8
	logger          log.Logger
}

// NewLoader 创建创世加载器
func NewLoader(stateMgr *state.Manager, currency runtimeInterface.Currency, currencyIndex, valuestoreIndex uint8, logger log.Logger) (*Loader, error) {
	if stateMgr == nil {
		return nil, fmt.Errorf("genesis: 状态管理器不能为空")
	}
	if currency == nil {
		return nil, fmt.Errorf("genesis: 货币能力绑定不能为空")
	}
	return &Loader{
		state:           stateMgr,
		currency:        currency,
		currencyIndex:   currencyIndex,
		valuestoreIndex: valuestoreIndex,
		logger:          logger,
	}, nil
}

// EnsureLoaded 若链尚无历史则加载创世状态
//
// 📋 **语义**：
//   - 配置为nil时视为空创世，直接返回
//   - 已提交过区块时跳过（重启恢复场景）
//   - 加载动作本身是一次性的，由状态管理器的创世标记保证
func (l *Loader) EnsureLoaded(ctx context.Context, cfg *types.GenesisConfig) error {
	if cfg == nil {
		return nil
	}
	if _, committed := l.state.LastHeight(); committed {
		if l.logger != nil {
			l.logger.Debugf("链已有提交历史，跳过创世加载")
		}
		return nil
	}

	err := l.state.GenesisLoad(ctx, func(view func(moduleIndex uint8) runtimeInterface.StateWriter) error {
		// 初始余额
		balanceView := view(l.currencyIndex)
		for account, amount := range cfg.Balances {
			who, err := types.AccountIDFromString(account)
			if err != nil {
				return fmt.Errorf("创世账户 %q 无效: %w", account, err)
			}
			value, ok := new(big.Int).SetString(amount, 10)
			if !ok || value.Sign() < 0 {
				return fmt.Errorf("创世余额 %q 无效", amount)
			}
			if err := l.currency.Deposit(ctx, balanceView, who, value); err != nil {
				return fmt.Errorf("写入创世余额失败: %w", err)
			}
		}

		// 示例存储初值
		if cfg.StoredValue != nil {
			if err := valuestore.SetValue(view(l.valuestoreIndex), *cfg.StoredValue); err != nil {
				return fmt.Errorf("写入创世存储值失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if l.logger != nil {
		l.logger.Infof("创世状态加载完成: chain_id=%s, 初始账户数=%d", cfg.ChainID, len(cfg.Balances))
	}
	return nil
}
