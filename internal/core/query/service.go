// Package query 实现只读查询服务
//
// 🎯 **核心职责**
// - 最新/历史高度的模块存储单元读取
// - 账户序号与余额查询、区块事件日志读取
// - 侧效自由的命令权重与费用预估
//
// ⚠️ **注意**：查询路径永不触碰可变状态，可与区块处理并发进行。
package query

import (
	"context"
	"fmt"
	"math/big"

	"github.com/weisyn/kernel/internal/core/executive"
	"github.com/weisyn/kernel/internal/core/state"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"github.com/weisyn/kernel/pkg/types"
)

// Service 只读查询服务
type Service struct {
	state          *state.Manager
	exec           *executive.Executive
	sequencer      runtimeInterface.Sequencer
	sequencerIndex uint8
	currency       runtimeInterface.Currency
	currencyIndex  uint8
	logger         log.Logger
}

// New 创建查询服务
func New(stateMgr *state.Manager, exec *executive.Executive, sequencer runtimeInterface.Sequencer, sequencerIndex uint8, currency runtimeInterface.Currency, currencyIndex uint8, logger log.Logger) (*Service, error) {
	if stateMgr == nil {
		return nil, fmt.Errorf("query: 状态管理器不能为空")
	}
	if exec == nil {
		return nil, fmt.Errorf("query: 调度执行器不能为空")
	}
	if sequencer == nil || currency == nil {
		return nil, fmt.Errorf("query: 能力绑定不能为空")
	}
	return &Service{
		state:          stateMgr,
		exec:           exec,
		sequencer:      sequencer,
		sequencerIndex: sequencerIndex,
		currency:       currency,
		currencyIndex:  currencyIndex,
		logger:         logger,
	}, nil
}

// LastHeight 返回最近终结的区块高度
// 第二个返回值为false表示链上还没有任何区块
func (s *Service) LastHeight() (uint64, bool) {
	return s.state.LastHeight()
}

// Cell 读取指定模块存储单元在最新高度的值
func (s *Service) Cell(ctx context.Context, moduleIndex uint8, cell string, key []byte) ([]byte, error) {
	return s.state.ReaderLatest(ctx, moduleIndex).Get(cell, key)
}

// CellAt 读取指定模块存储单元在历史高度的值
// 高度超出历史保留范围时返回错误而非静默给出错误数据
func (s *Service) CellAt(ctx context.Context, moduleIndex uint8, cell string, key []byte, height uint64) ([]byte, error) {
	reader, err := s.state.ReaderAt(ctx, moduleIndex, height)
	if err != nil {
		return nil, err
	}
	return reader.Get(cell, key)
}

// Nonce 查询账户在最新高度的序号
func (s *Service) Nonce(ctx context.Context, who types.AccountID) (uint64, error) {
	return s.sequencer.Nonce(ctx, s.state.ReaderLatest(ctx, s.sequencerIndex), who)
}

// NonceAt 查询账户在历史高度的序号
func (s *Service) NonceAt(ctx context.Context, who types.AccountID, height uint64) (uint64, error) {
	reader, err := s.state.ReaderAt(ctx, s.sequencerIndex, height)
	if err != nil {
		return 0, err
	}
	return s.sequencer.Nonce(ctx, reader, who)
}

// Balance 查询账户在最新高度的余额
func (s *Service) Balance(ctx context.Context, who types.AccountID) (*big.Int, error) {
	return s.currency.FreeBalance(ctx, s.state.ReaderLatest(ctx, s.currencyIndex), who)
}

// BalanceAt 查询账户在历史高度的余额
func (s *Service) BalanceAt(ctx context.Context, who types.AccountID, height uint64) (*big.Int, error) {
	reader, err := s.state.ReaderAt(ctx, s.currencyIndex, height)
	if err != nil {
		return nil, err
	}
	return s.currency.FreeBalance(ctx, reader, who)
}

// EventsAt 读取指定高度的区块事件日志
func (s *Service) EventsAt(ctx context.Context, height uint64) (*types.BlockEvents, error) {
	return s.state.EventsAt(ctx, height)
}

// EstimateExtrinsic 预估一条命令的可计费权重与费用（不触碰状态）
func (s *Service) EstimateExtrinsic(ext *types.Extrinsic) (types.Weight, *big.Int, error) {
	return s.exec.Estimate(ext)
}
