// Package executive 实现区块调度执行器
//
// 🎯 **核心职责**
// - 区块生命周期编排：StartBlock → ApplyExtrinsic* → FinalizeBlock
// - 命令准入检查：来源 → 序号 → 称重 → 限额 → 收费，全部通过才进入调度
// - 权重记账：累计权重永不越过区块限额（仅允许多记账，不允许少记账）
//
// 📋 **阶段机**：Idle → Applying → Idle（严格串行，区块之间无重叠）
// ⚠️ **致命错误**：记账不变量被破坏时中止整个区块，绝不静默吸收
package executive

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/weisyn/kernel/internal/core/fee"
	"github.com/weisyn/kernel/internal/core/infrastructure/metrics"
	"github.com/weisyn/kernel/internal/core/runtime/registry"
	"github.com/weisyn/kernel/internal/core/state"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"github.com/weisyn/kernel/pkg/types"
)

// phase 执行器阶段
type phase int

const (
	phaseIdle     phase = iota // 无进行中的区块
	phaseApplying              // 区块已开始，可应用命令
)

// Params 执行器构造参数
type Params struct {
	Registry  *registry.Registry
	State     *state.Manager
	Fees      *fee.Engine
	Sequencer runtimeInterface.Sequencer
	// SequencerIndex 序号能力实现方的模块索引（序号存储单元的归属）
	SequencerIndex uint8
	// CurrencyIndex 货币能力实现方的模块索引（余额存储单元的归属）
	CurrencyIndex uint8
	Weights       types.BlockWeights
	EventBus      event.EventBus   // 可选
	Metrics       *metrics.Metrics // 可选
	Logger        log.Logger       // 可选
}

// Executive 区块调度执行器
type Executive struct {
	registry       *registry.Registry
	state          *state.Manager
	fees           *fee.Engine
	sequencer      runtimeInterface.Sequencer
	sequencerIndex uint8
	currencyIndex  uint8
	weights        types.BlockWeights
	bus            event.EventBus
	metrics        *metrics.Metrics
	logger         log.Logger

	mu    sync.Mutex
	phase phase

	// === 当前区块记账（仅在 phaseApplying 期间有效） ===
	block          *state.BlockState
	totalWeight    types.Weight // 全部分类的累计权重
	normalWeight   types.Weight // 普通类累计权重
	events         []types.RuntimeEvent
	extrinsicIndex uint32
	feesCollected  *big.Int
}

// New 创建调度执行器
func New(p Params) (*Executive, error) {
	if p.Registry == nil {
		return nil, fmt.Errorf("executive: 模块注册表不能为空")
	}
	if p.State == nil {
		return nil, fmt.Errorf("executive: 状态管理器不能为空")
	}
	if p.Fees == nil {
		return nil, fmt.Errorf("executive: 费用引擎不能为空")
	}
	if p.Sequencer == nil {
		return nil, fmt.Errorf("executive: 序号能力绑定不能为空")
	}
	if p.Weights.MaxBlock.IsZero() {
		return nil, fmt.Errorf("executive: 区块权重上限不能为零")
	}
	if p.Weights.MaxNormal.AnyExceeds(p.Weights.MaxBlock) {
		return nil, fmt.Errorf("executive: 普通类子限额不能超过区块上限")
	}

	return &Executive{
		registry:       p.Registry,
		state:          p.State,
		fees:           p.Fees,
		sequencer:      p.Sequencer,
		sequencerIndex: p.SequencerIndex,
		currencyIndex:  p.CurrencyIndex,
		weights:        p.Weights,
		bus:            p.EventBus,
		metrics:        p.Metrics,
		logger:         p.Logger,
		phase:          phaseIdle,
	}, nil
}

// ============================================================================
//                           区块生命周期
// ============================================================================

// StartBlock 开始处理一个新区块
//
// 按注册顺序执行所有模块的 OnInitialize 钩子，
// 钩子消耗的权重计入区块累计量。
func (e *Executive) StartBlock(ctx context.Context, height uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != phaseIdle {
		return fmt.Errorf("区块 %d 尚未终结，不能开始区块 %d", e.block.Height(), height)
	}

	bs, err := e.state.BeginBlock(height)
	if err != nil {
		return fmt.Errorf("开始区块失败: %w", err)
	}

	e.block = bs
	e.totalWeight = types.ZeroWeight
	e.normalWeight = types.ZeroWeight
	e.events = nil
	e.extrinsicIndex = 0
	e.feesCollected = new(big.Int)

	// 区块前钩子
	for _, mod := range e.registry.Ordered() {
		hookWeight := mod.OnInitialize(ctx, height, bs.View(ctx, mod.Index()))
		e.totalWeight = e.totalWeight.Add(hookWeight)
	}

	if e.totalWeight.AnyExceeds(e.weights.MaxBlock) {
		bs.Abort()
		e.phase = phaseIdle
		e.block = nil
		return types.NewFatalError("区块前钩子权重超过区块上限", nil)
	}

	e.phase = phaseApplying

	if e.metrics != nil {
		e.metrics.BlockHeight.Set(float64(height))
		e.metrics.BlockWeightCompute.Set(float64(e.totalWeight.Compute))
		e.metrics.BlockWeightProofSize.Set(float64(e.totalWeight.ProofSize))
	}
	if e.bus != nil {
		e.bus.Publish(event.TopicBlockStarted, height)
	}
	if e.logger != nil {
		e.logger.Debugf("区块 %d 开始处理", height)
	}
	return nil
}

// ApplyExtrinsic 应用一条外部命令
//
// 📋 **准入序列**（任一步失败即拒绝，不收费、不推进序号）：
//  1. 结构检查（命令与调用非空、模块与操作已注册）
//  2. 序号检查（签名命令的nonce必须与链上序号精确相等）
//  3. 称重（声明权重 + 基础权重）
//  4. 限额检查（普通类双重限额，运维类仅区块上限）
//  5. 收费（执行前全额收取，失败不退款）
//
// 准入通过后在调用级状态帧内调度：
// 模块功能性失败照常收费并推进序号，只丢弃该调用的局部状态变更。
func (e *Executive) ApplyExtrinsic(ctx context.Context, ext *types.Extrinsic) (*types.DispatchOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != phaseApplying {
		return nil, fmt.Errorf("没有进行中的区块，不能应用命令")
	}

	outcome, err := e.applyLocked(ctx, ext)
	if err != nil && types.IsFatal(err) {
		// 致命错误：中止整个区块
		e.block.Abort()
		e.block = nil
		e.phase = phaseIdle
		if e.logger != nil {
			e.logger.Errorf("区块处理因致命错误中止: %v", err)
		}
		return nil, err
	}
	return outcome, err
}

// applyLocked 执行单条命令的完整准入与调度
// 调用方必须持有 e.mu
func (e *Executive) applyLocked(ctx context.Context, ext *types.Extrinsic) (*types.DispatchOutcome, error) {
	index := e.extrinsicIndex
	e.extrinsicIndex++

	// --- 1. 结构检查 ---
	if ext == nil || ext.Call == nil {
		return e.reject(types.ClassNormal, types.ErrMalformedExtrinsic), nil
	}

	// --- 2. 来源与序号检查（仅签名命令持有序号） ---
	var origin types.Origin
	if ext.Signer != nil {
		origin = types.SignedOrigin(*ext.Signer)
		seqView := e.block.View(ctx, e.sequencerIndex)
		current, err := e.sequencer.Nonce(ctx, seqView, *ext.Signer)
		if err != nil {
			return nil, types.NewFatalError("读取账户序号失败", err)
		}
		if ext.Nonce != current {
			return e.reject(types.ClassNormal, fmt.Errorf("期望 %d, 实际 %d: %w",
				current, ext.Nonce, types.ErrBadSequence)), nil
		}
	} else {
		origin = types.NoneOrigin()
	}

	// --- 3. 称重 ---
	declared, class, err := e.registry.Weigh(ext.Call)
	if err != nil {
		return e.reject(class, err), nil
	}
	chargeable := declared.Add(e.weights.BaseExtrinsic)

	// --- 4. 限额检查 ---
	if err := e.checkLimitsLocked(chargeable, class); err != nil {
		return e.reject(class, err), nil
	}

	// --- 5. 收费（执行前全额收取） ---
	feeAmount := new(big.Int)
	if ext.Signer != nil {
		feeAmount = e.fees.Assess(chargeable, ext.EncodedLen(), ext.TipValue())
		feeView := e.block.View(ctx, e.currencyIndex)
		if err := e.fees.Charge(ctx, feeView, *ext.Signer, feeAmount); err != nil {
			if errors.Is(err, types.ErrInsufficientFunds) {
				return e.reject(class, err), nil
			}
			return nil, types.NewFatalError("费用收取失败", err)
		}

		// 收费成功后推进序号：无论后续调度成败，序号都已消耗
		if err := e.sequencer.BumpNonce(ctx, e.block.View(ctx, e.sequencerIndex), *ext.Signer); err != nil {
			return nil, types.NewFatalError("推进账户序号失败", err)
		}
	}

	// --- 6. 调用级状态帧内调度 ---
	frame := e.block.Nested()
	sink := &bufferedSink{moduleIndex: ext.Call.ModuleIndex()}
	result, dispatchErr := e.registry.Dispatch(ctx, origin, ext.Call,
		frame.View(ctx, ext.Call.ModuleIndex()), sink)

	consumed := chargeable
	if dispatchErr == nil && result != nil && result.ActualWeight != nil {
		// 实际权重只会缩小记账，从不放大
		consumed = result.ActualWeight.Add(e.weights.BaseExtrinsic).Min(chargeable)
	}

	if dispatchErr != nil {
		// 失败调用的局部状态变更整体丢弃；费用与序号保留在区块层
		frame.Discard()

		if types.IsFatal(dispatchErr) {
			return nil, dispatchErr
		}
		if _, ok := types.AsModuleError(dispatchErr); !ok && !errors.Is(dispatchErr, types.ErrBadOrigin) {
			// 模块返回了未分类错误：按功能性失败记账，但原样向上传递
			if e.logger != nil {
				e.logger.Warnf("模块 %d 返回未分类错误: %v", ext.Call.ModuleIndex(), dispatchErr)
			}
		}

		e.accountLocked(consumed, class, feeAmount)
		e.observeExtrinsic(metrics.ResultFailed, feeAmount)
		return &types.DispatchOutcome{
			Success:        false,
			Class:          class,
			WeightConsumed: consumed,
			FeePaid:        feeAmount,
			Err:            dispatchErr,
		}, nil
	}

	// 成功：并入区块层，事件按命令序号归档
	frame.Commit()
	e.events = append(e.events, sink.drain(&index)...)
	e.accountLocked(consumed, class, feeAmount)
	e.observeExtrinsic(metrics.ResultApplied, feeAmount)

	return &types.DispatchOutcome{
		Success:        true,
		Class:          class,
		WeightConsumed: consumed,
		FeePaid:        feeAmount,
	}, nil
}

// FinalizeBlock 终结当前区块
//
// 按注册顺序执行所有模块的 OnFinalize 钩子，
// 原子提交状态与事件日志，并对外发布事件流。
func (e *Executive) FinalizeBlock(ctx context.Context) (*types.BlockEvents, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != phaseApplying {
		return nil, fmt.Errorf("没有进行中的区块，不能终结")
	}

	height := e.block.Height()

	// 区块后钩子
	for _, mod := range e.registry.Ordered() {
		if err := mod.OnFinalize(ctx, height, e.block.View(ctx, mod.Index())); err != nil {
			e.block.Abort()
			e.block = nil
			e.phase = phaseIdle
			return nil, types.NewFatalError(
				fmt.Sprintf("模块 %s 的区块后钩子失败", mod.Name()), err)
		}
	}

	// 记账不变量复核：累计权重必须仍在限额之内
	if e.totalWeight.AnyExceeds(e.weights.MaxBlock) {
		e.block.Abort()
		e.block = nil
		e.phase = phaseIdle
		return nil, types.NewFatalError("累计权重超过区块上限，记账不变量被破坏", nil)
	}

	blockEvents := &types.BlockEvents{Height: height, Events: e.events}
	if err := e.block.Commit(ctx, blockEvents); err != nil {
		e.block.Abort()
		e.block = nil
		e.phase = phaseIdle
		return nil, fmt.Errorf("终结区块 %d 失败: %w", height, err)
	}

	e.block = nil
	e.phase = phaseIdle

	if e.metrics != nil {
		e.metrics.EventsEmittedTotal.Add(float64(len(blockEvents.Events)))
	}
	if e.bus != nil {
		for i := range blockEvents.Events {
			e.bus.Publish(event.TopicRuntimeEvent, blockEvents.Events[i])
		}
		e.bus.Publish(event.TopicBlockFinalized, blockEvents)
	}
	if e.logger != nil {
		e.logger.Infof("区块 %d 已终结: 命令数=%d, 事件数=%d, 累计权重=%s",
			height, e.extrinsicIndex, len(blockEvents.Events), e.totalWeight)
	}
	return blockEvents, nil
}

// ============================================================================
//                           侧效自由的预估
// ============================================================================

// Estimate 预估一条命令的权重与费用（不触碰任何状态）
func (e *Executive) Estimate(ext *types.Extrinsic) (types.Weight, *big.Int, error) {
	if ext == nil || ext.Call == nil {
		return types.ZeroWeight, nil, types.ErrMalformedExtrinsic
	}
	declared, _, err := e.registry.Weigh(ext.Call)
	if err != nil {
		return types.ZeroWeight, nil, err
	}
	chargeable := declared.Add(e.weights.BaseExtrinsic)
	return chargeable, e.fees.Assess(chargeable, ext.EncodedLen(), ext.TipValue()), nil
}

// ============================================================================
//                           内部辅助
// ============================================================================

// checkLimitsLocked 限额检查
// 普通类受子限额与区块上限双重约束；运维类只受区块上限约束
func (e *Executive) checkLimitsLocked(chargeable types.Weight, class types.DispatchClass) error {
	if e.totalWeight.Add(chargeable).AnyExceeds(e.weights.MaxBlock) {
		return types.ErrExceedsBlockLimit
	}
	if class == types.ClassNormal && e.normalWeight.Add(chargeable).AnyExceeds(e.weights.MaxNormal) {
		return types.ErrExceedsBlockLimit
	}
	return nil
}

// accountLocked 将消耗计入区块累计量
func (e *Executive) accountLocked(consumed types.Weight, class types.DispatchClass, feeAmount *big.Int) {
	e.totalWeight = e.totalWeight.Add(consumed)
	if class == types.ClassNormal {
		e.normalWeight = e.normalWeight.Add(consumed)
	}
	if feeAmount != nil {
		e.feesCollected.Add(e.feesCollected, feeAmount)
	}
	if e.metrics != nil {
		e.metrics.BlockWeightCompute.Set(float64(e.totalWeight.Compute))
		e.metrics.BlockWeightProofSize.Set(float64(e.totalWeight.ProofSize))
	}
}

// reject 构造拒绝结果（不收费、不记账、不推进序号）
func (e *Executive) reject(class types.DispatchClass, err error) *types.DispatchOutcome {
	e.observeExtrinsic(metrics.ResultRejected, nil)
	return &types.DispatchOutcome{
		Success:        false,
		Class:          class,
		WeightConsumed: types.ZeroWeight,
		FeePaid:        new(big.Int),
		Err:            err,
	}
}

// observeExtrinsic 记录命令处理指标
func (e *Executive) observeExtrinsic(result string, feeAmount *big.Int) {
	if e.metrics == nil {
		return
	}
	e.metrics.ExtrinsicsTotal.WithLabelValues(result).Inc()
	if feeAmount != nil && feeAmount.Sign() > 0 {
		feeFloat, _ := new(big.Float).SetInt(feeAmount).Float64()
		e.metrics.FeesChargedTotal.Add(feeFloat)
	}
}
