// Package state 实现模块存储单元的状态管理
//
// 🎯 **核心职责**
// - 为每个运行时模块提供独占的键值存储单元视图
// - 区块级/调用级两层写覆盖：调用失败只丢调用层，区块终结原子落盘
// - 维护最近若干区块的撤销日志，支持按区块高度的历史只读查询
// - 创世状态的一次性加载与防重放标记
//
// 📋 **所有权模型**：
// 模块独占自己的存储单元；跨模块访问一律经由能力接口，
// 任何组件都拿不到别的模块的写视图。
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"

	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/kernel/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/kernel/pkg/types"
)

// Manager 状态管理器
type Manager struct {
	kv     storage.KVStore
	logger log.Logger

	mu           sync.Mutex
	activeBlock  *BlockState  // 当前进行中的区块（同一时刻至多一个）
	lastHeight   uint64       // 最近提交的区块高度
	hasCommitted bool         // 是否已提交过区块
	history      []undoRecord // 撤销日志环（最近的在末尾）
	historyDepth int
}

// undoRecord 单个区块的撤销日志
// prior 记录该区块写入的每个键在写入前的值（nil表示当时不存在）
type undoRecord struct {
	height uint64
	prior  map[string]*[]byte
}

// NewManager 创建状态管理器
func NewManager(kv storage.KVStore, historyDepth int, logger log.Logger) (*Manager, error) {
	if kv == nil {
		return nil, fmt.Errorf("kvStore 不能为空")
	}
	if historyDepth < 0 {
		historyDepth = 0
	}

	m := &Manager{
		kv:           kv,
		logger:       logger,
		historyDepth: historyDepth,
	}

	// 恢复最近提交高度
	raw, err := kv.Get(context.Background(), []byte(metaHeightKey))
	if err != nil {
		return nil, fmt.Errorf("读取链高度失败: %w", err)
	}
	if raw != nil {
		m.lastHeight = decodeHeight(raw)
		m.hasCommitted = true
	}

	return m, nil
}

// LastHeight 返回最近提交的区块高度
// 第二个返回值为false表示尚未提交过任何区块
func (m *Manager) LastHeight() (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastHeight, m.hasCommitted
}

// kvReader 将KVStore适配为覆盖层的底层读取器
type kvReader struct {
	kv storage.KVStore
}

func (r *kvReader) get(ctx context.Context, key []byte) ([]byte, error) {
	return r.kv.Get(ctx, key)
}

// ============================================================================
//                           区块级状态
// ============================================================================

// BlockState 单个区块的可变状态
//
// 📋 **生命周期**：BeginBlock创建 → 命令依次应用 → Commit原子落盘。
// 上一个区块完整终结之前不允许开始下一个区块（严格串行，无重叠）。
type BlockState struct {
	mgr     *Manager
	height  uint64
	overlay *overlay
}

// BeginBlock 开始一个新区块的状态收集
// 存在未终结的区块时返回错误
func (m *Manager) BeginBlock(height uint64) (*BlockState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeBlock != nil {
		return nil, fmt.Errorf("区块 %d 尚未终结，不能开始区块 %d", m.activeBlock.height, height)
	}
	if m.hasCommitted && height != m.lastHeight+1 {
		return nil, fmt.Errorf("区块高度不连续: 期望 %d, 实际 %d", m.lastHeight+1, height)
	}

	bs := &BlockState{
		mgr:     m,
		height:  height,
		overlay: newOverlay(&kvReader{kv: m.kv}),
	}
	m.activeBlock = bs
	return bs, nil
}

// Height 区块高度
func (bs *BlockState) Height() uint64 {
	return bs.height
}

// View 返回绑定到指定模块键空间的读写视图
func (bs *BlockState) View(ctx context.Context, moduleIndex uint8) runtimeInterface.StateWriter {
	return &moduleView{ctx: ctx, moduleIndex: moduleIndex, ov: bs.overlay}
}

// ============================================================================
//                           调用级状态帧
// ============================================================================

// CallFrame 单次操作调用的状态帧
// 承载调用级覆盖层，成功并入区块层，失败整体丢弃
type CallFrame struct {
	block   *BlockState
	overlay *overlay
}

// Nested 在区块状态之上打开一个调用级状态帧
func (bs *BlockState) Nested() *CallFrame {
	return &CallFrame{
		block:   bs,
		overlay: newOverlay(bs.overlay),
	}
}

// View 返回调用帧内绑定到指定模块键空间的读写视图
func (f *CallFrame) View(ctx context.Context, moduleIndex uint8) runtimeInterface.StateWriter {
	return &moduleView{ctx: ctx, moduleIndex: moduleIndex, ov: f.overlay}
}

// Commit 将调用帧的变更并入区块层
func (f *CallFrame) Commit() {
	f.overlay.mergeInto(f.block.overlay)
}

// Discard 丢弃调用帧的全部变更
func (f *CallFrame) Discard() {
	f.overlay.discard()
}

// ============================================================================
//                           区块提交
// ============================================================================

// Commit 原子提交区块状态与事件日志
//
// 📋 **提交内容**（单个存储事务内完成）：
//   - 区块覆盖层中的全部键值变更
//   - 区块事件日志（支持外部观察者重放）
//   - 最近提交高度
//
// 同时在内存中记录撤销日志，供历史高度的只读查询使用。
func (bs *BlockState) Commit(ctx context.Context, events *types.BlockEvents) error {
	m := bs.mgr
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeBlock != bs {
		return fmt.Errorf("区块状态已失效，不能重复提交")
	}

	prior := make(map[string]*[]byte, len(bs.overlay.writes))

	err := m.kv.RunInTransaction(ctx, func(tx storage.KVTransaction) error {
		// 先记录写入前的旧值（撤销日志），再应用新值
		for k, v := range bs.overlay.writes {
			old, err := tx.Get([]byte(k))
			if err != nil {
				return fmt.Errorf("读取旧值失败: %w", err)
			}
			if old == nil {
				prior[k] = nil
			} else {
				prior[k] = &old
			}

			if v == nil {
				if err := tx.Delete([]byte(k)); err != nil {
					return err
				}
				continue
			}
			if err := tx.Set([]byte(k), *v); err != nil {
				return err
			}
		}

		// 事件日志
		if events != nil {
			encoded, err := json.Marshal(events)
			if err != nil {
				return fmt.Errorf("编码事件日志失败: %w", err)
			}
			if err := tx.Set(eventKey(bs.height), encoded); err != nil {
				return err
			}
		}

		// 链高度
		return tx.Set([]byte(metaHeightKey), encodeHeight(bs.height))
	})
	if err != nil {
		return fmt.Errorf("提交区块 %d 失败: %w", bs.height, err)
	}

	// 撤销日志入环（深度为0表示不保留任何历史）
	if m.historyDepth > 0 {
		m.history = append(m.history, undoRecord{height: bs.height, prior: prior})
		if len(m.history) > m.historyDepth {
			m.history = m.history[len(m.history)-m.historyDepth:]
		}
	}

	m.lastHeight = bs.height
	m.hasCommitted = true
	m.activeBlock = nil

	if m.logger != nil {
		m.logger.Debugf("区块 %d 状态已提交，变更键数: %d", bs.height, len(prior))
	}
	return nil
}

// Abort 放弃当前区块的全部状态变更
// 致命错误中止区块处理时调用
func (bs *BlockState) Abort() {
	m := bs.mgr
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeBlock == bs {
		m.activeBlock = nil
	}
}

// ============================================================================
//                           历史只读查询
// ============================================================================

// ReaderAt 返回指定模块在指定高度的历史只读视图
//
// 📋 **限制**：只能回溯撤销日志覆盖的最近若干个区块；
// 超出范围返回错误而非静默给出错误数据。
func (m *Manager) ReaderAt(ctx context.Context, moduleIndex uint8, height uint64) (runtimeInterface.StateReader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasCommitted || height > m.lastHeight {
		return nil, fmt.Errorf("高度 %d 尚未提交", height)
	}
	if height < m.oldestQueryableLocked() {
		return nil, fmt.Errorf("高度 %d 超出历史保留范围（最早可查 %d）", height, m.oldestQueryableLocked())
	}

	return &moduleReader{
		ctx:         ctx,
		moduleIndex: moduleIndex,
		src:         &historicalReader{mgr: m, height: height},
	}, nil
}

// ReaderLatest 返回指定模块在最新高度的只读视图
func (m *Manager) ReaderLatest(ctx context.Context, moduleIndex uint8) runtimeInterface.StateReader {
	return &moduleReader{
		ctx:         ctx,
		moduleIndex: moduleIndex,
		src:         &kvReader{kv: m.kv},
	}
}

// oldestQueryableLocked 返回撤销日志可回溯到的最早高度
// 调用方必须持有 m.mu
func (m *Manager) oldestQueryableLocked() uint64 {
	if len(m.history) == 0 {
		return m.lastHeight
	}
	// 撤销日志最早覆盖到其首条记录高度的前一个高度
	oldest := m.history[0].height
	if oldest == 0 {
		return 0
	}
	return oldest - 1
}

// historicalReader 按高度回放撤销日志的只读读取器
type historicalReader struct {
	mgr    *Manager
	height uint64
}

func (r *historicalReader) get(ctx context.Context, key []byte) ([]byte, error) {
	value, err := r.mgr.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	r.mgr.mu.Lock()
	defer r.mgr.mu.Unlock()

	// 从最新撤销日志向目标高度回放：
	// 高度H的撤销日志记录了区块H写入前的旧值，
	// 依次应用 H > height 的日志即可还原height时刻的状态
	for i := len(r.mgr.history) - 1; i >= 0; i-- {
		record := r.mgr.history[i]
		if record.height <= r.height {
			break
		}
		if old, ok := record.prior[string(key)]; ok {
			if old == nil {
				value = nil
			} else {
				restored := make([]byte, len(*old))
				copy(restored, *old)
				value = restored
			}
		}
	}
	return value, nil
}

// ============================================================================
//                           事件日志读取
// ============================================================================

// EventsAt 读取指定高度的区块事件日志
// 高度不存在事件日志时返回nil
func (m *Manager) EventsAt(ctx context.Context, height uint64) (*types.BlockEvents, error) {
	raw, err := m.kv.Get(ctx, eventKey(height))
	if err != nil {
		return nil, fmt.Errorf("读取事件日志失败: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var events types.BlockEvents
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("解码事件日志失败: %w", err)
	}
	return &events, nil
}

// ============================================================================
//                           创世加载
// ============================================================================

// GenesisLoad 一次性加载创世状态
//
// ⚠️ **约束**：必须发生在首个区块的 Initializing 之前，且仅允许一次。
// 已提交过区块或已加载过创世时返回错误。
func (m *Manager) GenesisLoad(ctx context.Context, load func(view func(moduleIndex uint8) runtimeInterface.StateWriter) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hasCommitted {
		return fmt.Errorf("已存在提交的区块，禁止加载创世状态")
	}

	loaded, err := m.kv.Exists(ctx, []byte(metaGenesisKey))
	if err != nil {
		return fmt.Errorf("检查创世标记失败: %w", err)
	}
	if loaded {
		return fmt.Errorf("创世状态已加载，禁止重复加载")
	}

	ov := newOverlay(&kvReader{kv: m.kv})
	viewFor := func(moduleIndex uint8) runtimeInterface.StateWriter {
		return &moduleView{ctx: ctx, moduleIndex: moduleIndex, ov: ov}
	}
	if err := load(viewFor); err != nil {
		return fmt.Errorf("创世状态构建失败: %w", err)
	}

	err = m.kv.RunInTransaction(ctx, func(tx storage.KVTransaction) error {
		for k, v := range ov.writes {
			if v == nil {
				continue
			}
			if err := tx.Set([]byte(k), *v); err != nil {
				return err
			}
		}
		return tx.Set([]byte(metaGenesisKey), []byte{1})
	})
	if err != nil {
		return fmt.Errorf("创世状态落盘失败: %w", err)
	}

	if m.logger != nil {
		m.logger.Infof("创世状态已加载，写入键数: %d", len(ov.writes))
	}
	return nil
}
