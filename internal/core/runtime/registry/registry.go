// Package registry 实现运行时模块注册表
//
// 🎯 **核心职责**
// - 维护模块索引 → 模块实例的路由表（组合期固定，运行期只读）
// - 按调用的模块索引路由 Weigh/Dispatch
//
// ⚠️ **不变量**：模块索引全局唯一；重复索引是组合失败而非运行期错误
package registry

import (
	"context"
	"fmt"
	"sort"

	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
	"github.com/weisyn/kernel/pkg/types"
)

// Registry 运行时模块注册表
type Registry struct {
	byIndex map[uint8]runtimeInterface.Module
	ordered []runtimeInterface.Module
}

// New 根据模块列表建立注册表
//
// 列表顺序即钩子触发顺序。索引重复时返回错误并带出冲突双方的名称。
func New(mods []runtimeInterface.Module) (*Registry, error) {
	if len(mods) == 0 {
		return nil, fmt.Errorf("注册表至少需要一个模块")
	}

	byIndex := make(map[uint8]runtimeInterface.Module, len(mods))
	ordered := make([]runtimeInterface.Module, 0, len(mods))
	for _, mod := range mods {
		if mod == nil {
			return nil, fmt.Errorf("模块列表包含空模块")
		}
		if existing, ok := byIndex[mod.Index()]; ok {
			return nil, fmt.Errorf("模块索引冲突: %d 同时被 %s 与 %s 占用",
				mod.Index(), existing.Name(), mod.Name())
		}
		byIndex[mod.Index()] = mod
		ordered = append(ordered, mod)
	}

	return &Registry{byIndex: byIndex, ordered: ordered}, nil
}

// Lookup 按索引查找模块
func (r *Registry) Lookup(index uint8) (runtimeInterface.Module, error) {
	mod, ok := r.byIndex[index]
	if !ok {
		return nil, fmt.Errorf("模块索引 %d: %w", index, types.ErrUnknownModule)
	}
	return mod, nil
}

// Weigh 路由一次操作成本查询
func (r *Registry) Weigh(call types.Call) (types.Weight, types.DispatchClass, error) {
	if call == nil {
		return types.ZeroWeight, types.ClassNormal, types.ErrMalformedExtrinsic
	}
	mod, err := r.Lookup(call.ModuleIndex())
	if err != nil {
		return types.ZeroWeight, types.ClassNormal, err
	}
	return mod.Weigh(call)
}

// Dispatch 路由一次操作执行
func (r *Registry) Dispatch(ctx context.Context, origin types.Origin, call types.Call, state runtimeInterface.StateWriter, events runtimeInterface.EventSink) (*runtimeInterface.DispatchResult, error) {
	if call == nil {
		return nil, types.ErrMalformedExtrinsic
	}
	mod, err := r.Lookup(call.ModuleIndex())
	if err != nil {
		return nil, err
	}
	return mod.Dispatch(ctx, origin, call, state, events)
}

// Ordered 返回钩子触发顺序的模块列表
func (r *Registry) Ordered() []runtimeInterface.Module {
	return r.ordered
}

// Indices 返回已注册的模块索引（升序，用于诊断输出）
func (r *Registry) Indices() []uint8 {
	indices := make([]uint8, 0, len(r.byIndex))
	for idx := range r.byIndex {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	return indices
}
