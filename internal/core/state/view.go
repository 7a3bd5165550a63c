package state

import (
	"context"

	runtimeInterface "github.com/weisyn/kernel/pkg/interfaces/runtime"
)

// 确保视图类型实现运行时状态接口
var (
	_ runtimeInterface.StateWriter = (*moduleView)(nil)
	_ runtimeInterface.StateReader = (*moduleReader)(nil)
)

// moduleView 绑定到单个模块键空间的读写视图
//
// ⚠️ **注意**：视图在创建时即固定模块索引，
// 模块通过视图无法读写其他模块的存储单元。
type moduleView struct {
	ctx         context.Context
	moduleIndex uint8
	ov          *overlay
}

// Get 读取存储单元中指定键的值
func (v *moduleView) Get(cell string, key []byte) ([]byte, error) {
	return v.ov.get(v.ctx, cellKey(v.moduleIndex, cell, key))
}

// Has 检查存储单元中指定键是否存在
func (v *moduleView) Has(cell string, key []byte) (bool, error) {
	value, err := v.Get(cell, key)
	if err != nil {
		return false, err
	}
	return value != nil, nil
}

// Set 写入存储单元中指定键的值
func (v *moduleView) Set(cell string, key, value []byte) error {
	v.ov.set(cellKey(v.moduleIndex, cell, key), value)
	return nil
}

// Delete 删除存储单元中指定键的值
func (v *moduleView) Delete(cell string, key []byte) error {
	v.ov.delete(cellKey(v.moduleIndex, cell, key))
	return nil
}

// moduleReader 绑定到单个模块键空间的只读视图
type moduleReader struct {
	ctx         context.Context
	moduleIndex uint8
	src         reader
}

// Get 读取存储单元中指定键的值
func (r *moduleReader) Get(cell string, key []byte) ([]byte, error) {
	return r.src.get(r.ctx, cellKey(r.moduleIndex, cell, key))
}

// Has 检查存储单元中指定键是否存在
func (r *moduleReader) Has(cell string, key []byte) (bool, error) {
	value, err := r.Get(cell, key)
	if err != nil {
		return false, err
	}
	return value != nil, nil
}
