package state

import "context"

// reader 覆盖层的底层读取接口
type reader interface {
	get(ctx context.Context, key []byte) ([]byte, error)
}

// overlay 写缓冲覆盖层
//
// 🎯 **功能**：在底层读取之上缓冲写入，支持整体合并或整体丢弃
// 📋 **用途**：
//   - 区块级覆盖层：一个区块内的全部状态变更，终结时原子落盘
//   - 调用级覆盖层：单次操作调用的变更，成功时并入区块层，
//     失败时丢弃（保证操作的全有或全无语义）
type overlay struct {
	parent reader
	// writes 键 → 待写值；nil表示删除
	writes map[string]*[]byte
}

// newOverlay 在指定底层读取器之上创建覆盖层
func newOverlay(parent reader) *overlay {
	return &overlay{
		parent: parent,
		writes: make(map[string]*[]byte),
	}
}

// get 读取键值：优先读本层缓冲，未命中则穿透到底层
func (o *overlay) get(ctx context.Context, key []byte) ([]byte, error) {
	if v, ok := o.writes[string(key)]; ok {
		if v == nil {
			return nil, nil
		}
		out := make([]byte, len(*v))
		copy(out, *v)
		return out, nil
	}
	return o.parent.get(ctx, key)
}

// set 缓冲一次写入
func (o *overlay) set(key, value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)
	o.writes[string(key)] = &stored
}

// delete 缓冲一次删除
func (o *overlay) delete(key []byte) {
	o.writes[string(key)] = nil
}

// mergeInto 将本层全部缓冲并入目标覆盖层
func (o *overlay) mergeInto(target *overlay) {
	for k, v := range o.writes {
		target.writes[k] = v
	}
}

// discard 丢弃本层全部缓冲
func (o *overlay) discard() {
	o.writes = make(map[string]*[]byte)
}

// isEmpty 本层是否无任何缓冲写入
func (o *overlay) isEmpty() bool {
	return len(o.writes) == 0
}
