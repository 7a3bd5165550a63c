// Package state 实现模块存储单元的状态管理
package state

import (
	"encoding/binary"
	"fmt"
)

// 键空间布局
//
// 📋 **布局约定**：
//   - s/<模块索引>/<单元名>/<键>  模块存储单元（模块独占）
//   - m/height                   最近提交的区块高度
//   - m/genesis                  创世加载标记
//   - e/<高度>                   区块事件日志
const (
	cellKeyPrefix = "s/"
	metaHeightKey = "m/height"
	metaGenesisKey = "m/genesis"
	eventKeyPrefix = "e/"
)

// cellKey 构造模块存储单元的完整键
// 单值存储单元使用nil键
func cellKey(moduleIndex uint8, cell string, key []byte) []byte {
	out := make([]byte, 0, len(cellKeyPrefix)+4+len(cell)+1+len(key))
	out = append(out, cellKeyPrefix...)
	out = append(out, fmt.Sprintf("%d/", moduleIndex)...)
	out = append(out, cell...)
	out = append(out, '/')
	out = append(out, key...)
	return out
}

// eventKey 构造区块事件日志的键
func eventKey(height uint64) []byte {
	out := make([]byte, 0, len(eventKeyPrefix)+8)
	out = append(out, eventKeyPrefix...)
	var h [8]byte
	binary.BigEndian.PutUint64(h[:], height)
	return append(out, h[:]...)
}

// encodeHeight 编码区块高度
func encodeHeight(height uint64) []byte {
	var out [8]byte
	binary.BigEndian.PutUint64(out[:], height)
	return out[:]
}

// decodeHeight 解码区块高度
func decodeHeight(raw []byte) uint64 {
	if len(raw) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}
