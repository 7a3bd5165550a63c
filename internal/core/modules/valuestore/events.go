package valuestore

// ValueStoredEvent 存储槽已更新事件
type ValueStoredEvent struct {
	Value uint32 `json:"value"` // 新写入的值
	Who   string `json:"who"`   // 操作者账户（base58）
}
