package system

// RemarkedEvent 备注已记录事件
type RemarkedEvent struct {
	Who  string `json:"who"`  // 备注者账户（base58）
	Hash string `json:"hash"` // 备注数据的blake2b摘要（hex）
}
