package balances

// TransferredEvent 余额转移完成事件
type TransferredEvent struct {
	From  string `json:"from"`  // 发送方账户（base58）
	To    string `json:"to"`    // 接收方账户（base58）
	Value string `json:"value"` // 转移金额（十进制字符串）
}
