package executive

import "github.com/weisyn/kernel/pkg/types"

// bufferedSink 调用级事件缓冲
//
// 模块在调度过程中投递的事件先进入缓冲，
// 调用成功才归档进区块事件日志，失败整体丢弃。
type bufferedSink struct {
	moduleIndex uint8
	payloads    []interface{}
}

// Deposit 投递一条事件负载
func (s *bufferedSink) Deposit(payload interface{}) {
	s.payloads = append(s.payloads, payload)
}

// drain 取出缓冲事件并标记产生它们的命令序号
func (s *bufferedSink) drain(extrinsicIndex *uint32) []types.RuntimeEvent {
	if len(s.payloads) == 0 {
		return nil
	}
	events := make([]types.RuntimeEvent, 0, len(s.payloads))
	for _, payload := range s.payloads {
		events = append(events, types.RuntimeEvent{
			Module:         s.moduleIndex,
			ExtrinsicIndex: extrinsicIndex,
			Payload:        payload,
		})
	}
	s.payloads = nil
	return events
}
