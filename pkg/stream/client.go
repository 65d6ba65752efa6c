// Package stream 提供生成流协议的客户端消费能力。
//
// 协议为逐行 JSON：首条记录为 {"type":"metadata","remainingCredits":N}，
// 之后每条为 {"type":"content","content":"..."}。流结束即为生成结束；
// 协议不携带结束哨兵，提前断开的流只能视为"可能不完整"。
package stream

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// RecordTypeMetadata 元数据记录类型
const RecordTypeMetadata = "metadata"

// RecordTypeContent 内容记录类型
const RecordTypeContent = "content"

// Record 流协议中的一条记录
type Record struct {
	Type             string `json:"type"`
	Content          string `json:"content,omitempty"`
	RemainingCredits int    `json:"remainingCredits,omitempty"`
}

// Result 消费完成后的汇总结果
type Result struct {
	// Text 按到达顺序拼接的全部内容片段
	Text string
	// RemainingCredits 元数据记录携带的剩余积分快照
	RemainingCredits int
	// SawMetadata 是否收到过元数据记录
	SawMetadata bool
	// Fragments 收到的内容片段数
	Fragments int
}

// Consume 增量读取逐行 JSON 流并累积内容。
// onFragment 非 nil 时对每个内容片段调用一次（用于渐进渲染）。
// 无法解析的行被跳过而非中止累积，与服务端尽力而为的策略一致。
func Consume(r io.Reader, onFragment func(fragment string)) (*Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	result := &Result{}
	var sb strings.Builder

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			// 坏行跳过，保住其余内容
			continue
		}

		switch rec.Type {
		case RecordTypeMetadata:
			result.RemainingCredits = rec.RemainingCredits
			result.SawMetadata = true
		case RecordTypeContent:
			if rec.Content == "" {
				continue
			}
			sb.WriteString(rec.Content)
			result.Fragments++
			if onFragment != nil {
				onFragment(rec.Content)
			}
		}
	}

	result.Text = sb.String()

	if err := scanner.Err(); err != nil {
		// 读取中断：已累积的内容仍然返回，调用方须按不完整处理
		return result, err
	}
	return result, nil
}
