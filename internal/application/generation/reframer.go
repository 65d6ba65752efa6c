package generation

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"scribe-ai-api/pkg/logger"
	"scribe-ai-api/pkg/metrics"
)

const doneSentinel = "[DONE]"

// chatChunk 上游 SSE 数据块中需要的字段
type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// metadataRecord 下行流首条记录
type metadataRecord struct {
	Type             string `json:"type"`
	RemainingCredits int    `json:"remainingCredits"`
}

// contentRecord 下行流内容记录
type contentRecord struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// flusher 支持逐记录刷出的写入器
type flusher interface {
	Flush()
}

// Reframer 把上游 SSE 流改写为按行分隔的 JSON 记录流
type Reframer struct{}

// NewReframer 创建流改写器
func NewReframer() *Reframer {
	return &Reframer{}
}

// Reframe 转发一次生成流
// 先写出 metadata 记录，再把每个上游增量改写为 content 记录；
// 收到 [DONE] 哨兵后正常结束，不写任何收尾记录。
// 无法解析的上游行跳过并记录，不中断流。
func (r *Reframer) Reframe(ctx context.Context, upstream io.Reader, w io.Writer, remainingCredits int) error {
	if err := writeRecord(w, metadataRecord{Type: "metadata", RemainingCredits: remainingCredits}); err != nil {
		return err
	}
	metrics.StreamRecordsTotal.WithLabelValues("metadata").Inc()

	scanner := bufio.NewScanner(upstream)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			metrics.StreamTruncatedTotal.Inc()
			return ctx.Err()
		default:
		}

		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == doneSentinel {
			return nil
		}

		var chunk chatChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			logger.Warn(ctx, "skipping malformed upstream record", "error", err.Error())
			metrics.StreamMalformedRecords.Inc()
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}

		if err := writeRecord(w, contentRecord{Type: "content", Content: delta}); err != nil {
			// 客户端断开，上游流由调用方关闭
			return err
		}
		metrics.StreamRecordsTotal.WithLabelValues("content").Inc()
	}

	if err := scanner.Err(); err != nil {
		// 上游中途断流，已转发的内容保持原样
		logger.Warn(ctx, "upstream stream ended before sentinel", "error", err.Error())
		metrics.StreamTruncatedTotal.Inc()
		return nil
	}

	metrics.StreamTruncatedTotal.Inc()
	return nil
}

// writeRecord 写出一条 JSON 记录并立即刷出
func writeRecord(w io.Writer, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	if f, ok := w.(flusher); ok {
		f.Flush()
	}
	return nil
}
