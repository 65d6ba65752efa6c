// Package llm 提供上游 AI 网关的流式访问客户端
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"scribe-ai-api/internal/config"
	"scribe-ai-api/pkg/errors"
	"scribe-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("llm")

// Message 聊天消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest 上游聊天补全请求体
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature float64   `json:"temperature,omitempty"`
}

// Client 上游流式客户端
// 以 SSE 流式模式调用 OpenAI 兼容的 chat/completions 接口，
// 成功时返回未消费的响应体供上层逐行转发
type Client struct {
	config     *config.UpstreamConfig
	httpClient *http.Client
}

// NewClient 创建上游客户端
func NewClient(cfg *config.UpstreamConfig) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			// 不设整体超时，流式响应可能持续数分钟，由 ctx 控制取消
			Timeout: 0,
			Transport: &http.Transport{
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
				ResponseHeaderTimeout: cfg.Timeout,
			},
		},
	}
}

// StreamChat 发起流式聊天补全请求
// 调用方负责关闭返回的 ReadCloser
func (c *Client) StreamChat(ctx context.Context, system, user string) (io.ReadCloser, error) {
	ctx, span := tracer.Start(ctx, "llm.StreamChat")
	span.SetAttributes(attribute.String("llm.model", c.config.Model))
	defer span.End()

	body, err := json.Marshal(chatRequest{
		Model: c.config.Model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream:      true,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		span.RecordError(err)
		return nil, errors.ErrUpstreamFailure.WithError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return nil, errors.ErrUpstreamFailure.WithError(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		metrics.UpstreamCallTotal.WithLabelValues("error").Inc()
		metrics.UpstreamCallDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, errors.ErrUpstreamFailure.WithError(err)
	}

	status := fmt.Sprintf("%d", resp.StatusCode)
	metrics.UpstreamCallTotal.WithLabelValues(status).Inc()
	metrics.UpstreamCallDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("llm.status_code", resp.StatusCode))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.Body, nil
	}

	// 错误响应体较小，读出来附在错误详情里
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return nil, errors.ErrUpstreamRateLimited
	case http.StatusPaymentRequired:
		return nil, errors.ErrUpstreamQuotaExceeded
	default:
		return nil, errors.ErrUpstreamFailure.WithDetail(
			fmt.Sprintf("upstream returned %d: %s", resp.StatusCode, string(detail)))
	}
}
