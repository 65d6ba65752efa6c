// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"scribe-ai-api/internal/infrastructure/persistence/postgres"
	"scribe-ai-api/internal/infrastructure/persistence/redis"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	pg      *postgres.Client
	redis   *redis.Client
	version string
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(pg *postgres.Client, redisClient *redis.Client, version string) *HealthHandler {
	return &HealthHandler{
		pg:      pg,
		redis:   redisClient,
		version: version,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Live 存活检查接口
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready 就绪检查接口，并行探测 Postgres 和 Redis
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"postgres": {Status: "unknown"},
		"redis":    {Status: "unknown"},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runCheck(gctx, checks["postgres"], h.pg.HealthCheck)
	})
	g.Go(func() error {
		return runCheck(gctx, checks["redis"], h.redis.HealthCheck)
	})

	status := http.StatusOK
	overall := "ready"
	if err := g.Wait(); err != nil {
		status = http.StatusServiceUnavailable
		overall = "not_ready"
	}

	c.JSON(status, readinessResponse{
		Status: overall,
		Checks: checks,
	})
}

// runCheck 执行一次依赖探测并记录延迟
func runCheck(ctx context.Context, check *readinessCheck, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	check.LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		check.Status = "error"
		check.Error = err.Error()
		return err
	}
	check.Status = "ok"
	return nil
}
