// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"scribe-ai-api/internal/application/generation"
	"scribe-ai-api/internal/interfaces/http/dto"
	"scribe-ai-api/internal/interfaces/http/middleware"
	"scribe-ai-api/pkg/logger"
)

// GenerateHandler 内容生成处理器
type GenerateHandler struct {
	service *generation.Service
}

// NewGenerateHandler 创建生成处理器
func NewGenerateHandler(service *generation.Service) *GenerateHandler {
	return &GenerateHandler{service: service}
}

// Generate 流式生成内容
// 响应为按行分隔的 JSON 记录：首行 metadata，之后为 content 增量。
// 错误只会在流开始前以 JSON 错误体返回，流一旦开始则以断流表示失败。
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)

	gen, err := h.service.Start(c.Request.Context(), userID, generation.Input{
		ContentType: req.ContentType,
		Prompt:      req.Prompt,
		Tone:        req.Tone,
		Style:       req.Style,
		UserDetails: req.UserDetails,
		SampleMode:  req.SampleMode,
	})
	if err != nil {
		dto.AppError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(200)

	if err := h.service.Relay(c.Request.Context(), gen, c.Writer); err != nil {
		// 响应头已发出，只能记录
		logger.Warn(c.Request.Context(), "generation stream interrupted", "error", err.Error())
	}
}

// ContentTypes 返回全部内容类型及其字段定义
func (h *GenerateHandler) ContentTypes(c *gin.Context) {
	dto.Success(c, h.service.Registry().List())
}
