// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"scribe-ai-api/internal/application/profile"
	"scribe-ai-api/internal/interfaces/http/dto"
	"scribe-ai-api/internal/interfaces/http/middleware"
)

// ProfileHandler 用户档案处理器
type ProfileHandler struct {
	service *profile.Service
}

// NewProfileHandler 创建档案处理器
func NewProfileHandler(service *profile.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get 获取当前用户档案
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.NewProfileResponse(p))
}

// Packages 列出可购买的积分包
func (h *ProfileHandler) Packages(c *gin.Context) {
	dto.Success(c, profile.Packages())
}

// Purchase 购买积分包
func (h *ProfileHandler) Purchase(c *gin.Context) {
	var req dto.PurchaseCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	balance, err := h.service.Purchase(c.Request.Context(), middleware.GetUserID(c), req.Plan)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.PurchaseCreditsResponse{Credits: balance})
}
