// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"scribe-ai-api/internal/application/auth"
	"scribe-ai-api/internal/interfaces/http/dto"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	service *auth.Service
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register 注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	p, tokens, err := h.service.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		dto.AppError(c, err)
		return
	}

	profileResp := dto.NewProfileResponse(p)
	dto.Created(c, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Profile:      &profileResp,
	})
}

// Login 登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	p, tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dto.AppError(c, err)
		return
	}

	profileResp := dto.NewProfileResponse(p)
	dto.Success(c, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Profile:      &profileResp,
	})
}

// Refresh 刷新令牌
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}
