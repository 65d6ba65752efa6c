// Package middleware 提供 HTTP 中间件
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"scribe-ai-api/internal/interfaces/http/dto"
	"scribe-ai-api/pkg/logger"
	"scribe-ai-api/pkg/utils"
)

// Auth 认证中间件
// 解析 Bearer AccessToken 并把用户信息注入 Context
func Auth(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		claims, err := jwtManager.ParseToken(parts[1])
		if err != nil {
			msg := "invalid token"
			if err == utils.ErrExpiredToken {
				msg = "token expired"
			}
			abortUnauthorized(c, msg)
			return
		}

		// 刷新令牌不能当访问令牌用
		if claims.Type != "access" {
			abortUnauthorized(c, "invalid token type")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("plan", claims.Plan)

		ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// abortUnauthorized 终止请求并返回 401
func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:   msg,
		TraceID: c.GetString("trace_id"),
	})
}

// GetUserID 从 Context 获取已认证的用户 ID
func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
