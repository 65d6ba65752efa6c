// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scribe-ai-api/internal/config"
	"scribe-ai-api/internal/interfaces/http/handler"
	"scribe-ai-api/internal/interfaces/http/middleware"
	"scribe-ai-api/pkg/utils"
)

// Handlers 路由所需的全部处理器
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Generate *handler.GenerateHandler
	Document *handler.DocumentHandler
	Profile  *handler.ProfileHandler
}

// Router HTTP 路由器
type Router struct {
	engine     *gin.Engine
	cfg        *config.Config
	handlers   Handlers
	jwtManager *utils.JWTManager
	limiter    middleware.RateLimiter
}

// New 创建新的路由器
func New(cfg *config.Config, handlers Handlers, jwtManager *utils.JWTManager, limiter middleware.RateLimiter) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:     gin.New(),
		cfg:        cfg,
		handlers:   handlers,
		jwtManager: jwtManager,
		limiter:    limiter,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置全局中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	// 系统端点
	r.engine.GET("/health", r.handlers.Health.Health)
	r.engine.GET("/ready", r.handlers.Health.Ready)
	r.engine.GET("/live", r.handlers.Health.Live)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	v1 := r.engine.Group("/v1")

	// 认证路由，无需登录
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", r.handlers.Auth.Register)
		authGroup.POST("/login", r.handlers.Auth.Login)
		authGroup.POST("/refresh", r.handlers.Auth.Refresh)
	}

	// 业务路由，需要 AccessToken
	protected := v1.Group("")
	protected.Use(middleware.Auth(r.jwtManager))
	protected.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:           r.cfg.Security.RateLimit.Enabled,
		RequestsPerSecond: r.cfg.Security.RateLimit.RequestsPerSecond,
		Burst:             r.cfg.Security.RateLimit.Burst,
	}, r.limiter))
	{
		protected.POST("/generate", r.handlers.Generate.Generate)
		protected.GET("/content-types", r.handlers.Generate.ContentTypes)

		documents := protected.Group("/documents")
		{
			documents.POST("", r.handlers.Document.Save)
			documents.GET("", r.handlers.Document.List)
			documents.GET("/:id", r.handlers.Document.Get)
			documents.DELETE("/:id", r.handlers.Document.Delete)
			documents.GET("/:id/share", r.handlers.Document.Share)
		}

		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", r.handlers.Profile.Get)
			profileGroup.GET("/credits/packages", r.handlers.Profile.Packages)
			profileGroup.POST("/credits", r.handlers.Profile.Purchase)
		}
	}
}
