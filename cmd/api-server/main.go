// Package main API 服务入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"scribe-ai-api/internal/application/auth"
	"scribe-ai-api/internal/application/document"
	"scribe-ai-api/internal/application/generation"
	"scribe-ai-api/internal/application/profile"
	"scribe-ai-api/internal/config"
	"scribe-ai-api/internal/infrastructure/llm"
	"scribe-ai-api/internal/infrastructure/persistence/postgres"
	"scribe-ai-api/internal/infrastructure/persistence/redis"
	"scribe-ai-api/internal/interfaces/http/handler"
	"scribe-ai-api/internal/interfaces/http/router"
	"scribe-ai-api/pkg/logger"
	"scribe-ai-api/pkg/tracer"
	"scribe-ai-api/pkg/utils"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件（如果存在）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting api-server",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	// 初始化追踪
	shutdownTracer, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		log.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracer(ctx); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 初始化基础设施
	pgClient, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		logger.Fatal(ctx, "failed to connect postgres", err)
	}
	defer pgClient.Close()

	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Fatal(ctx, "failed to connect redis", err)
	}
	defer redisClient.Close()

	// 组装依赖
	profileRepo := postgres.NewProfileRepository(pgClient)
	documentRepo := postgres.NewDocumentRepository(pgClient)
	jwtManager := utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer)
	upstream := llm.NewClient(&cfg.Upstream)
	limiter := redis.NewRateLimiter(redisClient)

	generationSvc := generation.NewService(profileRepo, upstream, generation.NewRegistry())
	documentSvc := document.NewService(documentRepo)
	profileSvc := profile.NewService(profileRepo)
	authSvc := auth.NewService(profileRepo, jwtManager, &cfg.Security.JWT, &cfg.Credits)

	handlers := router.Handlers{
		Health:   handler.NewHealthHandler(pgClient, redisClient, Version),
		Auth:     handler.NewAuthHandler(authSvc),
		Generate: handler.NewGenerateHandler(generationSvc),
		Document: handler.NewDocumentHandler(documentSvc, cfg.App.WebURL),
		Profile:  handler.NewProfileHandler(profileSvc),
	}

	r := router.New(cfg, handlers, jwtManager, limiter)

	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
