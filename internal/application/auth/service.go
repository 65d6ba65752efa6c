// Package auth 提供注册、登录与令牌刷新能力
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scribe-ai-api/internal/config"
	"scribe-ai-api/internal/domain/entity"
	"scribe-ai-api/internal/domain/repository"
	"scribe-ai-api/pkg/errors"
	"scribe-ai-api/pkg/logger"
	"scribe-ai-api/pkg/utils"
)

// Service 认证服务
type Service struct {
	profiles       repository.ProfileRepository
	jwtManager     *utils.JWTManager
	accessTTL      time.Duration
	refreshTTL     time.Duration
	initialCredits int
}

// NewService 创建认证服务
func NewService(profiles repository.ProfileRepository, jwtManager *utils.JWTManager, jwtCfg *config.JWTConfig, creditsCfg *config.CreditsConfig) *Service {
	return &Service{
		profiles:       profiles,
		jwtManager:     jwtManager,
		accessTTL:      jwtCfg.Expiration,
		refreshTTL:     jwtCfg.RefreshExpiration,
		initialCredits: creditsCfg.InitialBalance,
	}
}

// Register 注册新用户并发放初始积分
func (s *Service) Register(ctx context.Context, email, password, name string) (*entity.Profile, *utils.TokenPair, error) {
	exists, err := s.profiles.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to check email")
	}
	if exists {
		return nil, nil, errors.New(errors.CodeConflict, "email already registered")
	}

	profile := entity.NewProfile(uuid.New().String(), email, name, s.initialCredits)
	if err := profile.SetPassword(password); err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeInternalError, "failed to hash password")
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to create profile")
	}

	tokens, err := s.jwtManager.GenerateTokenPair(profile.ID, string(profile.Plan), s.accessTTL, s.refreshTTL)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeInternalError, "failed to generate tokens")
	}

	logger.Info(ctx, "user registered", "user_id", profile.ID, "initial_credits", profile.Credits)
	return profile, tokens, nil
}

// Login 登录
func (s *Service) Login(ctx context.Context, email, password string) (*entity.Profile, *utils.TokenPair, error) {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to get profile")
	}
	// 账号不存在和密码错误返回同一个错误，避免枚举邮箱
	if profile == nil || !profile.CheckPassword(password) {
		return nil, nil, errors.New(errors.CodeUnauthorized, "invalid email or password")
	}

	tokens, err := s.jwtManager.GenerateTokenPair(profile.ID, string(profile.Plan), s.accessTTL, s.refreshTTL)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeInternalError, "failed to generate tokens")
	}

	logger.Info(ctx, "user logged in", "user_id", profile.ID)
	return profile, tokens, nil
}

// Refresh 用刷新令牌换取新的令牌对
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := s.jwtManager.ParseToken(refreshToken)
	if err != nil {
		if err == utils.ErrExpiredToken {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrTokenInvalid
	}
	if claims.Type != "refresh" {
		return nil, errors.ErrTokenInvalid.WithDetail("not a refresh token")
	}

	// 确认用户仍然存在
	profile, err := s.profiles.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to get profile")
	}
	if profile == nil {
		return nil, errors.ErrTokenInvalid
	}

	tokens, err := s.jwtManager.GenerateTokenPair(profile.ID, string(profile.Plan), s.accessTTL, s.refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to generate tokens")
	}
	return tokens, nil
}
