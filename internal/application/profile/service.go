// Package profile 提供用户档案与积分账户能力
package profile

import (
	"context"

	"scribe-ai-api/internal/domain/entity"
	"scribe-ai-api/internal/domain/repository"
	"scribe-ai-api/pkg/errors"
	"scribe-ai-api/pkg/logger"
)

// CreditPackage 可购买的积分包
type CreditPackage struct {
	Plan    string `json:"plan"`
	Credits int    `json:"credits"`
}

// creditPackages 内置积分包，购买流程为占位实现，未接入支付
var creditPackages = map[string]CreditPackage{
	string(entity.PlanStarter):  {Plan: string(entity.PlanStarter), Credits: 50},
	string(entity.PlanPro):      {Plan: string(entity.PlanPro), Credits: 150},
	string(entity.PlanBusiness): {Plan: string(entity.PlanBusiness), Credits: 500},
}

// Service 档案服务
type Service struct {
	profiles repository.ProfileRepository
}

// NewService 创建档案服务
func NewService(profiles repository.ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

// Get 获取用户档案
func (s *Service) Get(ctx context.Context, userID string) (*entity.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.ErrProfileNotFound.WithError(err)
	}
	if profile == nil {
		return nil, errors.ErrProfileNotFound
	}
	return profile, nil
}

// Packages 返回全部积分包
func Packages() []CreditPackage {
	return []CreditPackage{
		creditPackages[string(entity.PlanStarter)],
		creditPackages[string(entity.PlanPro)],
		creditPackages[string(entity.PlanBusiness)],
	}
}

// Purchase 购买积分包，返回新余额
// 占位流程：直接入账，不经过支付网关
func (s *Service) Purchase(ctx context.Context, userID, plan string) (int, error) {
	pkg, ok := creditPackages[plan]
	if !ok {
		return 0, errors.ErrInvalidParam.WithDetail("unknown credit package: " + plan)
	}

	balance, err := s.profiles.AddCredits(ctx, userID, pkg.Credits)
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeCreditWriteFailed, "failed to add credits")
	}

	logger.Info(ctx, "credits purchased",
		"user_id", userID,
		"plan", plan,
		"credits", pkg.Credits,
		"balance", balance,
	)
	return balance, nil
}
