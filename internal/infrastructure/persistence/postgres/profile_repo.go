// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"scribe-ai-api/internal/domain/entity"
	"scribe-ai-api/internal/domain/repository"
)

// ProfileRepository 用户档案仓储实现
type ProfileRepository struct {
	client *Client
}

// NewProfileRepository 创建档案仓储
func NewProfileRepository(client *Client) *ProfileRepository {
	return &ProfileRepository{client: client}
}

// Create 创建档案
func (r *ProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(profile).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取档案
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.GetByID")
	defer span.End()

	var profile entity.Profile
	if err := r.client.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// GetByEmail 根据邮箱获取档案
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.GetByEmail")
	defer span.End()

	var profile entity.Profile
	if err := r.client.db.WithContext(ctx).First(&profile, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return &profile, nil
}

// DecrementCredits 原子条件扣减一个积分
// 单条条件 UPDATE，余额为 0 时不命中任何行，余额不会降到负数
func (r *ProfileRepository) DecrementCredits(ctx context.Context, id string) (int, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.DecrementCredits")
	defer span.End()

	var remaining []int
	result := r.client.db.WithContext(ctx).Raw(
		"UPDATE profiles SET credits = credits - 1, updated_at = NOW() WHERE id = ? AND credits > 0 RETURNING credits",
		id,
	).Scan(&remaining)
	if result.Error != nil {
		span.RecordError(result.Error)
		return 0, fmt.Errorf("failed to decrement credits: %w", result.Error)
	}
	if len(remaining) == 0 {
		return 0, repository.ErrNoCreditDeducted
	}
	return remaining[0], nil
}

// AddCredits 增加积分，返回新余额
func (r *ProfileRepository) AddCredits(ctx context.Context, id string, amount int) (int, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.AddCredits")
	defer span.End()

	var balance []int
	result := r.client.db.WithContext(ctx).Raw(
		"UPDATE profiles SET credits = credits + ?, updated_at = NOW() WHERE id = ? RETURNING credits",
		amount, id,
	).Scan(&balance)
	if result.Error != nil {
		span.RecordError(result.Error)
		return 0, fmt.Errorf("failed to add credits: %w", result.Error)
	}
	if len(balance) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return balance[0], nil
}

// ExistsByEmail 检查邮箱是否存在
func (r *ProfileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.ExistsByEmail")
	defer span.End()

	var count int64
	if err := r.client.db.WithContext(ctx).Model(&entity.Profile{}).Where("email = ?", email).Count(&count).Error; err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check email exists: %w", err)
	}
	return count > 0, nil
}
