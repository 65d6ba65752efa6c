// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"errors"

	"scribe-ai-api/internal/domain/entity"
)

// ErrNoCreditDeducted 表示条件扣减未命中任何行（余额已为 0 或档案不存在）
var ErrNoCreditDeducted = errors.New("no credit deducted")

// ProfileRepository 用户档案仓储接口
type ProfileRepository interface {
	// Create 创建档案
	Create(ctx context.Context, profile *entity.Profile) error

	// GetByID 根据 ID 获取档案，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id string) (*entity.Profile, error)

	// GetByEmail 根据邮箱获取档案，不存在时返回 (nil, nil)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)

	// DecrementCredits 原子条件扣减一个积分（仅当余额 > 0），返回扣减后的余额。
	// 余额已为 0 时不产生写入并返回 ErrNoCreditDeducted。
	DecrementCredits(ctx context.Context, id string) (int, error)

	// AddCredits 增加积分（购买占位流程），返回增加后的余额
	AddCredits(ctx context.Context, id string, amount int) (int, error)

	// ExistsByEmail 检查邮箱是否存在
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
