// Package entity 定义领域实体
package entity

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Plan 订阅计划标签，本服务只存储展示，不做计划级限制
type Plan string

const (
	PlanFree     Plan = "free"
	PlanStarter  Plan = "starter"
	PlanPro      Plan = "pro"
	PlanBusiness Plan = "business"
)

// Profile 用户档案实体，持有积分余额
// 不变式：任何一次完成的扣减之后 credits >= 0
type Profile struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"` // 不在 JSON 中暴露
	Name         string    `json:"name"`
	Credits      int       `json:"credits"`
	Plan         Plan      `json:"plan"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}

// NewProfile 创建新用户档案
func NewProfile(id, email, name string, initialCredits int) *Profile {
	now := time.Now()
	return &Profile{
		ID:        id,
		Email:     email,
		Name:      name,
		Credits:   initialCredits,
		Plan:      PlanFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasCredits 检查是否还有可用积分
func (p *Profile) HasCredits() bool {
	return p.Credits > 0
}

// SetPassword 设置并散列密码
func (p *Profile) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = string(hash)
	return nil
}

// CheckPassword 校验密码
func (p *Profile) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password))
	return err == nil
}
