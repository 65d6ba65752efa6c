package dto

import (
	"time"

	"scribe-ai-api/internal/domain/entity"
)

// ProfileResponse 用户档案响应
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Credits   int       `json:"credits"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProfileResponse 从实体构建档案响应
func NewProfileResponse(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Credits:   p.Credits,
		Plan:      string(p.Plan),
		CreatedAt: p.CreatedAt,
	}
}

// PurchaseCreditsRequest 购买积分包请求
type PurchaseCreditsRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// PurchaseCreditsResponse 购买积分包响应
type PurchaseCreditsResponse struct {
	Credits int `json:"credits"`
}
