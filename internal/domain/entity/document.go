// Package entity 定义领域实体
package entity

import (
	"time"
)

// Document 已保存的生成内容
// 由用户在生成完成后显式保存，生成流程本身不落库
type Document struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentType string    `json:"content_type"`
	Tone        string    `json:"tone"`
	Style       string    `json:"style"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName 指定表名
func (Document) TableName() string {
	return "generated_content"
}
