// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"scribe-ai-api/internal/domain/entity"
)

// DocumentRepository 已保存内容仓储接口
// 所有读写都以 userID 限定，模拟原有行级安全语义
type DocumentRepository interface {
	// Create 保存文档
	Create(ctx context.Context, doc *entity.Document) error

	// GetByID 获取属于指定用户的文档，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id, userID string) (*entity.Document, error)

	// ListByUser 按创建时间倒序获取用户文档列表
	ListByUser(ctx context.Context, userID string, pagination Pagination) (*PagedResult[*entity.Document], error)

	// Delete 删除属于指定用户的文档
	Delete(ctx context.Context, id, userID string) error
}
