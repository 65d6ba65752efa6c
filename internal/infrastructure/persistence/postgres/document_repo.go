// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"scribe-ai-api/internal/domain/entity"
	"scribe-ai-api/internal/domain/repository"
)

// DocumentRepository 已保存内容仓储实现
type DocumentRepository struct {
	client *Client
}

// NewDocumentRepository 创建文档仓储
func NewDocumentRepository(client *Client) *DocumentRepository {
	return &DocumentRepository{client: client}
}

// Create 保存文档
func (r *DocumentRepository) Create(ctx context.Context, doc *entity.Document) error {
	ctx, span := tracer.Start(ctx, "postgres.DocumentRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(doc).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// GetByID 获取属于指定用户的文档
func (r *DocumentRepository) GetByID(ctx context.Context, id, userID string) (*entity.Document, error) {
	ctx, span := tracer.Start(ctx, "postgres.DocumentRepository.GetByID")
	defer span.End()

	var doc entity.Document
	if err := r.client.db.WithContext(ctx).First(&doc, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// ListByUser 按创建时间倒序获取用户文档列表
func (r *DocumentRepository) ListByUser(ctx context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Document], error) {
	ctx, span := tracer.Start(ctx, "postgres.DocumentRepository.ListByUser")
	defer span.End()

	query := r.client.db.WithContext(ctx).Model(&entity.Document{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	var docs []*entity.Document
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&docs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return repository.NewPagedResult(docs, total, pagination), nil
}

// Delete 删除属于指定用户的文档
func (r *DocumentRepository) Delete(ctx context.Context, id, userID string) error {
	ctx, span := tracer.Start(ctx, "postgres.DocumentRepository.Delete")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Delete(&entity.Document{}, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
