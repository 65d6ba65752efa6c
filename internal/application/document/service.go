// Package document 提供已生成内容的保存、查询与删除能力
package document

import (
	"context"

	"github.com/google/uuid"

	"scribe-ai-api/internal/domain/entity"
	"scribe-ai-api/internal/domain/repository"
	"scribe-ai-api/pkg/errors"
	"scribe-ai-api/pkg/logger"
)

// Service 文档服务
type Service struct {
	documents repository.DocumentRepository
}

// NewService 创建文档服务
func NewService(documents repository.DocumentRepository) *Service {
	return &Service{documents: documents}
}

// SaveInput 保存文档的输入
type SaveInput struct {
	Title       string
	Content     string
	ContentType string
	Tone        string
	Style       string
}

// Save 保存一篇生成的内容
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (*entity.Document, error) {
	doc := &entity.Document{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       in.Title,
		Content:     in.Content,
		ContentType: in.ContentType,
		Tone:        in.Tone,
		Style:       in.Style,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to save document")
	}

	logger.Info(ctx, "document saved", "document_id", doc.ID, "content_type", doc.ContentType)
	return doc, nil
}

// Get 获取用户的一篇文档
func (s *Service) Get(ctx context.Context, userID, id string) (*entity.Document, error) {
	doc, err := s.documents.GetByID(ctx, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to get document")
	}
	if doc == nil {
		return nil, errors.ErrDocumentNotFound
	}
	return doc, nil
}

// List 分页获取用户文档，按创建时间倒序
func (s *Service) List(ctx context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Document], error) {
	result, err := s.documents.ListByUser(ctx, userID, pagination)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to list documents")
	}
	return result, nil
}

// Delete 删除用户的一篇文档
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	doc, err := s.documents.GetByID(ctx, id, userID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to get document")
	}
	if doc == nil {
		return errors.ErrDocumentNotFound
	}
	if err := s.documents.Delete(ctx, id, userID); err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to delete document")
	}

	logger.Info(ctx, "document deleted", "document_id", id)
	return nil
}
