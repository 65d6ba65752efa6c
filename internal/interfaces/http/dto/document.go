package dto

import (
	"time"

	"scribe-ai-api/internal/domain/entity"
)

// SaveDocumentRequest 保存文档请求
type SaveDocumentRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	ContentType string `json:"content_type"`
	Tone        string `json:"tone"`
	Style       string `json:"style"`
}

// DocumentResponse 文档响应
type DocumentResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentType string    `json:"content_type"`
	Tone        string    `json:"tone,omitempty"`
	Style       string    `json:"style,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDocumentResponse 从实体构建文档响应
func NewDocumentResponse(doc *entity.Document) DocumentResponse {
	return DocumentResponse{
		ID:          doc.ID,
		Title:       doc.Title,
		Content:     doc.Content,
		ContentType: doc.ContentType,
		Tone:        doc.Tone,
		Style:       doc.Style,
		CreatedAt:   doc.CreatedAt,
	}
}

// NewDocumentListResponse 从实体列表构建响应列表
func NewDocumentListResponse(docs []*entity.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, NewDocumentResponse(d))
	}
	return out
}
