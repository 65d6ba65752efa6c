// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"scribe-ai-api/internal/application/document"
	"scribe-ai-api/internal/application/share"
	"scribe-ai-api/internal/interfaces/http/dto"
	"scribe-ai-api/internal/interfaces/http/middleware"
)

// DocumentHandler 文档处理器
type DocumentHandler struct {
	service *document.Service
	webURL  string
}

// NewDocumentHandler 创建文档处理器
func NewDocumentHandler(service *document.Service, webURL string) *DocumentHandler {
	return &DocumentHandler{service: service, webURL: webURL}
}

// Save 保存生成的内容
func (h *DocumentHandler) Save(c *gin.Context) {
	var req dto.SaveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	doc, err := h.service.Save(c.Request.Context(), middleware.GetUserID(c), document.SaveInput{
		Title:       req.Title,
		Content:     req.Content,
		ContentType: req.ContentType,
		Tone:        req.Tone,
		Style:       req.Style,
	})
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Created(c, dto.NewDocumentResponse(doc))
}

// Get 获取一篇文档
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.NewDocumentResponse(doc))
}

// List 分页列出用户文档
func (h *DocumentHandler) List(c *gin.Context) {
	pagination := dto.BindPage(c)

	result, err := h.service.List(c.Request.Context(), middleware.GetUserID(c), pagination)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.SuccessWithPage(c, dto.NewDocumentListResponse(result.Items), &dto.PageMeta{
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}

// Delete 删除一篇文档
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		dto.AppError(c, err)
		return
	}
	dto.NoContent(c)
}

// Share 返回一篇文档的社交分享链接
func (h *DocumentHandler) Share(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		dto.AppError(c, err)
		return
	}

	pageURL := h.webURL + "/documents/" + doc.ID
	dto.Success(c, share.BuildLinks(doc.Title, doc.Content, pageURL))
}
