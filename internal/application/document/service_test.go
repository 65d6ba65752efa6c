package document

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe-ai-api/internal/domain/entity"
	"scribe-ai-api/internal/domain/repository"
	"scribe-ai-api/pkg/errors"
)

type memoryDocumentRepo struct {
	docs map[string]*entity.Document
}

func newMemoryDocumentRepo() *memoryDocumentRepo {
	return &memoryDocumentRepo{docs: make(map[string]*entity.Document)}
}

func (m *memoryDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	m.docs[doc.ID] = doc
	return nil
}

func (m *memoryDocumentRepo) GetByID(ctx context.Context, id, userID string) (*entity.Document, error) {
	doc, ok := m.docs[id]
	if !ok || doc.UserID != userID {
		return nil, nil
	}
	return doc, nil
}

func (m *memoryDocumentRepo) ListByUser(ctx context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Document], error) {
	var items []*entity.Document
	for _, doc := range m.docs {
		if doc.UserID == userID {
			items = append(items, doc)
		}
	}
	return repository.NewPagedResult(items, int64(len(items)), pagination), nil
}

func (m *memoryDocumentRepo) Delete(ctx context.Context, id, userID string) error {
	delete(m.docs, id)
	return nil
}

func TestSaveAndGet(t *testing.T) {
	svc := NewService(newMemoryDocumentRepo())

	doc, err := svc.Save(context.Background(), "u1", SaveInput{
		Title:       "My Post",
		Content:     "body",
		ContentType: "blog",
		Tone:        "casual",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "u1", doc.UserID)

	got, err := svc.Get(context.Background(), "u1", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "My Post", got.Title)
}

func TestGet_OtherUsersDocumentHidden(t *testing.T) {
	svc := NewService(newMemoryDocumentRepo())

	doc, err := svc.Save(context.Background(), "u1", SaveInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "u2", doc.ID)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeDocumentNotFound))
}

func TestDelete_MissingDocument(t *testing.T) {
	svc := NewService(newMemoryDocumentRepo())

	err := svc.Delete(context.Background(), "u1", "nope")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeDocumentNotFound))
}
