package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe-ai-api/internal/config"
	"scribe-ai-api/internal/domain/entity"
	"scribe-ai-api/pkg/errors"
	"scribe-ai-api/pkg/utils"
)

type memoryProfileRepo struct {
	byID    map[string]*entity.Profile
	byEmail map[string]*entity.Profile
}

func newMemoryProfileRepo() *memoryProfileRepo {
	return &memoryProfileRepo{
		byID:    make(map[string]*entity.Profile),
		byEmail: make(map[string]*entity.Profile),
	}
}

func (m *memoryProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	m.byID[p.ID] = p
	m.byEmail[p.Email] = p
	return nil
}

func (m *memoryProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return m.byID[id], nil
}

func (m *memoryProfileRepo) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return m.byEmail[email], nil
}

func (m *memoryProfileRepo) DecrementCredits(ctx context.Context, id string) (int, error) {
	return 0, nil
}

func (m *memoryProfileRepo) AddCredits(ctx context.Context, id string, amount int) (int, error) {
	return 0, nil
}

func (m *memoryProfileRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func newTestService(repo *memoryProfileRepo) *Service {
	return NewService(
		repo,
		utils.NewJWTManager("test-secret", "scribe-test"),
		&config.JWTConfig{
			Expiration:        time.Hour,
			RefreshExpiration: 24 * time.Hour,
		},
		&config.CreditsConfig{InitialBalance: 10},
	)
}

func TestRegister_GrantsInitialCredits(t *testing.T) {
	repo := newMemoryProfileRepo()
	svc := newTestService(repo)

	profile, tokens, err := svc.Register(context.Background(), "a@b.c", "password123", "Alex")
	require.NoError(t, err)

	assert.Equal(t, 10, profile.Credits)
	assert.Equal(t, entity.PlanFree, profile.Plan)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, "password123", profile.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMemoryProfileRepo()
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), "a@b.c", "password123", "Alex")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "a@b.c", "password123", "Alex")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeConflict))
}

func TestLogin(t *testing.T) {
	repo := newMemoryProfileRepo()
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), "a@b.c", "password123", "Alex")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		profile, tokens, err := svc.Login(context.Background(), "a@b.c", "password123")
		require.NoError(t, err)
		assert.Equal(t, "a@b.c", profile.Email)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "a@b.c", "wrong")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeUnauthorized))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "x@y.z", "password123")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeUnauthorized))
	})
}

func TestRefresh(t *testing.T) {
	repo := newMemoryProfileRepo()
	svc := newTestService(repo)

	_, tokens, err := svc.Register(context.Background(), "a@b.c", "password123", "Alex")
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		pair, err := svc.Refresh(context.Background(), tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
	})

	t.Run("access token rejected", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), tokens.AccessToken)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeTokenInvalid))
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), "garbage")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeTokenInvalid))
	})
}
