package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"scribe-ai-api/internal/domain/repository"
)

func newMockClient(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return NewClientWithDB(gormDB), mock
}

func TestDecrementCredits_Success(t *testing.T) {
	client, mock := newMockClient(t)
	repo := NewProfileRepository(client)

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE profiles SET credits = credits - 1, updated_at = NOW() WHERE id = $1 AND credits > 0 RETURNING credits",
	)).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow(4))

	remaining, err := repo.DecrementCredits(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementCredits_ZeroBalanceNotDeducted(t *testing.T) {
	client, mock := newMockClient(t)
	repo := NewProfileRepository(client)

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE profiles SET credits = credits - 1, updated_at = NOW() WHERE id = $1 AND credits > 0 RETURNING credits",
	)).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"credits"}))

	_, err := repo.DecrementCredits(context.Background(), "u1")
	assert.ErrorIs(t, err, repository.ErrNoCreditDeducted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFoundReturnsNil(t *testing.T) {
	client, mock := newMockClient(t)
	repo := NewProfileRepository(client)

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "credits"}))

	profile, err := repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_Found(t *testing.T) {
	client, mock := newMockClient(t)
	repo := NewProfileRepository(client)

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "credits"}).
			AddRow("u1", "a@b.c", 10))

	profile, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, 10, profile.Credits)
}

func TestAddCredits_Success(t *testing.T) {
	client, mock := newMockClient(t)
	repo := NewProfileRepository(client)

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE profiles SET credits = credits + $1, updated_at = NOW() WHERE id = $2 RETURNING credits",
	)).WithArgs(50, "u1").
		WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow(60))

	balance, err := repo.AddCredits(context.Background(), "u1", 50)
	require.NoError(t, err)
	assert.Equal(t, 60, balance)
}

func TestAddCredits_MissingProfile(t *testing.T) {
	client, mock := newMockClient(t)
	repo := NewProfileRepository(client)

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE profiles SET credits = credits + $1, updated_at = NOW() WHERE id = $2 RETURNING credits",
	)).WithArgs(50, "missing").
		WillReturnRows(sqlmock.NewRows([]string{"credits"}))

	_, err := repo.AddCredits(context.Background(), "missing", 50)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
