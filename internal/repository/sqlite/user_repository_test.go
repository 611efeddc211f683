package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-api/internal/domain"
	"user-api/internal/repository"
)

func newTestRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func testUser() *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		Email:     "a@b.com",
		Name:      "Ann",
		Age:       30,
		Sex:       domain.SexFemale,
		Birthday:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Phone:     "+1 (555) 123-4567",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAssignsID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser()
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, id, user.ID)

	second := testUser()
	secondID, err := repo.Create(ctx, second)
	require.NoError(t, err)
	assert.NotEqual(t, id, secondID)
}

func TestGetByIDRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser()
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Name, got.Name)
	assert.Equal(t, user.Age, got.Age)
	assert.Equal(t, user.Sex, got.Sex)
	assert.Equal(t, "1990-01-01", got.Birthday.Format("2006-01-02"))
	assert.Equal(t, user.Phone, got.Phone)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 999999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testUser()
	second := testUser()
	second.Name = "Bob"
	second.Sex = domain.SexMale

	_, err := repo.Create(ctx, first)
	require.NoError(t, err)
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ann", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)
}

func TestUpdatePersistsChanges(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser()
	_, err := repo.Create(ctx, user)
	require.NoError(t, err)

	user.Name = "Anna"
	user.Age = 31
	user.UpdatedAt = time.Now().UTC().Add(time.Minute)
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)
	assert.Equal(t, 31, got.Age)
}

func TestUpdateMissingUser(t *testing.T) {
	repo := newTestRepo(t)

	user := testUser()
	user.ID = 424242
	err := repo.Update(context.Background(), user)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteRemovesUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser()
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, id), repository.ErrNotFound)
}

func TestCreateSurfacesDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("disk I/O error"))

	_, err = repo.Create(context.Background(), testUser())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert user")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSurfacesDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	mock.ExpectQuery("SELECT id, email, name").WillReturnError(errors.New("database is locked"))

	_, err = repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list users")
	assert.NoError(t, mock.ExpectationsWereMet())
}
