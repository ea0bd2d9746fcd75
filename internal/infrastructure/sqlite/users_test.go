package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *UserRepo {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepo(db)
}

func newUser(email string) *domain.User {
	return &domain.User{
		ID:        id.NewUUID(),
		Email:     email,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	name := "Jamie"
	u := newUser("a@example.com")
	u.Name = &name
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "a@example.com", got.Email)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Jamie", *got.Name)
	assert.True(t, got.IsActive)
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("a@example.com")))
	err := repo.Create(ctx, newUser("a@example.com"))
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUserRepo_Get_Missing(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := newUser("a@example.com")
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_GetByEmail_ReturnsInactive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := newUser("a@example.com")
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.SetActive(ctx, u.ID, false))

	got, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestUserRepo_ListActive_ExcludesSoftDeleted(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u1 := newUser("a@example.com")
	u2 := newUser("b@example.com")
	require.NoError(t, repo.Create(ctx, u1))
	require.NoError(t, repo.Create(ctx, u2))
	require.NoError(t, repo.SetActive(ctx, u1.ID, false))

	users, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, u2.ID, users[0].ID)

	// The soft-deleted user is still individually fetchable.
	got, err := repo.Get(ctx, u1.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestUserRepo_ListActive_NewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := newUser("old@example.com")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := newUser("new@example.com")
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	users, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, newer.ID, users[0].ID)
	assert.Equal(t, older.ID, users[1].ID)
}

func TestUserRepo_UpdateName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := newUser("a@example.com")
	require.NoError(t, repo.Create(ctx, u))

	name := "New Name"
	require.NoError(t, repo.UpdateName(ctx, u.ID, &name))

	got, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Name)
	assert.Equal(t, "New Name", *got.Name)
}

func TestUserRepo_SetActive_Reactivates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := newUser("a@example.com")
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.SetActive(ctx, u.ID, false))
	require.NoError(t, repo.SetActive(ctx, u.ID, true))

	got, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}
