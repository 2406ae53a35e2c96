package postgres

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/usedmarket/migrations"
	"github.com/ghuser/usedmarket/pkg/database"
	"github.com/ghuser/usedmarket/pkg/logger"
	userdomain "github.com/ghuser/usedmarket/services/user/domain"
)

// Integration tests — skipped unless DATABASE_URL is set.
func newTestRepo(t *testing.T) *UserRepository {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}
	ctx := context.Background()
	store, err := database.NewPool(ctx, url, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.InitializeSchema(ctx, migrations.FS))
	return NewUserRepository(store)
}

func uniqueEmail() string {
	return "user-" + uuid.NewString() + "@example.com"
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	email := uniqueEmail()

	id, err := repo.Create(ctx, email, "hunter2")
	require.NoError(t, err)
	require.Positive(t, id)

	byEmail, err := repo.FindByEmail(ctx, email)
	require.NoError(t, err)
	require.Equal(t, id, byEmail.ID)
	require.Equal(t, email, byEmail.Email)
	require.Equal(t, "hunter2", byEmail.Password)

	byID, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, byEmail, byID)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	email := uniqueEmail()

	firstID, err := repo.Create(ctx, email, "first")
	require.NoError(t, err)

	_, err = repo.Create(ctx, strings.ToUpper(email), "second")
	require.ErrorIs(t, err, userdomain.ErrDuplicateEmail)

	u, err := repo.FindByEmail(ctx, email)
	require.NoError(t, err)
	require.Equal(t, firstID, u.ID)
	require.Equal(t, "first", u.Password)
}

func TestUserRepository_FindByEmail_CaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	email := uniqueEmail()

	id, err := repo.Create(ctx, email, "pw")
	require.NoError(t, err)

	u, err := repo.FindByEmail(ctx, "  "+strings.ToUpper(email)+" ")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, -1)
	require.ErrorIs(t, err, userdomain.ErrUserNotFound)

	_, err = repo.FindByEmail(ctx, uniqueEmail())
	require.ErrorIs(t, err, userdomain.ErrUserNotFound)
}
