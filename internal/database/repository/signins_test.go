package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/smartbank/smartbank/internal/database"
	"github.com/smartbank/smartbank/internal/database/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, database.Migrate(db))
}

func TestOpenUsesWriteAheadLog(t *testing.T) {
	var mode string
	require.NoError(t, openTestDB(t).QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	require.Equal(t, "wal", mode)
}

func TestSignInLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSignInRepo(openTestDB(t))

	first := repository.SignInRequest{ID: uuid.NewString(), Email: "old@example.com", Provider: "gotrue"}
	second := repository.SignInRequest{ID: uuid.NewString(), Email: "user@example.com", Provider: "gotrue", RedirectTo: "smartbank://auth/callback"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	_, err := repo.LatestSent(ctx)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.SetStatus(ctx, first.ID, repository.SignInSent, ""))
	require.NoError(t, repo.SetStatus(ctx, second.ID, repository.SignInSent, ""))

	latest, err := repo.LatestSent(ctx)
	require.NoError(t, err)
	require.Equal(t, second.ID, latest.ID)
	require.Equal(t, "smartbank://auth/callback", latest.RedirectTo)

	require.NoError(t, repo.SetStatus(ctx, second.ID, repository.SignInVerified, ""))
	latest, err = repo.LatestSent(ctx)
	require.NoError(t, err)
	require.Equal(t, first.ID, latest.ID)

	recent, err := repo.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, second.ID, recent[0].ID)
	require.Equal(t, repository.SignInVerified, recent[0].Status)
	require.False(t, recent[0].CreatedAt.IsZero())
}

func TestSignInFailureKeepsMessage(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSignInRepo(openTestDB(t))
	id := uuid.NewString()
	require.NoError(t, repo.Create(ctx, repository.SignInRequest{ID: id, Email: "user@example.com", Provider: "kratos"}))
	require.NoError(t, repo.SetStatus(ctx, id, repository.SignInFailed, "rate limited"))

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, repository.SignInFailed, recent[0].Status)
	require.Equal(t, "rate limited", recent[0].Error)
}

func TestSetStatusUnknownID(t *testing.T) {
	repo := repository.NewSignInRepo(openTestDB(t))
	err := repo.SetStatus(context.Background(), "missing", repository.SignInSent, "")
	require.True(t, errors.Is(err, repository.ErrNotFound))
}
