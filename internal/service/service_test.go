package service

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stashbin/stashbin/internal/cache"
	"github.com/stashbin/stashbin/internal/db"
	"github.com/stashbin/stashbin/internal/storage"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a migrated sqlite database in a temp dir.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		err := database.Close()
		require.NoError(t, err)
	})

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	return database
}

func newTestCache(t *testing.T) cache.Cache {
	t.Helper()

	c, err := cache.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		err := c.Close()
		require.NoError(t, err)
	})

	return c
}

func newTestStorage(t *testing.T) (*storage.LocalStorage, string) {
	t.Helper()

	root := t.TempDir()
	s, err := storage.NewLocalStorage(root)
	require.NoError(t, err)

	return s, root
}
