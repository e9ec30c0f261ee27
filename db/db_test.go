package db

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/AnthoniusHendriyanto/user-service/db/migrations"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrate(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	t.Run("success", func(t *testing.T) {
		db := newDB(t)
		var called bool
		gooseUpContext = func(ctx context.Context, got *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			called = true
			assert.Same(t, db, got)
			assert.Equal(t, ".", dir)
			assert.Empty(t, opts)
			return nil
		}

		require.NoError(t, Migrate(context.Background(), db))
		assert.True(t, called)
	})

	t.Run("goose error is wrapped", func(t *testing.T) {
		db := newDB(t)
		boom := errors.New("boom")
		gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
			return boom
		}

		err := Migrate(context.Background(), db)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "apply migrations")
	})
}

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	body, err := fs.ReadFile(migrations.FS, names[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), "-- +goose Up")
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, string(body), "users_email_unique_idx")
}

func TestNewPostgresPool_InvalidURL(t *testing.T) {
	pool, err := NewPostgresPool(context.Background(), "://not a url", 5)
	require.Error(t, err)
	assert.Nil(t, pool)
	assert.Contains(t, err.Error(), "invalid DB URL")
}
