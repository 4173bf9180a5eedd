//go:build integration

package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogger-web/internal/database"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, database.Options{URL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func TestPostgresBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	backend := NewPostgresBackend(db.Pool, time.Hour)
	scope := ScopeFor(uuid.NewString())
	t.Cleanup(func() { _ = backend.Delete(context.Background(), scope, TokenKey) })

	store := Scoped(backend, scope)
	_, ok := store.Get(ctx)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "first"))
	require.NoError(t, store.Set(ctx, "second"))
	token, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "second", token)

	var expiresAt time.Time
	require.NoError(t, db.Pool.QueryRow(ctx,
		`SELECT expires_at FROM session_entries WHERE scope = $1 AND key = $2`, scope, TokenKey).Scan(&expiresAt))
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	require.NoError(t, store.Clear(ctx))
	_, ok = store.Get(ctx)
	assert.False(t, ok)
}

func TestPostgresBackend_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	backend := NewPostgresBackend(db.Pool, time.Hour)

	expired := ScopeFor(uuid.NewString())
	live := ScopeFor(uuid.NewString())
	t.Cleanup(func() {
		_ = backend.Delete(context.Background(), expired, TokenKey)
		_ = backend.Delete(context.Background(), live, TokenKey)
	})

	require.NoError(t, backend.Save(ctx, live, TokenKey, "live-token"))
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO session_entries (scope, key, value, expires_at) VALUES ($1, $2, $3, now() - interval '1 minute')`,
		expired, TokenKey, "stale-token")
	require.NoError(t, err)

	_, ok, err := backend.Load(ctx, expired, TokenKey)
	require.NoError(t, err)
	assert.False(t, ok, "expired entries are invisible before the purge")

	removed, err := backend.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(1))

	var count int
	require.NoError(t, db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM session_entries WHERE scope = $1`, expired).Scan(&count))
	assert.Zero(t, count)

	value, ok, err := backend.Load(ctx, live, TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "live-token", value)
}
