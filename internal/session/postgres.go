package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend stores entries in the session_entries table. The pool is
// owned by the caller and is not closed by Close.
type PostgresBackend struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

func NewPostgresBackend(pool *pgxpool.Pool, ttl time.Duration) *PostgresBackend {
	return &PostgresBackend{pool: pool, ttl: ttl}
}

func (b *PostgresBackend) Load(ctx context.Context, scope string, key string) (string, bool, error) {
	var value string
	err := b.pool.QueryRow(ctx,
		`SELECT value FROM session_entries
		 WHERE scope = $1 AND key = $2
		   AND (expires_at IS NULL OR expires_at > now())`,
		scope, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load session entry: %w", err)
	}
	return value, true, nil
}

func (b *PostgresBackend) Save(ctx context.Context, scope string, key string, value string) error {
	var expiresAt *time.Time
	if b.ttl > 0 {
		at := time.Now().UTC().Add(b.ttl)
		expiresAt = &at
	}

	_, err := b.pool.Exec(ctx,
		`INSERT INTO session_entries (scope, key, value, expires_at, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (scope, key)
		 DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = now()`,
		scope, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("save session entry: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Delete(ctx context.Context, scope string, key string) error {
	_, err := b.pool.Exec(ctx, `DELETE FROM session_entries WHERE scope = $1 AND key = $2`, scope, key)
	if err != nil {
		return fmt.Errorf("delete session entry: %w", err)
	}
	return nil
}

// PurgeExpired removes entries past their expiry and reports how many went.
func (b *PostgresBackend) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := b.pool.Exec(ctx, `DELETE FROM session_entries WHERE expires_at IS NOT NULL AND expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("purge session entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (b *PostgresBackend) Close() error {
	return nil
}
