// Package session keeps the bearer token of each browser session.
//
// A Store holds at most one token under TokenKey. Stores are views over a
// Backend, the persistent key-value storage shared by every session of the
// process; each browser session gets its own scope in it.
package session

import (
	"context"
	"encoding/hex"
	"errors"
	"log/slog"

	"golang.org/x/crypto/blake2b"
)

// TokenKey is the fixed key the bearer token lives under.
const TokenKey = "accessToken"

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("session backend closed")

// Store is the single token slot of one session. Get never fails: a backend
// error reads as "no token".
type Store interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Backend is persistent key-value storage partitioned by scope.
type Backend interface {
	Load(ctx context.Context, scope string, key string) (string, bool, error)
	Save(ctx context.Context, scope string, key string, value string) error
	Delete(ctx context.Context, scope string, key string) error
	Close() error
}

type scopedStore struct {
	backend Backend
	scope   string
}

// Scoped returns the Store for one session scope of backend.
func Scoped(backend Backend, scope string) Store {
	return &scopedStore{backend: backend, scope: scope}
}

func (s *scopedStore) Get(ctx context.Context) (string, bool) {
	token, ok, err := s.backend.Load(ctx, s.scope, TokenKey)
	if err != nil {
		slog.Warn("session token read failed", "scope", shortScope(s.scope), "error", err)
		return "", false
	}
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func (s *scopedStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.backend.Save(ctx, s.scope, TokenKey, token); err != nil {
		return err
	}
	slog.Debug("session token set", "scope", shortScope(s.scope), "token", TokenPreview(token))
	return nil
}

func (s *scopedStore) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.scope, TokenKey); err != nil {
		return err
	}
	slog.Debug("session token removed", "scope", shortScope(s.scope))
	return nil
}

// ScopeFor derives the storage scope from a session cookie value so that
// persisted keys are never usable as cookies.
func ScopeFor(cookieValue string) string {
	sum := blake2b.Sum256([]byte(cookieValue))
	return hex.EncodeToString(sum[:])
}

// TokenPreview is the only form of a token that may appear in logs.
func TokenPreview(token string) string {
	if len(token) <= 12 {
		return "***"
	}
	return token[:12] + "..."
}

func shortScope(scope string) string {
	if len(scope) <= 8 {
		return scope
	}
	return scope[:8]
}
