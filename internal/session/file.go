package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileEntry struct {
	Scope     string    `json:"scope"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// FileBackend persists entries to a JSON file, rewriting it on every change.
type FileBackend struct {
	path    string
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]fileEntry
	closed  bool
}

func NewFileBackend(path string, ttl time.Duration) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("prepare session directory: %w", err)
	}

	backend := &FileBackend{
		path:    path,
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]fileEntry{},
	}

	if err := backend.load(); err != nil {
		return nil, err
	}

	return backend, nil
}

func (b *FileBackend) Load(_ context.Context, scope string, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return "", false, ErrClosed
	}

	entry, ok := b.entries[entryKey(scope, key)]
	if !ok {
		return "", false, nil
	}
	if !entry.ExpiresAt.IsZero() && b.now().After(entry.ExpiresAt) {
		delete(b.entries, entryKey(scope, key))
		return "", false, b.saveLocked()
	}

	return entry.Value, true, nil
}

func (b *FileBackend) Save(_ context.Context, scope string, key string, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	entry := fileEntry{Scope: scope, Key: key, Value: value}
	if b.ttl > 0 {
		entry.ExpiresAt = b.now().UTC().Add(b.ttl)
	}
	b.entries[entryKey(scope, key)] = entry

	return b.saveLocked()
}

func (b *FileBackend) Delete(_ context.Context, scope string, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	if _, ok := b.entries[entryKey(scope, key)]; !ok {
		return nil
	}
	delete(b.entries, entryKey(scope, key))

	return b.saveLocked()
}

func (b *FileBackend) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	return nil
}

func (b *FileBackend) load() error {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []fileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse session file: %w", err)
	}

	now := b.now()
	for _, entry := range entries {
		if !entry.ExpiresAt.IsZero() && now.After(entry.ExpiresAt) {
			continue
		}
		b.entries[entryKey(entry.Scope, entry.Key)] = entry
	}

	return nil
}

// saveLocked writes to a temp file first so a crash never leaves a torn file.
func (b *FileBackend) saveLocked() error {
	entries := make([]fileEntry, 0, len(b.entries))
	for _, entry := range b.entries {
		entries = append(entries, entry)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	return nil
}
