package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryBackend keeps entries in process memory. Entries are lost on restart.
type MemoryBackend struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]memoryEntry
	closed  bool
}

func NewMemoryBackend(ttl time.Duration) *MemoryBackend {
	return &MemoryBackend{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]memoryEntry{},
	}
}

// Load drops an expired entry as it reads it.
func (b *MemoryBackend) Load(_ context.Context, scope string, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return "", false, ErrClosed
	}

	k := entryKey(scope, key)
	entry, ok := b.entries[k]
	if !ok {
		return "", false, nil
	}
	if entry.expired(b.now()) {
		delete(b.entries, k)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (b *MemoryBackend) Save(_ context.Context, scope string, key string, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	entry := memoryEntry{value: value}
	if b.ttl > 0 {
		entry.expiresAt = b.now().Add(b.ttl)
	}
	b.entries[entryKey(scope, key)] = entry
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, scope string, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	delete(b.entries, entryKey(scope, key))
	return nil
}

// PurgeExpired removes entries past their expiry and reports how many went.
// Sessions that are never read again only leave memory this way.
func (b *MemoryBackend) PurgeExpired(_ context.Context) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrClosed
	}

	now := b.now()
	var removed int64
	for k, entry := range b.entries {
		if entry.expired(now) {
			delete(b.entries, k)
			removed++
		}
	}
	return removed, nil
}

func (b *MemoryBackend) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	return nil
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

func entryKey(scope string, key string) string {
	return scope + ":" + key
}
