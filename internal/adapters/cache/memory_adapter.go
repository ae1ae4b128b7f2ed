package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/zatekoja/careplannavigator/internal/domain/providers"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryAdapter implements CacheProvider with a bounded in-process LRU.
// The LRU's own TTL is the upper bound; each entry also carries the
// expiration it was set with.
type MemoryAdapter struct {
	lru *expirable.LRU[string, memoryEntry]
	now func() time.Time
}

// NewMemoryAdapter creates an LRU cache holding at most maxEntries values,
// none of them longer than maxTTL.
func NewMemoryAdapter(maxEntries int, maxTTL time.Duration) *MemoryAdapter {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &MemoryAdapter{
		lru: expirable.NewLRU[string, memoryEntry](maxEntries, nil, maxTTL),
		now: time.Now,
	}
}

var _ providers.CacheProvider = (*MemoryAdapter)(nil)

// Get retrieves a value from cache, nil on a miss
func (a *MemoryAdapter) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok := a.lru.Get(key)
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && !a.now().Before(entry.expiresAt) {
		a.lru.Remove(key)
		return nil, nil
	}
	return entry.value, nil
}

// Set stores a copy of value. expirationSeconds <= 0 keeps it until the LRU evicts it.
func (a *MemoryAdapter) Set(_ context.Context, key string, value []byte, expirationSeconds int) error {
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if expirationSeconds > 0 {
		entry.expiresAt = a.now().Add(time.Duration(expirationSeconds) * time.Second)
	}
	a.lru.Add(key, entry)
	return nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(_ context.Context, key string) error {
	a.lru.Remove(key)
	return nil
}

// Exists checks if a live key exists in cache
func (a *MemoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	value, err := a.Get(ctx, key)
	return value != nil, err
}

// Len returns the number of entries, including ones not yet expired out
func (a *MemoryAdapter) Len() int {
	return a.lru.Len()
}
