package toast

import (
	"context"
	"slices"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryBackend is an in-process Backend for development, tests and single
// instance deployments.
type MemoryBackend struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
}

// NewMemoryBackend creates a memory backend. A positive cleanupInterval
// starts a goroutine that evicts expired entries; stop it with Close.
func NewMemoryBackend(cleanupInterval time.Duration) *MemoryBackend {
	b := &MemoryBackend{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		b.ticker = time.NewTicker(cleanupInterval)
		go b.cleanupLoop()
	}

	return b
}

func (b *MemoryBackend) Save(_ context.Context, key string, data []byte, ttl time.Duration) error {
	b.mu.Lock()
	b.entries[key] = memoryEntry{data: slices.Clone(data), expiresAt: time.Now().Add(ttl)}
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Pop(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok {
		return nil, nil
	}
	delete(b.entries, key)

	if time.Now().After(e.expiresAt) {
		return nil, nil
	}
	return e.data, nil
}

func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	delete(b.entries, key)
	b.mu.Unlock()
	return nil
}

// DeleteExpired removes every expired entry.
func (b *MemoryBackend) DeleteExpired() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	for key, e := range b.entries {
		if now.After(e.expiresAt) {
			delete(b.entries, key)
		}
	}
}

// Len returns the number of stored entries, expired ones included.
func (b *MemoryBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Close stops the cleanup goroutine.
func (b *MemoryBackend) Close() error {
	b.once.Do(func() {
		if b.ticker != nil {
			b.ticker.Stop()
		}
		close(b.done)
	})
	return nil
}

func (b *MemoryBackend) cleanupLoop() {
	for {
		select {
		case <-b.ticker.C:
			b.DeleteExpired()
		case <-b.done:
			return
		}
	}
}
