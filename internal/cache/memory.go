package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore кэш в памяти процесса с TTL.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var noExpiry = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

type memoryEntry struct {
	value     int
	expiresAt time.Time
}

// NewMemoryStore создаёт кэш и запускает фоновую очистку до отмены ctx.
func NewMemoryStore(ctx context.Context) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
	go s.cleanup(ctx, 5*time.Minute)
	return s
}

func (s *MemoryStore) GetInt(ctx context.Context, key string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok || s.now().After(entry.expiresAt) {
		return 0, false, nil
	}
	return entry.value, true, nil
}

func (s *MemoryStore) SetInt(ctx context.Context, key string, value int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

func (s *MemoryStore) Incr(ctx context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || s.now().After(entry.expiresAt) {
		entry = memoryEntry{}
	}
	entry.value++
	entry.expiresAt = noExpiry
	s.entries[key] = entry
	return entry.value, nil
}

func (s *MemoryStore) cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for key, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
