package cache

import (
	"context"
	"sync"
	"time"

	"github.com/KirillPurposeful/order-service-mvp/internal/usecase"
)

type idemEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryIdempotencyStore is the in-process fallback used when redis is not
// configured. Expired entries are dropped lazily on access.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	locks   map[string]idemEntry
	results map[string]idemEntry
}

func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		ttl:     ttl,
		locks:   make(map[string]idemEntry),
		results: make(map[string]idemEntry),
	}
}

func (s *MemoryIdempotencyStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := scope + ":" + key
	if e, ok := s.locks[k]; ok && time.Now().Before(e.expiresAt) {
		return false, nil
	}
	s.locks[k] = idemEntry{value: "1", expiresAt: time.Now().Add(s.ttl)}
	return true, nil
}

func (s *MemoryIdempotencyStore) Remember(ctx context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[scope+":"+key] = idemEntry{value: value, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryIdempotencyStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := scope + ":" + key
	e, ok := s.results[k]
	if !ok {
		return "", false, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.results, k)
		delete(s.locks, k)
		return "", false, nil
	}
	return e.value, true, nil
}

var _ usecase.IdempotencyStore = (*MemoryIdempotencyStore)(nil)
