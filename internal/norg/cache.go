package norg

import (
	"context"
	"errors"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Cache stores candidate lists keyed on the full criteria. Only successful
// responses are cached, so a cached entry reproduces exactly what NORG
// returned.
type Cache interface {
	Get(ctx context.Context, key string) ([]Candidate, bool, error)
	Set(ctx context.Context, key string, candidates []Candidate, ttl time.Duration) error
}

type memoryEntry struct {
	candidates []Candidate
	expiresAt  time.Time
}

// MemoryCache is an in-process Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   func() time.Time
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		clock:   time.Now,
	}
}

// Get implements Cache.
func (m *MemoryCache) Get(_ context.Context, key string) ([]Candidate, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !m.clock().Before(e.expiresAt) {
		m.mu.Lock()
		if cur, still := m.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return cloneCandidates(e.candidates), true, nil
}

// Set implements Cache.
func (m *MemoryCache) Set(_ context.Context, key string, candidates []Candidate, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		candidates: cloneCandidates(candidates),
		expiresAt:  m.clock().Add(ttl),
	}
	return nil
}

func cloneCandidates(in []Candidate) []Candidate {
	if in == nil {
		return nil
	}
	out := make([]Candidate, len(in))
	copy(out, in)
	return out
}

const redisKeyPrefix = "norg:arbeidsfordeling:"

// RedisCache is a Cache shared between instances.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache constructs a Redis-backed cache. The client lifecycle is
// managed by the caller.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get implements Cache.
func (r *RedisCache) Get(ctx context.Context, key string) ([]Candidate, bool, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var candidates []Candidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, false, err
	}
	return candidates, true, nil
}

// Set implements Cache.
func (r *RedisCache) Set(ctx context.Context, key string, candidates []Candidate, ttl time.Duration) error {
	if candidates == nil {
		candidates = []Candidate{}
	}
	raw, err := json.Marshal(candidates)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+key, raw, ttl).Err()
}
