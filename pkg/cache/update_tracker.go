package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// UpdateTracker records which webhook updates have been taken for
// processing. Claim returns true exactly once per update id within the TTL.
type UpdateTracker interface {
	Claim(ctx context.Context, updateID int64) (bool, error)
}

type setNXer interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
}

const updateKeyFormat = "tg:update:%d"

type RedisUpdateTracker struct {
	store setNXer
	ttl   time.Duration
}

func NewRedisUpdateTracker(store *RedisCache, ttl time.Duration) *RedisUpdateTracker {
	return &RedisUpdateTracker{store: store, ttl: ttl}
}

func (t *RedisUpdateTracker) Claim(ctx context.Context, updateID int64) (bool, error) {
	ok, err := t.store.SetNX(ctx, fmt.Sprintf(updateKeyFormat, updateID), time.Now().Unix(), t.ttl)
	if err != nil {
		return false, fmt.Errorf("claim update %d: %w", updateID, err)
	}
	return ok, nil
}

// MemoryUpdateTracker is the single-process tracker used when Redis is off.
type MemoryUpdateTracker struct {
	mu   sync.Mutex
	seen map[int64]time.Time
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryUpdateTracker(ttl time.Duration) *MemoryUpdateTracker {
	return &MemoryUpdateTracker{
		seen: make(map[int64]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (t *MemoryUpdateTracker) Claim(_ context.Context, updateID int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.evict(now)

	if _, ok := t.seen[updateID]; ok {
		return false, nil
	}
	t.seen[updateID] = now.Add(t.ttl)
	return true, nil
}

// evict drops expired entries. Callers hold mu.
func (t *MemoryUpdateTracker) evict(now time.Time) {
	for id, expires := range t.seen {
		if now.After(expires) {
			delete(t.seen, id)
		}
	}
}
