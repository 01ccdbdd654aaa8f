package gateway

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the shared response cache consulted before every upstream call.
// Only successful responses are stored; entries expire after the TTL and are
// never served stale.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
}

type memoryEntry struct {
	fetchedAt time.Time
	payload   []byte
}

// MemoryCache is the default in-process cache backend: a mutex-guarded map
// of key -> (timestamp, payload). Expired entries are evicted on lookup.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

var _ Cache = (*MemoryCache)(nil)

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.payload, true
}

func (c *MemoryCache) Set(_ context.Context, key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{fetchedAt: c.now(), payload: payload}
}

// RedisCache stores cached responses in Redis with a server-side TTL. It is
// selected when REDIS_ADDR is configured, letting several restarts share a
// warm cache; registry and history state stays in process memory regardless.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("WARNING: redis cache GET %s failed: %v", key, err)
		}
		return nil, false
	}
	return payload, true
}

func (c *RedisCache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Printf("WARNING: redis cache SET %s failed: %v", key, err)
	}
}
