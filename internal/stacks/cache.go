package stacks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheKeyPrefix = "pox-signer:reward-cycle:"

// Oracle reports the current reward cycle.
type Oracle interface {
	CurrentRewardCycle(ctx context.Context) (uint64, error)
}

// CycleCache 奖励周期缓存
type CycleCache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (cycle uint64, ok bool, err error)
	Set(ctx context.Context, key string, cycle uint64, ttl time.Duration) error
}

// RedisCycleCache Redis 缓存实现
type RedisCycleCache struct {
	client redis.UniversalClient
}

func NewRedisCycleCache(client redis.UniversalClient) *RedisCycleCache {
	return &RedisCycleCache{client: client}
}

func (c *RedisCycleCache) Get(ctx context.Context, key string) (uint64, bool, error) {
	raw, err := c.client.Get(ctx, cacheKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, "failed to get cached reward cycle")
	}

	cycle, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, errors.Wrapf(err, "malformed cached reward cycle %q", raw)
	}
	return cycle, true, nil
}

func (c *RedisCycleCache) Set(ctx context.Context, key string, cycle uint64, ttl time.Duration) error {
	if err := c.client.Set(ctx, cacheKeyPrefix+key, strconv.FormatUint(cycle, 10), ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to cache reward cycle")
	}
	return nil
}

// MemoryCycleCache is an in-process cache used when no Redis is configured.
type MemoryCycleCache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	cycle     uint64
	expiresAt time.Time
}

func NewMemoryCycleCache(now func() time.Time) *MemoryCycleCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCycleCache{now: now, entries: make(map[string]memoryEntry)}
}

func (c *MemoryCycleCache) Get(_ context.Context, key string) (uint64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return 0, false, nil
	}
	return e.cycle, true, nil
}

func (c *MemoryCycleCache) Set(_ context.Context, key string, cycle uint64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{cycle: cycle, expiresAt: c.now().Add(ttl)}
	return nil
}

// CachedOracle 带 TTL 缓存的奖励周期查询；缓存故障时直接回源
type CachedOracle struct {
	upstream Oracle
	cache    CycleCache
	key      string
	ttl      time.Duration
}

// NewCachedOracle caches upstream answers under key (usually the network name) for ttl.
func NewCachedOracle(upstream Oracle, cache CycleCache, key string, ttl time.Duration) *CachedOracle {
	return &CachedOracle{
		upstream: upstream,
		cache:    cache,
		key:      key,
		ttl:      ttl,
	}
}

func (o *CachedOracle) CurrentRewardCycle(ctx context.Context) (uint64, error) {
	cycle, ok, err := o.cache.Get(ctx, o.key)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Reward cycle cache read failed, querying node")
	} else if ok {
		return cycle, nil
	}

	cycle, err = o.upstream.CurrentRewardCycle(ctx)
	if err != nil {
		return 0, err
	}

	if err := o.cache.Set(ctx, o.key, cycle, o.ttl); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Failed to cache reward cycle")
	}
	return cycle, nil
}
