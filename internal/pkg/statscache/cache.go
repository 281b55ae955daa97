// Package statscache caches the aggregate flight statistics in redis.
// Stats are recomputed from every flight row, so the result is cached
// with a TTL and invalidated on any flight write; a SetNX lock keeps
// concurrent recomputations from stampeding the database.
package statscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
)

const (
	statsKey = "journal:stats"
	lockKey  = "journal:stats:lock"
)

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

type StatsCache struct {
	redis RedisClient
}

func NewStatsCache(redis RedisClient) *StatsCache {
	return &StatsCache{
		redis: redis,
	}
}

func (c *StatsCache) AcquireLock(ctx context.Context, timeout time.Duration) (bool, error) {
	return c.redis.SetNX(ctx, lockKey, "1", timeout).Result()
}

func (c *StatsCache) ReleaseLock(ctx context.Context) error {
	return c.redis.Del(ctx, lockKey).Err()
}

func (c *StatsCache) GetStats(ctx context.Context) (dto.FlightStats, error) {
	data, err := c.redis.Get(ctx, statsKey).Bytes()
	if err != nil {
		return dto.FlightStats{}, err
	}

	var stats dto.FlightStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return dto.FlightStats{}, err
	}

	return stats, nil
}

func (c *StatsCache) SetStats(ctx context.Context, stats dto.FlightStats, expiration time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := c.redis.Set(ctx, statsKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set stats: %w", err)
	}

	return nil
}

// Invalidate drops the cached stats. Called after every flight write so
// the next read recomputes.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, statsKey).Err()
}
