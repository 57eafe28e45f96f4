// Package cache keeps computed inventory stats in Redis so repeated
// dashboard loads skip the full table scan.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erazemk/stockroom/internal/config"
	"github.com/erazemk/stockroom/internal/model"
)

const statsKey = "stockroom:stats"

// StatsCache stores the latest stats snapshot in Redis.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache wraps an existing client.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// Connect builds a client from cfg and verifies it with a ping.
func Connect(ctx context.Context, cfg config.RedisConfig) (*StatsCache, error) {
	var opts *redis.Options
	if cfg.URL != "" {
		var err error
		opts, err = redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
	} else {
		opts = &redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return NewStatsCache(client, cfg.StatsTTL), nil
}

// Get returns the cached stats. ok is false on a miss.
func (c *StatsCache) Get(ctx context.Context) (stats model.Stats, ok bool, err error) {
	data, err := c.client.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Stats{}, false, nil
	}
	if err != nil {
		return model.Stats{}, false, fmt.Errorf("reading cached stats: %w", err)
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		return model.Stats{}, false, fmt.Errorf("decoding cached stats: %w", err)
	}
	return stats, true, nil
}

// Set stores stats for the configured TTL.
func (c *StatsCache) Set(ctx context.Context, stats model.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encoding stats: %w", err)
	}
	if err := c.client.Set(ctx, statsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("caching stats: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		return fmt.Errorf("invalidating stats: %w", err)
	}
	return nil
}

// Close releases the Redis connection pool.
func (c *StatsCache) Close() error {
	return c.client.Close()
}
