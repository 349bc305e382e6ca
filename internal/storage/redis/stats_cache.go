// Package redis caches dashboard aggregates between inventory writes.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/domain"
	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"
)

const (
	defaultStatsKey = "hotel:rooms:stats"
	defaultStatsTTL = 5 * time.Minute
)

// StatsCache stores domain.RoomStats as JSON under a key per generation.
type StatsCache struct {
	client goredis.Cmdable
	key    string
	ttl    time.Duration
}

type StatsCacheOption func(*StatsCache)

func WithStatsKey(key string) StatsCacheOption {
	return func(c *StatsCache) {
		if key != "" {
			c.key = key
		}
	}
}

func WithStatsTTL(ttl time.Duration) StatsCacheOption {
	return func(c *StatsCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func NewStatsCache(client goredis.Cmdable, opts ...StatsCacheOption) *StatsCache {
	c := &StatsCache{
		client: client,
		key:    defaultStatsKey,
		ttl:    defaultStatsTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type statsPayload struct {
	Total        int     `json:"total"`
	AveragePrice float64 `json:"average_price"`
}

func (c *StatsCache) genKey() string {
	return c.key + ":gen"
}

func (c *StatsCache) dataKey(gen int64) string {
	return fmt.Sprintf("%s:%d", c.key, gen)
}

// GetStats reports ok=false on a cache miss. The current generation is
// returned either way; a generation key that was never set reads as 0.
func (c *StatsCache) GetStats(ctx context.Context) (domain.RoomStats, int64, bool, error) {
	gen, err := c.client.Get(ctx, c.genKey()).Int64()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return domain.RoomStats{}, 0, false, fmt.Errorf("get stats generation: %w", err)
	}

	raw, err := c.client.Get(ctx, c.dataKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.RoomStats{}, gen, false, nil
		}
		return domain.RoomStats{}, 0, false, fmt.Errorf("get stats: %w", err)
	}
	var p statsPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.RoomStats{}, 0, false, fmt.Errorf("decode stats: %w", err)
	}
	return domain.RoomStats{Total: p.Total, AveragePrice: p.AveragePrice}, gen, true, nil
}

// SetStats stores stats for generation gen. Entries of superseded
// generations are never read again and expire with the TTL.
func (c *StatsCache) SetStats(ctx context.Context, gen int64, stats domain.RoomStats) error {
	raw, err := json.Marshal(statsPayload{Total: stats.Total, AveragePrice: stats.AveragePrice})
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := c.client.Set(ctx, c.dataKey(gen), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set stats: %w", err)
	}
	return nil
}

// InvalidateStats starts a new generation.
func (c *StatsCache) InvalidateStats(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.genKey()).Err(); err != nil {
		return fmt.Errorf("invalidate stats: %w", err)
	}
	return nil
}

// Connect opens a client and verifies it with PING.
func Connect(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
