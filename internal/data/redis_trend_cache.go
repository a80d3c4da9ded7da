package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hap-eb/ebill-reports/internal/core"
	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

// DefaultTrendCachePrefix namespaces the dashboard trend cache keys.
const DefaultTrendCachePrefix = "ebill:bills:trend"

// RedisTrendCache implements core.TrendCache. Series live under
// <prefix>:<gen>:<months> and expire on their own once a bump retires them.
type RedisTrendCache struct {
	client redis.UniversalClient
	prefix string
}

var _ core.TrendCache = (*RedisTrendCache)(nil)

// NewRedisTrendCache creates a trend cache on client.
func NewRedisTrendCache(client redis.UniversalClient) *RedisTrendCache {
	return &RedisTrendCache{client: client, prefix: DefaultTrendCachePrefix}
}

func (c *RedisTrendCache) genKey() string { return c.prefix + ":gen" }

func (c *RedisTrendCache) seriesKey(gen int64, months int) string {
	return fmt.Sprintf("%s:%d:%d", c.prefix, gen, months)
}

// Generation returns the current generation, 0 before the first bump.
func (c *RedisTrendCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get trend generation: %w", err)
	}
	return gen, nil
}

// Bump advances the generation atomically.
func (c *RedisTrendCache) Bump(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.genKey()).Err(); err != nil {
		return fmt.Errorf("redis incr trend generation: %w", err)
	}
	return nil
}

// Get returns the cached series for gen and months.
func (c *RedisTrendCache) Get(ctx context.Context, gen int64, months int) ([]model.MonthlyTrendPoint, bool, error) {
	raw, err := c.client.Get(ctx, c.seriesKey(gen, months)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get trend: %w", err)
	}
	var points []model.MonthlyTrendPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, false, fmt.Errorf("decode cached trend: %w", err)
	}
	return points, true, nil
}

// Set stores points for gen and months with ttl.
func (c *RedisTrendCache) Set(
	ctx context.Context,
	gen int64,
	months int,
	points []model.MonthlyTrendPoint,
	ttl time.Duration,
) error {
	if points == nil {
		points = []model.MonthlyTrendPoint{}
	}
	payload, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("encode trend: %w", err)
	}
	if err := c.client.Set(ctx, c.seriesKey(gen, months), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set trend: %w", err)
	}
	return nil
}
