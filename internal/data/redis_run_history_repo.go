package data

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hap-eb/ebill-reports/internal/core"
	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

const (
	// DefaultRunHistoryKey is the Redis list holding recent report runs, newest first.
	DefaultRunHistoryKey  = "ebill:report:runs"
	defaultRunHistorySize = 50
)

// RedisRunHistoryRepo keeps the last N JobResults in a capped Redis list.
type RedisRunHistoryRepo struct {
	client redis.UniversalClient
	key    string
	size   int64
}

var _ core.RunHistoryRepository = (*RedisRunHistoryRepo)(nil)

// NewRedisRunHistoryRepo creates a repo capped at size entries (50 when size <= 0).
func NewRedisRunHistoryRepo(client redis.UniversalClient, size int) *RedisRunHistoryRepo {
	if size <= 0 {
		size = defaultRunHistorySize
	}
	return &RedisRunHistoryRepo{client: client, key: DefaultRunHistoryKey, size: int64(size)}
}

// Record pushes result to the head of the list and trims the tail.
func (r *RedisRunHistoryRepo) Record(ctx context.Context, result model.JobResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal run result: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.key, payload)
	pipe.LTrim(ctx, r.key, 0, r.size-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis record run: %w", err)
	}
	return nil
}

// Recent returns up to limit results, newest first.
func (r *RedisRunHistoryRepo) Recent(ctx context.Context, limit int) ([]model.JobResult, error) {
	if limit <= 0 {
		return nil, ErrHistoryLimitRequired
	}
	raw, err := r.client.LRange(ctx, r.key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}

	out := make([]model.JobResult, 0, len(raw))
	for _, item := range raw {
		var res model.JobResult
		if err := json.Unmarshal([]byte(item), &res); err != nil {
			return nil, fmt.Errorf("decode run result: %w", err)
		}
		out = append(out, res)
	}
	return out, nil
}
