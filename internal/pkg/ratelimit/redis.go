package ratelimit

import (
	"context"
	"fmt"
	"time"

	"quill/internal/pkg/cache"
)

// RedisStore 基于 Redis 的共享计数，多实例部署使用
type RedisStore struct {
	cache  *cache.RedisCache
	limit  int
	window time.Duration
}

// NewRedisStore 创建 Redis 限流器
func NewRedisStore(c *cache.RedisCache, limit int, window time.Duration) *RedisStore {
	return &RedisStore{cache: c, limit: limit, window: window}
}

// Check 检查并记录一次请求
func (s *RedisStore) Check(ctx context.Context, callerKey string) (Decision, error) {
	res, err := s.cache.IncrWindow(ctx, cache.RateLimitKey(callerKey), s.limit, s.window)
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit counter: %w", err)
	}
	return Decision{
		Allowed:   res.Allowed,
		Limit:     s.limit,
		Remaining: remaining(s.limit, res.Count),
		ResetAt:   time.Now().Add(res.TTL),
	}, nil
}
