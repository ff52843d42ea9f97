package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"quill/internal/config"
)

// RedisCache Redis 客户端封装
// 多实例部署时作为共享的限流计数存储
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache 创建 Redis 客户端
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// NewRedisCacheWithClient 使用已有客户端
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// windowScript 固定窗口计数，到期后整体重置
// 超限时不递增，返回 {count, ttl_ms, allowed}
var windowScript = redis.NewScript(`
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
local ttl = redis.call('PTTL', KEYS[1])
if count == 0 or ttl < 0 then
  redis.call('SET', KEYS[1], 1, 'PX', window)
  return {1, window, 1}
end
if count >= limit then
  return {count, ttl, 0}
end
count = redis.call('INCR', KEYS[1])
return {count, ttl, 1}
`)

// WindowResult 窗口计数结果
type WindowResult struct {
	Count   int
	TTL     time.Duration
	Allowed bool
}

// IncrWindow 原子地检查并递增 key 在当前窗口内的计数
func (c *RedisCache) IncrWindow(ctx context.Context, key string, limit int, window time.Duration) (*WindowResult, error) {
	vals, err := windowScript.Run(ctx, c.client, []string{key}, limit, window.Milliseconds()).Int64Slice()
	if err != nil {
		return nil, err
	}
	return &WindowResult{
		Count:   int(vals[0]),
		TTL:     time.Duration(vals[1]) * time.Millisecond,
		Allowed: vals[2] == 1,
	}, nil
}

// Close 关闭连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// RateLimitKeyPrefix 限流计数 key 前缀
const RateLimitKeyPrefix = "quill:ratelimit:"

// RateLimitKey 生成限流计数 key
func RateLimitKey(callerKey string) string {
	return RateLimitKeyPrefix + callerKey
}
