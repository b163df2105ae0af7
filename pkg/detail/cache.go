package detail

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/herhollywood/adaptations/pkg/common/jsoncompat"
)

// SharedCache is an optional second cache tier behind the resolver's local
// map. A nil SharedCache disables the tier.
type SharedCache interface {
	Get(ctx context.Context, key string, out any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// RedisCache stores marshalled detail documents in redis so that multiple
// instances share one fetch.
type RedisCache struct {
	client     *redis.Client
	expiration time.Duration
}

func NewRedisCache(url string, expiration time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opts), expiration: expiration}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string, out any) error {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return jsoncompat.Unmarshal([]byte(data), out)
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if expiration <= 0 {
		expiration = c.expiration
	}
	data, err := jsoncompat.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
