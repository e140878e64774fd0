package redis

import (
	"context"
	"errors"
	"fmt"
	cacherepo "ipbtracker/internal/repositories/cache"
	"time"

	"github.com/redis/go-redis/v9"
)

const pkg = "redis/"

type Config struct {
	Addr     string
	Password string
	DB       int
}

// setIfEqual checks the guard and writes the value in one step, so no
// invalidation can land between the two.
var setIfEqual = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or ''
if current ~= ARGV[2] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

type Client struct {
	redisClient *redis.Client
}

type redisResponse[T any] struct {
	cmd redis.Cmder
	get func() (T, error)
}

func (r redisResponse[T]) Err() error {
	err := r.cmd.Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (r redisResponse[T]) Result() (T, error) {
	res, err := r.get()
	if errors.Is(err, redis.Nil) {
		var zero T
		return zero, nil
	}

	return res, err
}

func (c *Client) Get(ctx context.Context, key string) cacherepo.CacheResponse[string] {
	cmd := c.redisClient.Get(ctx, key)
	return redisResponse[string]{
		cmd: cmd,
		get: cmd.Result,
	}
}

func (c *Client) GetEx(ctx context.Context, key string, expiration time.Duration) cacherepo.CacheResponse[string] {
	cmd := c.redisClient.GetEx(ctx, key, expiration)
	return redisResponse[string]{
		cmd: cmd,
		get: cmd.Result,
	}
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) cacherepo.CacheResponse[string] {
	cmd := c.redisClient.Set(ctx, key, value, expiration)
	return redisResponse[string]{
		cmd: cmd,
		get: cmd.Result,
	}
}

func (c *Client) Del(ctx context.Context, keys ...string) cacherepo.CacheResponse[int64] {
	cmd := c.redisClient.Del(ctx, keys...)
	return redisResponse[int64]{
		cmd: cmd,
		get: cmd.Result,
	}
}

func (c *Client) SetIfEqual(ctx context.Context, key string, value interface{}, expiration time.Duration, guardKey string, guard string) cacherepo.CacheResponse[bool] {
	cmd := setIfEqual.Run(ctx, c.redisClient, []string{key, guardKey}, value, guard, expiration.Milliseconds())
	return redisResponse[bool]{
		cmd: cmd,
		get: storedFlag(cmd),
	}
}

func storedFlag(cmd *redis.Cmd) func() (bool, error) {
	return func() (bool, error) {
		n, err := cmd.Int64()
		return n == 1, err
	}
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	op := pkg + "New"

	client := &Client{
		redisClient: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}

	if err := client.redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: redis: ping failed: %w", op, err)
	}

	return client, nil
}

func (c *Client) Close() error {
	return c.redisClient.Close()
}
