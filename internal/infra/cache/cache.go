package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client wraps redis.Client and fails safe: an unreachable Redis behaves
// like an empty cache.
type Client struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Redis exposes the underlying client, nil when caching is disabled.
func (c *Client) Redis() *redis.Client {
	if c == nil {
		return nil
	}
	return c.rdb
}

// Get returns nil on a miss or when redis is unavailable.
func (c *Client) Get(ctx context.Context, key string) []byte {
	if c == nil || c.rdb == nil {
		return nil
	}
	res, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return res
}

func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Client) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

// Ping backs the /ready check. A disabled cache is always ready.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	if err := c.rdb.Ping(ctx).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func (c *Client) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
