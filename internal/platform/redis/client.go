// Package redis holds the connection used by the Redis snapshot store.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"eventdesk/internal/platform/config"
)

// Client is the snapshot store's connection. It embeds the go-redis client,
// so store.NewRedisStore accepts it as a redis.Cmdable.
type Client struct {
	*goredis.Client
	addr string
}

// Dial connects to the server named by cfg.URL and checks it answers before
// the desk loads its registry from it.
func Dial(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	c := &Client{Client: goredis.NewClient(opts), addr: opts.Addr}
	if err := c.Reachable(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// clientOptions parses the URL and applies pool and timeout settings. Zero
// values keep the go-redis defaults.
func clientOptions(cfg config.RedisConfig) (*goredis.Options, error) {
	if cfg.URL == "" {
		return nil, errors.New("snapshot store url is empty")
	}
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot store url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// Addr is the host:port the client dials.
func (c *Client) Addr() string {
	return c.addr
}

// Reachable pings the server. /health reports the snapshot store as degraded
// while it fails.
func (c *Client) Reachable(ctx context.Context) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("snapshot store at %s unreachable: %w", c.addr, err)
	}
	return nil
}
