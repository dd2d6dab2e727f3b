// internal/infrastructure/database/redis/connection.go
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const connectAttempts = 3

// Client owns the Redis connection shared by the session store and the login limiter
type Client struct {
	rdb *redis.Client
}

// Options builds client options from REDIS_* settings
func Options(cfg *config.Config) *redis.Options {
	return &redis.Options{
		Addr:            cfg.GetRedisAddr(),
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		ClientName:      cfg.App.Name,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
		PoolTimeout:     4 * time.Second,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// NewConnection dials Redis, retrying a few times while the server comes up
func NewConnection(cfg *config.Config, log *logrus.Logger) (*Client, error) {
	rdb := redis.NewClient(Options(cfg))
	entry := log.WithField("addr", cfg.GetRedisAddr())

	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = rdb.Ping(ctx).Err()
		cancel()
		if err == nil {
			entry.Info("redis connection established")
			return &Client{rdb: rdb}, nil
		}
		if attempt < connectAttempts {
			entry.WithError(err).WithField("attempt", attempt).Warn("redis not reachable, retrying")
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.GetRedisAddr(), err)
}

// GetClient returns the underlying client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
