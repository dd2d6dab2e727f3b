package redis

import (
	"testing"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	cfg := &config.Config{
		App:   config.AppConfig{Name: "LuxFakia"},
		Redis: config.RedisConfig{Host: "cache", Port: "6380", Password: "pw", DB: 2, PoolSize: 20, MinIdleConns: 4},
	}

	opts := Options(cfg)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, 4, opts.MinIdleConns)
	assert.Equal(t, "LuxFakia", opts.ClientName)
}
