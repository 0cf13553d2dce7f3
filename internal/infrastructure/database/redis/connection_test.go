package redis

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ecommerce-platform/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.FromEnv()
	cfg.Redis.Host = "cache"
	cfg.Redis.Port = "6380"
	cfg.Redis.DB = 2
	cfg.Redis.PoolSize = 7

	opts := Options(cfg)

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 7, opts.PoolSize)
}

func TestNewConnectionFailsWhenUnreachable(t *testing.T) {
	cfg := config.FromEnv()
	cfg.Redis.Host = "127.0.0.1"
	cfg.Redis.Port = "1"

	log := logrus.New()
	log.SetOutput(io.Discard)

	_, err := NewConnection(context.Background(), cfg, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}
