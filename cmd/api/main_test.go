package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pageza/recipes-service/config"
)

func TestRateLimitStore(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.RateLimitEnabled = true
	cfg.RedisURL = "redis://" + mr.Addr()

	client := rateLimitStore(context.Background(), cfg, zap.NewNop())
	require.NotNil(t, client)
	assert.NoError(t, client.Close())
}

func TestRateLimitStoreDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimitEnabled = false

	assert.Nil(t, rateLimitStore(context.Background(), cfg, zap.NewNop()))
}

func TestRateLimitStoreUnreachableRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.RateLimitEnabled = true
	cfg.RedisURL = "redis://" + addr

	core, logs := observer.New(zap.WarnLevel)
	assert.Nil(t, rateLimitStore(context.Background(), cfg, zap.New(core)))
	assert.Equal(t, 1, logs.FilterMessage("Rate limiting disabled, Redis is unavailable").Len())
}
