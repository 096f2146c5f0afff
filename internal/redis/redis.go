package redis

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/fakhrymubarak/weather-widget/internal/config"
)

const dialTimeout = 2 * time.Second

// NewClient builds a client for the configured address. It does not connect.
func NewClient(cfg config.Redis) *redisv9.Client {
	return redisv9.NewClient(&redisv9.Options{
		Addr:        cfg.Addr,
		DialTimeout: dialTimeout,
	})
}

// Connect builds a client and pings it so a bad address fails at startup
// instead of on the first theme toggle.
func Connect(ctx context.Context, cfg config.Redis) (*redisv9.Client, error) {
	client := NewClient(cfg)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}
