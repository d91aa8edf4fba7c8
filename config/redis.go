package config

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
)

func GetRedisURL() string {
	env := os.Getenv("REDIS_URL")
	if env != "" {
		return env
	}
	return "redis://localhost:6379/0"
}

func BootRedis(ctx context.Context) (*redis.Client, error) {
	opts, err := redis.ParseURL(GetRedisURL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
