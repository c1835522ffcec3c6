package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects to Redis and verifies the connection
func NewRedis(ctx context.Context, addr, pass string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}
