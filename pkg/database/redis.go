package database

import (
	"context"
	"fmt"
	"time"

	"travel-booking/pkg/utils"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects to redis, returning nil when no address is configured.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	if config.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", config.Addr, err)
	}

	return client, nil
}
