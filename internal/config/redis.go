package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig backs the tenant cache, rate limiting and the event bus.
// REDIS_URL takes precedence over the discrete settings.
type RedisConfig struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
	PoolSize int
}

func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		URL:      getEnvOrDefault("REDIS_URL", ""),
		Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
		Port:     getEnvOrDefault("REDIS_PORT", "6379"),
		Password: getEnvOrDefault("REDIS_PASSWORD", ""),
		DB:       getEnvIntWithDefault("REDIS_DB", 0),
		PoolSize: getEnvIntWithDefault("REDIS_POOL_SIZE", 20),
	}
}

func (c *RedisConfig) Options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opts.PoolSize = c.PoolSize
		return opts, nil
	}
	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", c.Host, c.Port),
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
	}, nil
}

func (c *RedisConfig) GetClient() (*redis.Client, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	return client, nil
}
