package database

import (
	"context"
	"decide-backend/config"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-redis/redis/v8"
)

// RedisClient stays nil when no Redis host is configured. The catalog and
// user caches then read through to the database and logout revocation is
// skipped.
var RedisClient *redis.Client

const redisDialTimeout = 3 * time.Second

func ConnectRedis(ctx context.Context, cfg *config.Config) error {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisFullAddr(),
		Password:     cfg.RedisPassword,
		DialTimeout:  redisDialTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return errors.Wrapf(err, "ping redis at %s", cfg.RedisFullAddr())
	}

	RedisClient = client
	return nil
}

// CloseRedis releases the client, if any.
func CloseRedis() error {
	if RedisClient == nil {
		return nil
	}
	err := RedisClient.Close()
	RedisClient = nil
	return err
}
