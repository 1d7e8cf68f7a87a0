package services

import (
	"context"
	"crypto/sha256"
	"decide-backend/internal/database"
	"encoding/hex"
	"time"

	"github.com/cockroachdb/errors"
)

const denylistPrefix = "denylist:"

// Keys hold a digest of the token, never the token itself.
func denylistKey(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return denylistPrefix + hex.EncodeToString(sum[:])
}

// AddToDenylist revokes a token until it would have expired anyway. Without
// Redis, logout only forgets the token client side.
func AddToDenylist(ctx context.Context, tokenString string, expiration time.Duration) error {
	if database.RedisClient == nil || expiration <= 0 {
		return nil
	}
	if err := database.RedisClient.Set(ctx, denylistKey(tokenString), 1, expiration).Err(); err != nil {
		return errors.Wrap(err, "denylist token")
	}
	return nil
}

func IsDenylisted(ctx context.Context, tokenString string) (bool, error) {
	if database.RedisClient == nil {
		return false, nil
	}
	n, err := database.RedisClient.Exists(ctx, denylistKey(tokenString)).Result()
	if err != nil {
		return false, errors.Wrap(err, "check token denylist")
	}
	return n > 0, nil
}
