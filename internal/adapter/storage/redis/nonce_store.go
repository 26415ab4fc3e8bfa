package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// NonceStore implements ports.NonceStore with SET NX keys that expire after
// the claim's TTL. Keys are shared across replicas, so a nonce consumed on
// one node is rejected on all.
type NonceStore struct {
	client goredis.Cmdable
}

// NewNonceStore creates a new Redis-backed nonce store.
func NewNonceStore(client goredis.Cmdable) *NonceStore {
	return &NonceStore{client: client}
}

func nonceKey(scope, nonce string) string {
	return "nonce:" + scope + ":" + nonce
}

// CheckAndSet claims scope/nonce. It returns false when the nonce was
// already claimed and has not expired.
func (s *NonceStore) CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, fmt.Errorf("claim nonce %s/%s: ttl must be positive", scope, nonce)
	}
	res, err := s.client.SetArgs(ctx, nonceKey(scope, nonce), time.Now().Unix(), goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	switch {
	case errors.Is(err, goredis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("claim nonce %s/%s: %w", scope, nonce, err)
	}
	return res == "OK", nil
}
