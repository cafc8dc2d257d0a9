package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// IdempotencyStore implements ports.IdempotencyStore using Redis SET NX.
// It is the fast first layer of duplicate detection; the transfers table
// unique index is the durable second one.
type IdempotencyStore struct {
	client *goredis.Client
	prefix string
}

// NewIdempotencyStore creates a new Redis-backed idempotency store.
func NewIdempotencyStore(client *goredis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "idem:",
	}
}

// Reserve atomically claims (clientID, key) for the given TTL.
// Returns true if the key is new, false if it was already used.
func (s *IdempotencyStore) Reserve(ctx context.Context, clientID uuid.UUID, key string, ttl time.Duration) (bool, error) {
	redisKey := s.prefix + clientID.String() + ":" + key
	result, err := s.client.SetArgs(ctx, redisKey, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists, the reservation was already claimed
			return false, nil
		}
		return false, fmt.Errorf("redis idempotency reserve: %w", err)
	}
	return result == "OK", nil
}
