package session

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/google/uuid"       // Session token generation
	"github.com/redis/go-redis/v9" // Redis client
)

// RedisStore keeps session records in Redis under "session:<token>" keys,
// relying on key TTL for expiry.
type RedisStore struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Session lifetime
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// sessionKey builds the Redis key for a token
func sessionKey(token string) string {
	return "session:" + token
}

// Create mints a fresh token and stores its record with the configured TTL
func (s *RedisStore) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString() // Opaque session token
	rec := Record{UserID: userID, CreatedAt: time.Now()}
	b, err := json.Marshal(rec) // Marshal record to JSON
	if err != nil {
		return "", err
	}
	// Store with TTL so stale sessions expire on their own
	if err := s.rdb.Set(ctx, sessionKey(token), b, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a token to its record
func (s *RedisStore) Get(ctx context.Context, token string) (*Record, error) {
	val, err := s.rdb.Get(ctx, sessionKey(token)).Result() // Get value from Redis
	if err == redis.Nil {
		return nil, nil // Token unknown or expired
	} else if err != nil {
		return nil, err // Other Redis error
	}
	var rec Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete invalidates a token
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err() // Del is a no-op for missing keys
}
