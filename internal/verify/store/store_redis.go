package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"peselgate/internal/verify"
)

const resultKeyPrefix = "verify:result:"

// RedisStore shares verification results across instances. Values are
// JSON; expiry is delegated to Redis TTLs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) FindResult(ctx context.Context, subjectHash string) (*verify.Result, error) {
	raw, err := s.client.Get(ctx, resultKeyPrefix+subjectHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, verify.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find result: %w", err)
	}

	var result verify.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &result, nil
}

func (s *RedisStore) SaveResult(ctx context.Context, result *verify.Result) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := s.client.Set(ctx, resultKeyPrefix+result.SubjectHash, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}
