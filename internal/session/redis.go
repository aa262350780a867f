package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps slots in Redis with a TTL refreshed on every write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type redisSlot struct {
	Raw       json.RawMessage `json:"raw"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// OpenRedis parses a redis:// URL and checks the connection.
func OpenRedis(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client, ttl), nil
}

func slotKey(sessionID string) string {
	return fmt.Sprintf("session:%s:slot", sessionID)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Slot, error) {
	data, err := s.client.Get(ctx, slotKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot: %w", err)
	}

	var rs redisSlot
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("unmarshal slot: %w", err)
	}
	return decodeSlot(rs.Raw, rs.UpdatedAt)
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, slot Slot) error {
	if slot.UpdatedAt.IsZero() {
		slot.UpdatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(redisSlot{Raw: slot.Raw, UpdatedAt: slot.UpdatedAt})
	if err != nil {
		return fmt.Errorf("marshal slot: %w", err)
	}
	return s.client.Set(ctx, slotKey(sessionID), data, s.ttl).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
