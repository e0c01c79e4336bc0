package prompt

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists cooldowns in a redis hash per device.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func promptKey(deviceID string) string {
	return "prompt:" + deviceID
}

func (s *RedisStore) Get(ctx context.Context, deviceID string) (Cooldown, error) {
	fields, err := s.client.HGetAll(ctx, promptKey(deviceID)).Result()
	if err != nil {
		return Cooldown{}, err
	}

	var cd Cooldown
	if v, ok := fields["last_shown_at"]; ok {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			cd.LastShownAt = time.UnixMilli(ms)
		}
	}
	if v, ok := fields["ignore_until"]; ok {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			cd.IgnoreUntil = time.UnixMilli(ms)
		}
	}
	if v, ok := fields["usage_count"]; ok {
		cd.UsageCount, _ = strconv.Atoi(v)
	}
	return cd, nil
}

func (s *RedisStore) Set(ctx context.Context, deviceID string, cd Cooldown) error {
	return s.client.HSet(ctx, promptKey(deviceID),
		"last_shown_at", cd.LastShownAt.UnixMilli(),
		"ignore_until", cd.IgnoreUntil.UnixMilli(),
		"usage_count", cd.UsageCount,
	).Err()
}

func (s *RedisStore) Clear(ctx context.Context, deviceID string) error {
	return s.client.Del(ctx, promptKey(deviceID)).Err()
}

// MemStore is an in-memory Store for tests and for running without redis.
type MemStore struct {
	mu        sync.Mutex
	cooldowns map[string]Cooldown
}

func NewMemStore() *MemStore {
	return &MemStore{cooldowns: map[string]Cooldown{}}
}

func (s *MemStore) Get(_ context.Context, deviceID string) (Cooldown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cooldowns[deviceID], nil
}

func (s *MemStore) Set(_ context.Context, deviceID string, cd Cooldown) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cooldowns[deviceID] = cd
	return nil
}

func (s *MemStore) Clear(_ context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cooldowns, deviceID)
	return nil
}
