package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
)

const defaultTTL = 30 * time.Minute

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisStore) Get(ctx context.Context, sid string) (domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, ErrNoSession
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("redis get failed: %w", err)
	}

	var s domain.Session
	if err2 := json.Unmarshal(data, &s); err2 != nil {
		return domain.Session{}, fmt.Errorf("unmarshal session failed: %w", err2)
	}
	return s, nil
}

func (r *RedisStore) Put(ctx context.Context, sid string, s domain.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(sid), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Touch slides the expiry window forward on qualifying activity.
func (r *RedisStore) Touch(ctx context.Context, sid string) error {
	ok, err := r.client.Expire(ctx, sessionKey(sid), r.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis expire failed: %w", err)
	}
	if !ok {
		return ErrNoSession
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, sessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func sessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}
