package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
)

// Pending payloads are transient; one that sat for an hour is stale and
// the user restarts from the cart anyway.
const payloadTTL = time.Hour

func NewRedisPayloadStore(client *redis.Client) *RedisPayloadStore {
	return &RedisPayloadStore{client: client, ttl: payloadTTL}
}

type RedisPayloadStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisPayloadStore) Put(ctx context.Context, userID int64, p domain.CheckoutPayload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload failed: %w", err)
	}
	if err := r.client.Set(ctx, payloadKey(userID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisPayloadStore) Get(ctx context.Context, userID int64) (domain.CheckoutPayload, error) {
	data, err := r.client.Get(ctx, payloadKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.CheckoutPayload{}, ErrNoPayload
	}
	if err != nil {
		return domain.CheckoutPayload{}, fmt.Errorf("redis get failed: %w", err)
	}

	var p domain.CheckoutPayload
	if err2 := json.Unmarshal(data, &p); err2 != nil {
		return domain.CheckoutPayload{}, fmt.Errorf("unmarshal payload failed: %w", err2)
	}
	return p, nil
}

func (r *RedisPayloadStore) Clear(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, payloadKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func payloadKey(userID int64) string {
	return fmt.Sprintf("checkout:payload:%d", userID)
}
