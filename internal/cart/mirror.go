package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// CountMirror keeps the latest broadcast badge count in Redis so the
// count read on every navigation does not hit the backend.
type CountMirror struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCountMirror(client *redis.Client) *CountMirror {
	return &CountMirror{client: client, ttl: 15 * time.Minute}
}

// Follow subscribes to a coordinator's count broadcast and mirrors
// every value. The goroutine exits when ctx is done or the coordinator
// is closed.
func (m *CountMirror) Follow(ctx context.Context, userID int64, c *Coordinator) {
	ch, cancel := c.Subscribe()
	go func() {
		defer cancel()
		for {
			select {
			case count, ok := <-ch:
				if !ok {
					return
				}
				if err := m.client.Set(ctx, countKey(userID), count, m.ttl).Err(); err != nil {
					log.Printf("count mirror set failed for user %d: %v", userID, err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Get returns the mirrored count; ok is false on a miss.
func (m *CountMirror) Get(ctx context.Context, userID int64) (int, bool) {
	count, err := m.client.Get(ctx, countKey(userID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false
	}
	if err != nil {
		log.Printf("count mirror get failed for user %d: %v", userID, err)
		return 0, false
	}
	return count, true
}

// Forget drops the mirrored count, so a later sign-in starts from a
// fresh read instead of the previous session's badge.
func (m *CountMirror) Forget(ctx context.Context, userID int64) {
	if err := m.client.Del(ctx, countKey(userID)).Err(); err != nil {
		log.Printf("count mirror forget failed for user %d: %v", userID, err)
	}
}

func countKey(userID int64) string {
	return fmt.Sprintf("cart:count:%d", userID)
}
