package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
)

func newTestStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_PutGet(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	want := domain.Session{Token: "tok-abc", UserID: 42}
	require.NoError(t, store.Put(ctx, "sid-1", want))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.False(t, got.Anonymous())
}

func TestRedisStore_MissingSession(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	_, err := store.Get(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNoSession)

	assert.ErrorIs(t, store.Touch(ctx, "unknown"), ErrNoSession)
}

func TestRedisStore_SlidingExpiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", domain.Session{Token: "tok", UserID: 1}))

	// Just short of expiry, a touch must push the window forward.
	mr.FastForward(50 * time.Second)
	require.NoError(t, store.Touch(ctx, "sid-1"))

	mr.FastForward(50 * time.Second)
	_, err := store.Get(ctx, "sid-1")
	require.NoError(t, err, "touched session should still be alive")

	// Without another touch the session lapses.
	mr.FastForward(time.Minute)
	_, err = store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", domain.Session{Token: "tok", UserID: 1}))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNoSession)
}
