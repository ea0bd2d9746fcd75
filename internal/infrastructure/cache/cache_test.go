package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisStore(rdb), mr
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	s, _ := newRedisTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "auth:email:T1", `{"email":"a@b.com"}`, time.Minute))

	v, err := s.Get(ctx, "auth:email:T1")
	require.NoError(t, err)
	assert.Equal(t, `{"email":"a@b.com"}`, v)

	require.NoError(t, s.Delete(ctx, "auth:email:T1"))
	_, err = s.Get(ctx, "auth:email:T1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Get_MissingKey(t *testing.T) {
	s, _ := newRedisTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	s, mr := newRedisTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", 10*time.Minute))
	mr.FastForward(11 * time.Minute)

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SetGetDelete(t *testing.T) {
	s := NewMemoryStore(10)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	s := NewMemoryStore(10)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_OverwriteSameKey(t *testing.T) {
	s := NewMemoryStore(10)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v1", time.Minute))
	require.NoError(t, s.Set(ctx, "k", "v2", time.Minute))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestMemoryStore_EvictsWhenFull(t *testing.T) {
	s := NewMemoryStore(3)
	defer s.Close()
	ctx := context.Background()

	// "soon" has the earliest expiry so it is the eviction victim.
	require.NoError(t, s.Set(ctx, "soon", "v", time.Minute))
	require.NoError(t, s.Set(ctx, "a", "v", time.Hour))
	require.NoError(t, s.Set(ctx, "b", "v", time.Hour))
	require.NoError(t, s.Set(ctx, "c", "v", time.Hour))

	_, err := s.Get(ctx, "soon")
	assert.ErrorIs(t, err, ErrNotFound)

	for _, k := range []string{"a", "b", "c"} {
		_, err := s.Get(ctx, k)
		assert.NoError(t, err, fmt.Sprintf("key %q should survive eviction", k))
	}
}
