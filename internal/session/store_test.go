package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/matrimony-admin/internal/model"
)

var admin = Session{
	Token: "bearer-1",
	User:  model.User{ID: "a1", FullName: "Root", Email: "root@example.com", Role: model.RoleSuperadmin},
}

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, "test", ttl), mr
}

// storeContract runs the behaviour every Store must share.
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "sid", admin))
	got, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, admin, got)
	assert.True(t, got.Authenticated())

	require.NoError(t, s.Clear(ctx, "sid"))
	_, err = s.Get(ctx, "sid")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Clear(ctx, "never-existed"))
}

func TestMemoryStoreContract(t *testing.T) {
	storeContract(t, NewMemoryStore(time.Hour))
}

func TestRedisStoreContract(t *testing.T) {
	s, _ := newRedisStore(t, time.Hour)
	storeContract(t, s)
}

func TestMemoryStoreExpires(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Set(context.Background(), "sid", admin))

	s.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err := s.Get(context.Background(), "sid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreUsesTokenAndUserKeys(t *testing.T) {
	s, mr := newRedisStore(t, time.Hour)
	require.NoError(t, s.Set(context.Background(), "sid", admin))

	token, err := mr.Get("test:sid:token")
	require.NoError(t, err)
	assert.Equal(t, "bearer-1", token)
	assert.True(t, mr.Exists("test:sid:user"))
	assert.Equal(t, time.Hour, mr.TTL("test:sid:token"))
}

func TestRedisStoreExpires(t *testing.T) {
	s, mr := newRedisStore(t, time.Minute)
	require.NoError(t, s.Set(context.Background(), "sid", admin))

	mr.FastForward(2 * time.Minute)
	_, err := s.Get(context.Background(), "sid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreWithoutTokenIsNoSession(t *testing.T) {
	s, mr := newRedisStore(t, time.Hour)
	require.NoError(t, mr.Set("test:sid:user", `{"_id":"a1"}`))

	_, err := s.Get(context.Background(), "sid")
	assert.ErrorIs(t, err, ErrNotFound)
}
