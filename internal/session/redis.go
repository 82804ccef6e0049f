package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session under two keys, <prefix>:<id>:token and
// <prefix>:<id>:user, mirroring the token/user pair the dashboard always
// stored. Both keys share a sliding TTL refreshed on every Get.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a store over rdb.
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "session"
	}
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) tokenKey(id string) string { return r.prefix + ":" + id + ":token" }
func (r *RedisStore) userKey(id string) string  { return r.prefix + ":" + id + ":user" }

func (r *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	vals, err := r.rdb.MGet(ctx, r.tokenKey(id), r.userKey(id)).Result()
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	token, _ := vals[0].(string)
	if token == "" {
		return Session{}, ErrNotFound
	}
	s := Session{Token: token}
	if raw, ok := vals[1].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.User); err != nil {
			return Session{}, fmt.Errorf("decode session user: %w", err)
		}
	}
	if r.ttl > 0 {
		pipe := r.rdb.TxPipeline()
		pipe.Expire(ctx, r.tokenKey(id), r.ttl)
		pipe.Expire(ctx, r.userKey(id), r.ttl)
		if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
			return Session{}, fmt.Errorf("refresh session ttl: %w", err)
		}
	}
	return s, nil
}

func (r *RedisStore) Set(ctx context.Context, id string, s Session) error {
	user, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, r.tokenKey(id), s.Token, r.ttl)
	pipe.Set(ctx, r.userKey(id), user, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, r.tokenKey(id), r.userKey(id)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
