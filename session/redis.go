package session

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RedisStore is a redis-backed Store. Keys are namespaced with a fixed prefix
// so a shared redis instance can host other data alongside sessions. Records
// carry no TTL; their lifetime is exactly until RemoveData, or whatever
// eviction policy the redis deployment itself applies.
type RedisStore struct {
	client *goredis.Client
	prefix string
}

// NewRedisStore returns a Store backed by the supplied redis client, storing
// keys under the supplied prefix.
func NewRedisStore(client *goredis.Client, prefix string) *RedisStore {
	log.WithField("prefix", prefix).Debug("initializing redis session store")
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisStore) key(k string) string {
	return fmt.Sprintf("%v:%v", r.prefix, k)
}

// SetData stores value under key, overwriting any existing value.
func (r *RedisStore) SetData(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// GetData returns the value stored under key, or ErrKeyNotFound.
func (r *RedisStore) GetData(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == goredis.Nil {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// RemoveData deletes the value stored under key. DEL of an absent key is a
// no-op in redis, which gives us the idempotence the Store contract asks for.
func (r *RedisStore) RemoveData(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}
