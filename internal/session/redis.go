package session

import (
	"context"
	"errors"

	pkgredis "github.com/angelmondragon/storefront/pkg/redis"
)

// RedisStore keeps values under namespaced keys with no expiry.
type RedisStore struct {
	client *pkgredis.Client
}

func NewRedisStore(client *pkgredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.client.SessionKey(key))
	if errors.Is(err, pkgredis.ErrNil) {
		return "", ErrNotFound
	}
	return v, err
}

func (s *RedisStore) SetIfAbsent(ctx context.Context, key, value string) (string, error) {
	redisKey := s.client.SessionKey(key)
	created, err := s.client.SetNX(ctx, redisKey, value, 0)
	if err != nil {
		return "", err
	}
	if created {
		return value, nil
	}
	return s.client.Get(ctx, redisKey)
}
