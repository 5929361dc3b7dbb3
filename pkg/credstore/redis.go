package credstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/authkit/pkg/apiclient"
)

// RedisStore persists credentials in Redis under two namespaced keys. It
// suits headless clients that share a session across processes.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisStore creates a Redis-backed credential store. The namespace
// defaults to "authkit" when empty.
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "authkit"
	}
	return &RedisStore{
		client:    client,
		namespace: namespace,
	}
}

func (s *RedisStore) tokenKey() string { return s.namespace + ":token" }
func (s *RedisStore) userKey() string  { return s.namespace + ":user" }

// Save writes both keys in a single transaction so readers never observe a
// half-written pair.
func (s *RedisStore) Save(ctx context.Context, creds Credentials) error {
	if creds.Token == "" {
		return ErrEmptyToken
	}

	userJSON, err := json.Marshal(creds.User)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.tokenKey(), creds.Token, 0)
		pipe.Set(ctx, s.userKey(), userJSON, 0)
		return nil
	})
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// Load returns the stored pair, or ErrNotFound when either key is missing or
// the user record does not decode.
func (s *RedisStore) Load(ctx context.Context) (Credentials, error) {
	values, err := s.client.MGet(ctx, s.tokenKey(), s.userKey()).Result()
	if err != nil {
		return Credentials{}, errors.Join(ErrStoreFailure, err)
	}

	token, ok := values[0].(string)
	if !ok || token == "" {
		return Credentials{}, ErrNotFound
	}
	userJSON, ok := values[1].(string)
	if !ok {
		return Credentials{}, ErrNotFound
	}

	var user apiclient.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return Credentials{}, ErrNotFound
	}

	return Credentials{Token: token, User: user}, nil
}

// Clear removes both keys in one call.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey(), s.userKey()).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}
