// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix is the default key prefix of a RedisStore.
//
const DefaultPrefix = "logicsim:levels:"

// RedisStore stores levels as JSON strings in Redis.
//
type RedisStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
//
type RedisOption func(*RedisStore)

// WithPrefix sets the key prefix.
//
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithTTL sets the expiration of stored levels. Zero means no expiration.
//
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

// NewRedisStore connects to the Redis server at addr.
//
func NewRedisStore(addr, password string, db int, opts ...RedisOption) *RedisStore {
	return NewRedisStoreFromClient(backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewRedisStoreFromClient returns a RedisStore using an existing client. The
// store takes ownership of the client.
//
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(circuit string) string { return s.prefix + circuit }

// Save implements Store.
//
func (s *RedisStore) Save(ctx context.Context, circuit string, lv Levels) error {
	if err := checkName(circuit); err != nil {
		return err
	}
	data, err := json.Marshal(lv)
	if err != nil {
		return errors.Wrap(err, "failed to marshal levels")
	}
	return errors.Wrap(s.client.Set(ctx, s.key(circuit), data, s.ttl).Err(), "failed to save to redis")
}

// Load implements Store.
//
func (s *RedisStore) Load(ctx context.Context, circuit string) (Levels, error) {
	if err := checkName(circuit); err != nil {
		return nil, err
	}
	val, err := s.client.Get(ctx, s.key(circuit)).Bytes()
	if err != nil {
		if err == backend.Nil {
			return nil, errors.Wrap(ErrNotFound, circuit)
		}
		return nil, errors.Wrap(err, "failed to get from redis")
	}
	lv := make(Levels)
	if err = json.Unmarshal(val, &lv); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal levels")
	}
	return lv, nil
}

// Delete implements Store.
//
func (s *RedisStore) Delete(ctx context.Context, circuit string) error {
	if err := checkName(circuit); err != nil {
		return err
	}
	return errors.Wrap(s.client.Del(ctx, s.key(circuit)).Err(), "failed to delete from redis")
}

// Close closes the Redis client.
//
func (s *RedisStore) Close() error { return s.client.Close() }
