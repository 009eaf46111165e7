package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

var _ Cache[any] = (*Redis[any])(nil)

func NewRedis[T any](client *redis.Client, key string) *Redis[T] {
	return &Redis[T]{
		client: client,
		key:    key,
	}
}

// Redis keeps its value msgpack-encoded in Redis, so that every instance of the service
// shares it.
type Redis[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	client *redis.Client
	key    string
}

func (c *Redis[T]) Get(ctx context.Context, dest *T) error {
	resp, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		log.Error().Err(err).Str("key", c.key).Msg("failed to get value from redis")
		return err
	}
	if err := msgpack.Unmarshal(resp, dest); err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to unmarshal value from msgpack from redis")
		return err
	}
	return nil
}

func (c *Redis[T]) Set(ctx context.Context, value T, expire time.Duration) error {
	if l := log.Trace(); l.Enabled() {
		l.Str("key", c.key).Msg("setting value to redis")
	}
	b, err := msgpack.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to marshal value with msgpack")
		return err
	}
	if err := c.client.Set(ctx, c.key, b, expire).Err(); err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to set value to redis")
		return err
	}
	return nil
}

func (c *Redis[T]) MutexGetSet(ctx context.Context, dest *T, valueFunc func() (T, error), expire time.Duration) error {
	err := c.Get(ctx, dest)
	if err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	// onwards, cache key does not exist

	return c.slowMutexGetSet(ctx, dest, valueFunc, expire)
}

func (c *Redis[T]) slowMutexGetSet(ctx context.Context, dest *T, valueFunc func() (T, error), expire time.Duration) error {
	c.m.Lock()
	defer c.m.Unlock()
	err := c.Get(ctx, dest)
	if err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	value, err := valueFunc()
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to get value from valueFunc() in MutexGetSet")
		return err
	}

	// a concurrent Set wins over the value computed here
	added, err := c.add(ctx, value, expire)
	if err != nil {
		return err
	}
	if !added {
		if err := c.Get(ctx, dest); err == nil {
			return nil
		}
	}
	*dest = value

	return nil
}

func (c *Redis[T]) add(ctx context.Context, value T, expire time.Duration) (bool, error) {
	b, err := msgpack.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to marshal value with msgpack")
		return false, err
	}
	added, err := c.client.SetNX(ctx, c.key, b, expire).Result()
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to add value to redis")
		return false, err
	}
	return added, nil
}

func (c *Redis[T]) Delete(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to delete value from redis")
		return err
	}
	return nil
}
