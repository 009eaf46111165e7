package cache

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

var _ Cache[any] = (*Singular[any])(nil)

func NewSingular[T any](key string) *Singular[T] {
	return &Singular[T]{
		key: key,
		c:   cache.New(cache.NoExpiration, time.Minute*10),
	}
}

// Singular keeps its value in process memory.
type Singular[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	key string

	c *cache.Cache
}

func (c *Singular[T]) Get(_ context.Context, dest *T) error {
	result, ok := c.c.Get(c.key)
	if !ok {
		return ErrNotFound
	}
	*dest = result.(T)
	return nil
}

func (c *Singular[T]) Set(_ context.Context, value T, expire time.Duration) error {
	c.c.Set(c.key, value, expire)
	return nil
}

func (c *Singular[T]) MutexGetSet(ctx context.Context, dest *T, valueFunc func() (T, error), expire time.Duration) error {
	err := c.Get(ctx, dest)
	if err == nil {
		return nil
	}
	// onwards, cache key does not exist

	return c.slowMutexGetSet(ctx, dest, valueFunc, expire)
}

func (c *Singular[T]) slowMutexGetSet(ctx context.Context, dest *T, valueFunc func() (T, error), expire time.Duration) error {
	c.m.Lock()
	defer c.m.Unlock()
	if err := c.Get(ctx, dest); err == nil {
		return nil
	}

	value, err := valueFunc()
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to get value from valueFunc() in MutexGetSet")
		return err
	}

	// a concurrent Set wins over the value computed here
	if err := c.c.Add(c.key, value, expire); err != nil {
		if err := c.Get(ctx, dest); err == nil {
			return nil
		}
	}
	*dest = value

	return nil
}

func (c *Singular[T]) Delete(_ context.Context) error {
	c.c.Delete(c.key)
	return nil
}
