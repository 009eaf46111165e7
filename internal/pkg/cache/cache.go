package cache

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("cache: key not found")

// Cache stores a single value of type T under a fixed key.
type Cache[T any] interface {
	Get(ctx context.Context, dest *T) error
	Set(ctx context.Context, value T, expire time.Duration) error
	// MutexGetSet gets value from cache and writes to dest, or if the key does not exist, it executes valueFunc
	// to get cache value if the key still does not exist when serially dispatched, sets value to cache and
	// writes value to dest. A value written by Set while valueFunc runs is kept, and dest
	// receives it instead of the computed one.
	MutexGetSet(ctx context.Context, dest *T, valueFunc func() (T, error), expire time.Duration) error
	Delete(ctx context.Context) error
}
