package fiberstore

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis implements fiber.Storage with one Redis key per entry, so expirations are
// enforced by Redis itself.
type Redis struct {
	client *redis.Client
	prefix string
}

// Redis implements fiber.Storage
var _ fiber.Storage = &Redis{}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{
		client: client,
		prefix: prefix,
	}
}

func (r *Redis) key(key string) string {
	return r.prefix + key
}

// Get implements fiber.Storage. A missing key yields nil, nil.
func (r *Redis) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := r.client.Get(context.Background(), r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set implements fiber.Storage
func (r *Redis) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	return r.client.Set(context.Background(), r.key(key), val, exp).Err()
}

// Delete implements fiber.Storage
func (r *Redis) Delete(key string) error {
	if key == "" {
		return nil
	}
	return r.client.Del(context.Background(), r.key(key)).Err()
}

// Reset implements fiber.Storage by removing every key under the prefix.
func (r *Redis) Reset() error {
	ctx := context.Background()
	var keys []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Close implements fiber.Storage. The client is owned by infra and closed there.
func (r *Redis) Close() error {
	return nil
}
