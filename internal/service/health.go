package service

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"mutants.dev/backend/internal/repo"
)

var (
	ErrStoreNotReachable = errors.New("store not reachable")
	ErrRedisNotReachable = errors.New("redis not reachable")
	ErrNATSNotReachable  = errors.New("nats not reachable")
)

type HealthParams struct {
	fx.In

	Store repo.Store
	Redis *redis.Client `optional:"true"`
	NATS  *nats.Conn    `optional:"true"`
}

type Health struct {
	store repo.Store
	redis *redis.Client
	nats  *nats.Conn
}

func NewHealth(p HealthParams) *Health {
	return &Health{
		store: p.Store,
		redis: p.Redis,
		nats:  p.NATS,
	}
}

// Ping checks the store, and Redis and NATS when they are configured.
func (s *Health) Ping(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := s.store.Ping(ctx); err != nil {
			return errors.Wrap(ErrStoreNotReachable, err.Error())
		}
		return nil
	})

	if s.redis != nil {
		eg.Go(func() error {
			if err := s.redis.Ping(ctx).Err(); err != nil {
				return errors.Wrap(ErrRedisNotReachable, err.Error())
			}
			return nil
		})
	}

	if s.nats != nil {
		// nats pings on its own every 20 seconds (see infra/nats.go)
		eg.Go(func() error {
			status := s.nats.Status()
			if status != nats.CONNECTED && status != nats.DRAINING_PUBS && status != nats.DRAINING_SUBS {
				return errors.Wrap(ErrNATSNotReachable, status.String())
			}
			return nil
		})
	}

	return eg.Wait()
}
