package cache

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"mutants.dev/backend/internal/constant"
	modelv1 "mutants.dev/backend/internal/model/v1"
	"mutants.dev/backend/internal/pkg/cache"
)

type Params struct {
	fx.In

	Redis *redis.Client `optional:"true"`
}

// Set holds the caches shared by services.
type Set struct {
	Stats cache.Cache[modelv1.StatsView]
}

// New backs every cache with Redis when a client is available so that all instances
// share the published stats view, and with process memory otherwise.
func New(p Params) *Set {
	if p.Redis == nil {
		log.Info().
			Str("evt.name", "cache.backend").
			Str("backend", "memory").
			Msg("redis is not configured, caching in process memory")
		return NewMemory()
	}

	return &Set{
		Stats: cache.NewRedis[modelv1.StatsView](p.Redis, constant.StatsCacheKey),
	}
}

func NewMemory() *Set {
	return &Set{
		Stats: cache.NewSingular[modelv1.StatsView](constant.StatsCacheKey),
	}
}
