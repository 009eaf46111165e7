package service

import (
	"go.uber.org/fx"

	modelcache "mutants.dev/backend/internal/model/cache"
)

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		modelcache.New,
		NewStats,
		NewEvents,
		NewHealth,
		NewMutant,
		NewStatistics,
	))
}
