package repo

import (
	"context"

	"github.com/uptrace/bun"
	"go.uber.org/fx"

	"mutants.dev/backend/internal/app/appconfig"
)

// Module provides the Postgres-backed Store. The *bun.DB itself comes from infra.
func Module() fx.Option {
	return fx.Module("repo",
		fx.Provide(
			NewDNASequence,
			NewStatistics,
			fx.Annotate(NewPostgresStore, fx.As(new(Store))),
		),
		fx.Invoke(autoMigrate),
	)
}

func autoMigrate(conf *appconfig.Config, db *bun.DB, lc fx.Lifecycle) {
	if !conf.PostgresAutoMigrate {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return Migrate(ctx, db)
		},
	})
}
