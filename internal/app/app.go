package app

import (
	"time"

	"go.uber.org/fx"

	"mutants.dev/backend/internal/app/appconfig"
	"mutants.dev/backend/internal/app/appcontext"
	"mutants.dev/backend/internal/controller"
	"mutants.dev/backend/internal/infra"
	"mutants.dev/backend/internal/pkg/logger"
	"mutants.dev/backend/internal/repo"
	"mutants.dev/backend/internal/repo/memstore"
	"mutants.dev/backend/internal/server"
	"mutants.dev/backend/internal/service"
	"mutants.dev/backend/internal/workers/summarywkr"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	return OptionsWith(conf, additionalOpts...)
}

// OptionsWith builds the application graph from an already parsed configuration.
func OptionsWith(conf *appconfig.Config, additionalOpts ...fx.Option) []fx.Option {
	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(conf),

		// Servers
		server.Module(),

		// Repositories
		storage(conf),

		// Services
		service.Module(),

		// Controllers
		controller.Module(),

		// Workers
		fx.Invoke(summarywkr.Start),

		// fx Extra Options
		// migrations and retried infrastructure pings happen during start
		fx.StartTimeout(30 * time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5 * time.Minute),
	}

	return append(baseOpts, additionalOpts...)
}

func storage(conf *appconfig.Config) fx.Option {
	if conf.StorageDriver == appconfig.StorageDriverMemory {
		return fx.Module("repo.memory",
			fx.Provide(fx.Annotate(memstore.New, fx.As(new(repo.Store)))),
		)
	}
	return repo.Module()
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
