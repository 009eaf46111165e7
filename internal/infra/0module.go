package infra

import (
	"go.uber.org/fx"

	"mutants.dev/backend/internal/app/appconfig"
)

// Module provides only the infrastructure the configuration asks for. Consumers take
// Redis and NATS as optional dependencies.
func Module(conf *appconfig.Config) fx.Option {
	opts := []fx.Option{
		fx.Invoke(SentryInit),
		fx.Invoke(TracingInit),
	}

	if conf.StorageDriver == appconfig.StorageDriverPostgres {
		opts = append(opts, fx.Provide(Postgres))
	}

	if conf.RedisURL != "" {
		opts = append(opts, fx.Provide(Redis, RedSync))
	}

	if conf.NatsEnabled {
		opts = append(opts, fx.Provide(NATS))
	}

	return fx.Module("infra", opts...)
}
