// Package testentry starts the full application graph for tests, on the memory
// storage driver and without external infrastructure.
package testentry

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"mutants.dev/backend/internal/app"
	"mutants.dev/backend/internal/app/appconfig"
	"mutants.dev/backend/internal/app/appcontext"
)

// Config returns a configuration that needs neither Postgres, Redis nor NATS.
func Config() *appconfig.Config {
	return &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			ServiceAddress:            "localhost:0",
			GlobalPrefix:              "/api/v1",
			TrustedProxies:            []string{"127.0.0.1"},
			StorageDriver:             appconfig.StorageDriverMemory,
			MaxGridSize:               1000,
			StatsCacheTTL:             time.Second * 30,
			HTTPServerShutdownTimeout: time.Second,
			RateLimitWindow:           time.Minute,
			WorkerInterval:            time.Minute,
			WorkerTimeout:             time.Second,
		},
		AppContext: appcontext.Declare(appcontext.EnvServer),
	}
}

// Populate starts the application built from conf and fills targets from its graph.
// The application is stopped when the test finishes.
func Populate(t testing.TB, conf *appconfig.Config, targets ...any) {
	t.Helper()

	opts := app.OptionsWith(conf,
		fx.Populate(targets...),
		// for testing, logger is too annoying. therefore, we route it to the test log
		fx.Invoke(func() {
			log.Logger = log.Logger.Output(zerolog.NewTestWriter(t))
		}),
	)

	fxApp := fxtest.New(t, opts...)
	fxApp.RequireStart()
	t.Cleanup(fxApp.RequireStop)
}
