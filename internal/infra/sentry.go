package infra

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"mutants.dev/backend/internal/app/appconfig"
	"mutants.dev/backend/internal/pkg/bininfo"
)

const sentryFlushTimeout = 2 * time.Second

// SentryInit initializes sentry with side-effect
func SentryInit(conf *appconfig.Config, lc fx.Lifecycle) error {
	if conf.SentryDSN == "" {
		log.Warn().
			Str("evt.name", "infra.sentry.disabled").
			Msg("Sentry is disabled due to missing DSN.")
		return nil
	}

	log.Info().
		Str("evt.name", "infra.sentry.init").
		Msg("Initializing Sentry...")

	env := "production"
	if conf.DevMode {
		env = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              conf.SentryDSN,
		Release:          "mutants-backend@" + bininfo.Version,
		Environment:      env,
		Debug:            conf.DevMode,
		AttachStacktrace: true,
		TracesSampleRate: 0.01,
	})
	if err != nil {
		return err
	}

	lc.Append(fx.StopHook(func() {
		sentry.Flush(sentryFlushTimeout)
	}))
	return nil
}
