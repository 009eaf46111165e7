package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"mutants.dev/backend/internal/app"
	"mutants.dev/backend/internal/app/appcontext"
)

func Start(module fx.Option) {
	if err := app.New(appcontext.Declare(appcontext.EnvCLI), module).Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to start cli app")
	}
}
