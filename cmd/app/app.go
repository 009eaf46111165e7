package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"mutants.dev/backend/cmd/app/cli/runscript"
	"mutants.dev/backend/cmd/app/server"
	"mutants.dev/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "mutantbackend",
		Description: "Mutant DNA classification backend. Built with Go, fiber, bun and go.uber.org/fx. Uses Redis for the stats cache and NATS JetStream for classification events.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			runscript.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
