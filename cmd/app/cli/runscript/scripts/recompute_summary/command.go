package script_recompute_summary

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"mutants.dev/backend/internal/service"
)

type CommandDeps struct {
	fx.In

	StatisticsService *service.Statistics
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "recompute_summary",
		Description: "rebuild the statistics row from every stored dna sequence",
		Action: func(ctx *cli.Context) error {
			return run(ctx, depsFn())
		},
	}
}
