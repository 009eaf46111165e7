package runscript

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "mutants.dev/backend/cmd/app/cli"
	script_recompute_summary "mutants.dev/backend/cmd/app/cli/runscript/scripts/recompute_summary"
)

func depsFn[T any]() func() T {
	return func() T {
		var deps T
		cliapp.Start(fx.Populate(&deps))
		return deps
	}
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "run-script",
		Description: "run maintenance go scripts",
		Subcommands: []*cli.Command{
			script_recompute_summary.Command(depsFn[script_recompute_summary.CommandDeps]()),
		},
	}
}
