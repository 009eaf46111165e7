package script_recompute_summary

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func run(ctx *cli.Context, deps CommandDeps) error {
	log.Info().Msg("running script")

	stats, err := deps.StatisticsService.Recompute(ctx.Context)
	if err != nil {
		return errors.Wrap(err, "failed to recompute summary")
	}

	log.Info().
		Int64("total_sequences", stats.TotalSequences).
		Int64("mutants", stats.MutantCount).
		Int64("humans", stats.HumanCount).
		Float64("ratio", stats.Ratio).
		Msg("script finished")

	return nil
}
