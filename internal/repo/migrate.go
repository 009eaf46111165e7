package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"mutants.dev/backend/internal/model"
)

// Migrate creates the tables and indexes used by the service when they do not exist yet.
func Migrate(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*model.DNASequence)(nil),
		(*model.Statistics)(nil),
	}
	for _, m := range models {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return errors.Wrap(err, "failed to create table")
		}
	}

	_, err := db.NewCreateIndex().
		Model((*model.DNASequence)(nil)).
		Index("dna_sequences_is_mutant_idx").
		Column("is_mutant").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to create index")
	}

	log.Info().
		Str("evt.name", "repo.migrate.done").
		Msg("database schema is up to date")

	return nil
}
