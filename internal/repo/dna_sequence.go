package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"mutants.dev/backend/internal/model"
)

// pgUniqueViolation is the SQLSTATE of unique_violation.
const pgUniqueViolation = "23505"

type DNASequence struct {
	db *bun.DB
}

func NewDNASequence(db *bun.DB) *DNASequence {
	return &DNASequence{db: db}
}

// Insert stores seq unless its hash is already present, in which case ErrDuplicateHash
// is returned and nothing is written.
func (r *DNASequence) Insert(ctx context.Context, tx bun.IDB, seq *model.DNASequence) error {
	res, err := tx.NewInsert().
		Model(seq).
		On("CONFLICT (hash) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateHash
		}
		return errors.Wrap(err, "failed to insert dna sequence")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return ErrDuplicateHash
	}

	return nil
}

func (r *DNASequence) CalcPartitionAggregates(ctx context.Context, tx bun.IDB) ([]*model.PartitionAggregate, error) {
	results := make([]*model.PartitionAggregate, 0, 2)
	err := tx.NewSelect().
		TableExpr("dna_sequences").
		Column("is_mutant").
		ColumnExpr("COUNT(*) AS count").
		ColumnExpr("AVG(processing_time) AS avg_processing_time").
		ColumnExpr("AVG(mutant_patterns) AS avg_mutant_patterns").
		ColumnExpr("AVG(horizontal_patterns) AS avg_horizontal_patterns").
		ColumnExpr("AVG(vertical_patterns) AS avg_vertical_patterns").
		ColumnExpr("AVG(diagonal_patterns) AS avg_diagonal_patterns").
		ColumnExpr("AVG(count_a) AS avg_base_a").
		ColumnExpr("AVG(count_c) AS avg_base_c").
		ColumnExpr("AVG(count_g) AS avg_base_g").
		ColumnExpr("AVG(count_t) AS avg_base_t").
		Group("is_mutant").
		Order("is_mutant").
		Scan(ctx, &results)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate dna sequences")
	}

	return results, nil
}

func (r *DNASequence) CalcExtremes(ctx context.Context, tx bun.IDB) (*model.SequenceExtremes, error) {
	var extremes model.SequenceExtremes
	err := tx.NewSelect().
		TableExpr("dna_sequences").
		ColumnExpr("MIN(processing_time) AS fastest_processing").
		ColumnExpr("MAX(processing_time) AS slowest_processing").
		ColumnExpr("MAX(mutant_patterns) AS max_mutant_patterns").
		Scan(ctx, &extremes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to calculate dna sequence extremes")
	}

	return &extremes, nil
}

// Count returns the number of stored sequences.
func (r *DNASequence) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*model.DNASequence)(nil)).Count(ctx)
}

// isUniqueViolation reports whether err carries the unique_violation SQLSTATE. pgdriver
// errors expose it through Field('C').
func isUniqueViolation(err error) bool {
	var pgErr interface{ Field(byte) string }
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueViolation
	}
	return false
}
