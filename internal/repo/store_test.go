package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"mutants.dev/backend/internal/model"
	"mutants.dev/backend/internal/pkg/apierr"
	"mutants.dev/backend/internal/pkg/dna"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})

	return NewPostgresStore(db, NewDNASequence(db), NewStatistics(db)), mock
}

func sampleSequence(t *testing.T) *model.DNASequence {
	t.Helper()

	grid, err := dna.Validate([]string{"ATGCGA", "CAGTGC", "TTATGT", "AGAAGG", "CCCCTA", "TCACTG"}, 0)
	require.NoError(t, err)
	return model.NewDNASequence(grid, dna.Scan(grid))
}

var statisticsColumns = []string{
	"id", "total_sequences", "mutant_count", "human_count", "ratio",
	"avg_processing_time", "avg_mutant_patterns", "avg_horizontal_patterns",
	"avg_vertical_patterns", "avg_diagonal_patterns",
	"avg_base_a", "avg_base_c", "avg_base_g", "avg_base_t",
	"fastest_processing", "slowest_processing", "max_mutant_patterns", "updated_at",
}

func TestRunInTxCommitsRecord(t *testing.T) {
	store, mock := newMockStore(t)
	seq := sampleSequence(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "dna_sequences" .* ON CONFLICT \(hash\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "statistics" .* ON CONFLICT \(id\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .* FROM "statistics" AS "st" WHERE \(id = 1\) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(statisticsColumns).
			AddRow(int64(1), int64(0), int64(0), int64(0), 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, int64(0), time.Now()))
	mock.ExpectQuery(`SELECT "is_mutant", COUNT\(\*\) AS count, .* GROUP BY "is_mutant"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"is_mutant", "count", "avg_processing_time", "avg_mutant_patterns",
			"avg_horizontal_patterns", "avg_vertical_patterns", "avg_diagonal_patterns",
			"avg_base_a", "avg_base_c", "avg_base_g", "avg_base_t",
		}).AddRow(true, int64(1), 0.5, 3.0, 1.0, 1.0, 1.0, 9.0, 9.0, 9.0, 9.0))
	mock.ExpectQuery(`SELECT MIN\(processing_time\) AS fastest_processing`).
		WillReturnRows(sqlmock.NewRows([]string{"fastest_processing", "slowest_processing", "max_mutant_patterns"}).
			AddRow(0.5, 0.5, int64(3)))
	mock.ExpectExec(`UPDATE "statistics" AS "st" SET .* WHERE \("st"."id" = 1\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RunInTx(context.Background(), func(ctx context.Context, tx Tx) error {
		if err := tx.InsertSequence(ctx, seq); err != nil {
			return err
		}
		stats, err := tx.LockStatistics(ctx)
		if err != nil {
			return err
		}
		partitions, err := tx.CalcPartitionAggregates(ctx)
		if err != nil {
			return err
		}
		require.Len(t, partitions, 1)
		assert.True(t, partitions[0].IsMutant)
		assert.Equal(t, int64(1), partitions[0].Count)
		assert.Equal(t, 3.0, partitions[0].AvgMutantPatterns.Float64)

		extremes, err := tx.CalcExtremes(ctx)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(3), extremes.MaxMutantPatterns.Int64)

		stats.MutantCount = 1
		stats.TotalSequences = 1
		return tx.UpdateStatistics(ctx, stats)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTxDuplicateRollsBack(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "dna_sequences"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.RunInTx(context.Background(), func(ctx context.Context, tx Tx) error {
		return tx.InsertSequence(ctx, sampleSequence(t))
	})

	assert.ErrorIs(t, err, ErrDuplicateHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type fakePgError struct {
	code string
}

func (e fakePgError) Error() string { return "pg error " + e.code }

func (e fakePgError) Field(k byte) string {
	if k == 'C' {
		return e.code
	}
	return ""
}

func TestInsertUniqueViolationIsDuplicate(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "dna_sequences"`).
		WillReturnError(fakePgError{code: "23505"})
	mock.ExpectRollback()

	err := store.RunInTx(context.Background(), func(ctx context.Context, tx Tx) error {
		return tx.InsertSequence(ctx, sampleSequence(t))
	})

	assert.ErrorIs(t, err, ErrDuplicateHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTxFailureRollsBack(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "dna_sequences"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "statistics"`).
		WillReturnError(boom)
	mock.ExpectRollback()

	err := store.RunInTx(context.Background(), func(ctx context.Context, tx Tx) error {
		if err := tx.InsertSequence(ctx, sampleSequence(t)); err != nil {
			return err
		}
		_, err := tx.LockStatistics(ctx)
		return err
	})

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDuplicateHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTxBeginFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := store.RunInTx(context.Background(), func(ctx context.Context, tx Tx) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStatisticsNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .* FROM "statistics" AS "st"`).
		WillReturnRows(sqlmock.NewRows(statisticsColumns))

	stats, err := store.GetStatistics(context.Background())

	assert.Nil(t, stats)
	assert.ErrorIs(t, err, apierr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
