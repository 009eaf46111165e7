package repo

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"mutants.dev/backend/internal/model"
)

var (
	ddlColumnRe       = regexp.MustCompile(`"(\w+)" [A-Z]`)
	aggregateColumnRe = regexp.MustCompile(`(?:AVG|MIN|MAX)\((\w+)\)`)
)

func createTableColumns(t *testing.T, db *bun.DB, m any) map[string]bool {
	t.Helper()

	b, err := db.NewCreateTable().Model(m).AppendQuery(db.Formatter(), nil)
	require.NoError(t, err)

	columns := make(map[string]bool)
	for _, match := range ddlColumnRe.FindAllStringSubmatch(string(b), -1) {
		columns[match[1]] = true
	}
	return columns
}

func TestMigrateCreatesSchema(t *testing.T) {
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "dna_sequences" .*"count_a" BIGINT NOT NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "statistics" .*"avg_base_a" DOUBLE PRECISION NOT NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS "dna_sequences_is_mutant_idx"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregateQueriesMatchSchema(t *testing.T) {
	var (
		mu       sync.Mutex
		executed []string
	)
	sqldb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherFunc(func(_, actual string) error {
		mu.Lock()
		executed = append(executed, actual)
		mu.Unlock()
		return nil
	})))
	require.NoError(t, err)
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})

	sequenceColumns := createTableColumns(t, db, (*model.DNASequence)(nil))
	statisticsColumns := createTableColumns(t, db, (*model.Statistics)(nil))

	mock.ExpectQuery("aggregates").WillReturnRows(sqlmock.NewRows([]string{"is_mutant", "count"}))
	mock.ExpectQuery("extremes").WillReturnRows(sqlmock.NewRows([]string{"fastest_processing"}).AddRow(nil))

	sequences := NewDNASequence(db)
	_, err = sequences.CalcPartitionAggregates(context.Background(), db)
	require.NoError(t, err)
	_, err = sequences.CalcExtremes(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, executed, 2)

	for _, query := range executed {
		matches := aggregateColumnRe.FindAllStringSubmatch(query, -1)
		require.NotEmpty(t, matches, query)
		for _, match := range matches {
			assert.True(t, sequenceColumns[match[1]], "dna_sequences has no column %q", match[1])
		}
	}

	// every aggregate alias lands in a statistics column of the same name
	for _, alias := range []string{
		"avg_processing_time", "avg_mutant_patterns", "avg_horizontal_patterns",
		"avg_vertical_patterns", "avg_diagonal_patterns",
		"avg_base_a", "avg_base_c", "avg_base_g", "avg_base_t",
		"fastest_processing", "slowest_processing", "max_mutant_patterns",
	} {
		assert.True(t, statisticsColumns[alias], "statistics has no column %q", alias)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
