package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mutants.dev/backend/internal/model"
	"mutants.dev/backend/internal/pkg/dna"
)

func TestMutantClassify(t *testing.T) {
	type testCase struct {
		name    string
		rows    []string
		mutant  bool
		invalid error
	}

	testCases := []testCase{
		{name: "mutant", rows: mutantRows, mutant: true},
		{name: "human", rows: humanRows, mutant: false},
		{name: "not square", rows: []string{"ATGC", "CAG", "TTAT", "AGAA"}, invalid: dna.ErrNotSquare},
		{name: "invalid base", rows: []string{"ATGC", "CAGX", "TTAT", "AGAA"}, invalid: dna.ErrInvalidAlphabet},
		{name: "empty", rows: nil, invalid: dna.ErrEmptyInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)

			result, err := f.mutant.Classify(context.Background(), tc.rows)
			if tc.invalid != nil {
				assert.ErrorIs(t, err, tc.invalid)
				assert.Nil(t, result)

				_, err := f.store.GetStatistics(context.Background())
				assert.Error(t, err, "rejected grids must not be recorded")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.mutant, result.IsMutant)
		})
	}
}

func TestMutantClassifyRespectsMaxGridSize(t *testing.T) {
	f := newFixture(t, nil)
	f.conf.MaxGridSize = 5

	_, err := f.mutant.Classify(context.Background(), mutantRows)
	assert.ErrorIs(t, err, dna.ErrTooLarge)
}

func TestMutantClassifyDuplicateStillClassifies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	for i := 0; i < 3; i++ {
		result, err := f.mutant.Classify(ctx, mutantRows)
		require.NoError(t, err)
		assert.True(t, result.IsMutant)
	}

	stats, err := f.store.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalSequences)
}

func TestMutantClassifySurvivesPersistenceFailure(t *testing.T) {
	f := newFixture(t, failingStore{err: errors.New("connection reset")})

	result, err := f.mutant.Classify(context.Background(), humanRows)
	require.NoError(t, err)
	assert.False(t, result.IsMutant)
}

func TestEventsDisabled(t *testing.T) {
	events := NewEvents(EventsParams{})

	assert.False(t, events.Enabled())
	assert.NoError(t, events.PublishClassified(context.Background(), &model.ClassificationEvent{Hash: "abc"}))
}
