package dna

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	type testCase struct {
		name   string
		rows   []string
		max    int
		expect error
	}

	testCases := []testCase{
		{"empty", []string{}, 0, ErrEmptyInput},
		{"nil", nil, 0, ErrEmptyInput},
		{"3x3 is too small", []string{"ATG", "CAG", "TTA"}, 0, ErrTooSmall},
		{"ragged row", []string{"ATGC", "CAG", "TTAT", "AGAA"}, 0, ErrNotSquare},
		{"rows longer than row count", []string{"ATGC", "ATGC", "ATGC"}, 0, ErrNotSquare},
		{"invalid base", []string{"ATGC", "CAGX", "TTAT", "AGAA"}, 0, ErrInvalidAlphabet},
		{"lowercase is rejected", []string{"atgc", "cagt", "ttat", "agaa"}, 0, ErrInvalidAlphabet},
		{"over max size", []string{"ATGCG", "CAGTG", "TTATG", "AGAAG", "CCCCT"}, 4, ErrTooLarge},
		{"valid 4x4", []string{"ATGC", "CAGT", "TTAT", "AGAA"}, 0, nil},
		{"valid at max size", []string{"ATGC", "CAGT", "TTAT", "AGAA"}, 4, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			grid, err := Validate(tc.rows, tc.max)
			if tc.expect == nil {
				require.NoError(t, err)
				assert.Equal(t, Grid(tc.rows), grid)
				return
			}
			assert.Nil(t, grid)
			assert.ErrorIs(t, err, tc.expect)
		})
	}
}

func TestValidateReportsPosition(t *testing.T) {
	_, err := Validate([]string{"ATGC", "CAGT", "TTNT", "AGAA"}, 0)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, KindInvalidAlphabet, verr.Kind)
	assert.Equal(t, 2, verr.Row)
	assert.Equal(t, 2, verr.Col)
	assert.Contains(t, verr.Error(), "row 2, col 2")
}

func TestValidateCopiesInput(t *testing.T) {
	rows := []string{"ATGC", "CAGT", "TTAT", "AGAA"}
	grid, err := Validate(rows, 0)
	require.NoError(t, err)

	rows[0] = "CCCC"
	assert.Equal(t, "ATGC", grid[0])
}

func TestValidationErrorKindsDiffer(t *testing.T) {
	assert.False(t, errors.Is(ErrNotSquare, ErrEmptyInput))
	assert.Equal(t, "invalid dna sequence: empty input", ErrEmptyInput.Error())
}
