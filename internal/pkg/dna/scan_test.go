package dna

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mutantGrid = []string{"ATGCGA", "CAGTGC", "TTATGT", "AGAAGG", "CCCCTA", "TCACTG"}
	humanGrid  = []string{"ATGCGA", "CAGTGC", "TTATTT", "AGACGG", "GCGTCA", "TCACTG"}
)

func mustGrid(t *testing.T, rows []string) Grid {
	t.Helper()
	grid, err := Validate(rows, 0)
	require.NoError(t, err)
	return grid
}

func TestScanClassification(t *testing.T) {
	type testCase struct {
		name     string
		rows     []string
		mutant   bool
		patterns PatternCounts
	}

	testCases := []testCase{
		{
			name:     "reference mutant",
			rows:     mutantGrid,
			mutant:   true,
			patterns: PatternCounts{Horizontal: 1, Vertical: 1, Diagonal: 1, Total: 3},
		},
		{
			name:     "reference human",
			rows:     humanGrid,
			mutant:   false,
			patterns: PatternCounts{},
		},
		{
			name:     "single horizontal run is human",
			rows:     []string{"AAAA", "CGTC", "TCGA", "GTCA"},
			mutant:   false,
			patterns: PatternCounts{Horizontal: 1, Total: 1},
		},
		{
			name:     "runs in different directions add up",
			rows:     []string{"AAAA", "ACGT", "AGTC", "ATCG"},
			mutant:   true,
			patterns: PatternCounts{Horizontal: 1, Vertical: 1, Total: 2},
		},
		{
			name:     "anti-diagonal counts as diagonal",
			rows:     []string{"ACGT", "CGTA", "GTAC", "TACG"},
			mutant:   false,
			patterns: PatternCounts{Diagonal: 1, Total: 1},
		},
		{
			name:     "overlapping runs are counted separately",
			rows:     []string{"AAAAA", "CGTCG", "TCGAT", "GTCAC", "CATGA"},
			mutant:   true,
			patterns: PatternCounts{Horizontal: 2, Total: 2},
		},
		{
			name:     "uniform grid counts every run",
			rows:     []string{"AAAA", "AAAA", "AAAA", "AAAA"},
			mutant:   true,
			patterns: PatternCounts{Horizontal: 4, Vertical: 4, Diagonal: 2, Total: 10},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Scan(mustGrid(t, tc.rows))
			assert.Equal(t, tc.mutant, result.IsMutant)
			assert.Equal(t, tc.patterns, result.Patterns)
			assert.Len(t, result.Findings, tc.patterns.Total)
			assert.GreaterOrEqual(t, result.ElapsedTimeMs, 0.0)
		})
	}
}

func TestScanFindings(t *testing.T) {
	result := Scan(mustGrid(t, mutantGrid))

	assert.Equal(t, []Finding{
		{Row: 4, Col: 0, Direction: DirectionHorizontal},
		{Row: 0, Col: 4, Direction: DirectionVertical},
		{Row: 0, Col: 0, Direction: DirectionDiagonal},
	}, result.Findings)

	inverse := Scan(mustGrid(t, []string{"ACGT", "CGTA", "GTAC", "TACG"}))
	assert.Equal(t, []Finding{{Row: 0, Col: 3, Direction: DirectionDiagonalInverse}}, inverse.Findings)
}

func TestScanTotalIsSum(t *testing.T) {
	rows := make([]string, 12)
	for i := range rows {
		rows[i] = strings.Repeat("ACGT", 3)
	}
	result := Scan(mustGrid(t, rows))

	p := result.Patterns
	assert.Equal(t, p.Horizontal+p.Vertical+p.Diagonal, p.Total)
	// every column is constant, so each one carries N-3 vertical runs
	assert.Equal(t, 12*9, p.Vertical)
	assert.Equal(t, 0, p.Horizontal)
	assert.True(t, result.IsMutant)
}

func BenchmarkScan(b *testing.B) {
	rows := make([]string, 1000)
	for i := range rows {
		rows[i] = strings.Repeat("ACGT", 250)
	}
	grid, err := Validate(rows, 0)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Scan(grid)
	}
}
