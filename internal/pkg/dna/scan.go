package dna

import "time"

type sweep struct {
	direction      Direction
	rowDelta       int
	colDelta       int
	rowFrom, rowTo func(n int) int
	colFrom, colTo func(n int) int
}

func zero(int) int { return 0 }

func full(n int) int { return n }

func bounded(n int) int { return n - SequenceLength + 1 }

func fromLast(int) int { return SequenceLength - 1 }

// sweeps enumerates, per direction, the half-open ranges of start cells whose run of
// SequenceLength cells stays inside the grid.
var sweeps = []sweep{
	{DirectionHorizontal, 0, 1, zero, full, zero, bounded},
	{DirectionVertical, 1, 0, zero, bounded, zero, full},
	{DirectionDiagonal, 1, 1, zero, bounded, zero, bounded},
	{DirectionDiagonalInverse, 1, -1, zero, bounded, fromLast, full},
}

// Scan counts every aligned run in grid. It never stops early: Patterns.Total is
// always the full count, so callers may rely on it for statistics.
func Scan(grid Grid) *ScanResult {
	start := time.Now()

	result := &ScanResult{
		Findings: make([]Finding, 0),
	}
	n := grid.Size()

	for _, s := range sweeps {
		for row := s.rowFrom(n); row < s.rowTo(n); row++ {
			for col := s.colFrom(n); col < s.colTo(n); col++ {
				if !aligned(grid, row, col, s.rowDelta, s.colDelta) {
					continue
				}
				result.Patterns.add(s.direction)
				result.Findings = append(result.Findings, Finding{
					Row:       row,
					Col:       col,
					Direction: s.direction,
				})
			}
		}
	}

	result.IsMutant = result.Patterns.Total >= MutantThreshold
	result.ElapsedTimeMs = float64(time.Since(start)) / float64(time.Millisecond)
	return result
}

func aligned(grid Grid, row, col, rowDelta, colDelta int) bool {
	base := grid[row][col]
	if !isBase(base) {
		return false
	}
	for i := 1; i < SequenceLength; i++ {
		if grid[row+rowDelta*i][col+colDelta*i] != base {
			return false
		}
	}
	return true
}
