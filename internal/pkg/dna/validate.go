package dna

import (
	"fmt"
	"strings"
)

type ErrorKind string

const (
	KindEmptyInput      ErrorKind = "EMPTY_INPUT"
	KindNotSquare       ErrorKind = "NOT_SQUARE"
	KindInvalidAlphabet ErrorKind = "INVALID_ALPHABET"
	KindTooSmall        ErrorKind = "TOO_SMALL"
	KindTooLarge        ErrorKind = "TOO_LARGE"
)

var (
	ErrEmptyInput      = &ValidationError{Kind: KindEmptyInput, Row: -1, Col: -1}
	ErrNotSquare       = &ValidationError{Kind: KindNotSquare, Row: -1, Col: -1}
	ErrInvalidAlphabet = &ValidationError{Kind: KindInvalidAlphabet, Row: -1, Col: -1}
	ErrTooSmall        = &ValidationError{Kind: KindTooSmall, Row: -1, Col: -1}
	ErrTooLarge        = &ValidationError{Kind: KindTooLarge, Row: -1, Col: -1}
)

// ValidationError describes why a grid was rejected. Row and Col are -1 when the
// error does not point at a specific cell.
type ValidationError struct {
	Kind   ErrorKind
	Row    int
	Col    int
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return "invalid dna sequence: " + strings.ToLower(strings.ReplaceAll(string(e.Kind), "_", " "))
	}
	return "invalid dna sequence: " + e.Detail
}

// Is matches any ValidationError of the same kind, so callers can use errors.Is
// against the exported sentinels.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

// Validate checks that rows form an N×N grid over the A/T/C/G alphabet with
// MinGridSize <= N <= maxSize. A maxSize <= 0 disables the upper bound.
func Validate(rows []string, maxSize int) (Grid, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if maxSize > 0 && n > maxSize {
		return nil, &ValidationError{
			Kind: KindTooLarge, Row: -1, Col: -1,
			Detail: fmt.Sprintf("grid has %d rows; at most %d are accepted", n, maxSize),
		}
	}

	for i, row := range rows {
		if len(row) != n {
			return nil, &ValidationError{
				Kind: KindNotSquare, Row: i, Col: -1,
				Detail: fmt.Sprintf("row %d has length %d; expected %d", i, len(row), n),
			}
		}
		for j := 0; j < len(row); j++ {
			if !isBase(row[j]) {
				return nil, &ValidationError{
					Kind: KindInvalidAlphabet, Row: i, Col: j,
					Detail: fmt.Sprintf("invalid base %q at row %d, col %d; allowed: A T C G", row[j], i, j),
				}
			}
		}
	}

	if n < MinGridSize {
		return nil, &ValidationError{
			Kind: KindTooSmall, Row: -1, Col: -1,
			Detail: fmt.Sprintf("grid is %dx%d; at least %dx%d is required", n, n, MinGridSize, MinGridSize),
		}
	}

	grid := make(Grid, n)
	copy(grid, rows)
	return grid, nil
}

func isBase(b byte) bool {
	switch b {
	case 'A', 'T', 'C', 'G':
		return true
	}
	return false
}
