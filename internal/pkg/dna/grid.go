// Package dna holds the pure grid logic of the service: validation, pattern scanning,
// fingerprinting and base counting. Nothing in here touches I/O.
package dna

const (
	// SequenceLength is the length of an aligned run.
	SequenceLength = 4

	// MutantThreshold is the number of aligned runs, across all directions combined,
	// at which a grid is classified as mutant.
	MutantThreshold = 2

	// MinGridSize is the smallest N accepted for an N×N grid.
	MinGridSize = SequenceLength
)

// Bases is the accepted nucleotide alphabet.
const Bases = "ATCG"

// Grid is a validated N×N nucleotide matrix. Only Validate produces one.
type Grid []string

// Size returns N.
func (g Grid) Size() int {
	return len(g)
}

type Direction string

const (
	DirectionHorizontal      Direction = "horizontal"
	DirectionVertical        Direction = "vertical"
	DirectionDiagonal        Direction = "diagonal"
	DirectionDiagonalInverse Direction = "diagonal-inverse"
)

// Finding is the starting cell of one aligned run.
type Finding struct {
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Direction Direction `json:"direction"`
}

// PatternCounts counts aligned runs per direction. Both diagonal directions share
// the Diagonal counter.
type PatternCounts struct {
	Horizontal int `json:"horizontal"`
	Vertical   int `json:"vertical"`
	Diagonal   int `json:"diagonal"`
	Total      int `json:"total"`
}

func (p *PatternCounts) add(d Direction) {
	switch d {
	case DirectionHorizontal:
		p.Horizontal++
	case DirectionVertical:
		p.Vertical++
	case DirectionDiagonal, DirectionDiagonalInverse:
		p.Diagonal++
	}
	p.Total++
}

type ScanResult struct {
	IsMutant      bool          `json:"isMutant"`
	Patterns      PatternCounts `json:"patterns"`
	Findings      []Finding     `json:"findings"`
	ElapsedTimeMs float64       `json:"elapsedTimeMs"`
}

// BaseCounts holds the number of occurrences of each base in a grid.
type BaseCounts struct {
	A int `json:"A"`
	C int `json:"C"`
	G int `json:"G"`
	T int `json:"T"`
}
