package model

import (
	"time"

	"github.com/uptrace/bun"

	"mutants.dev/backend/internal/pkg/dna"
)

type DNASequence struct {
	bun.BaseModel `bun:"dna_sequences,alias:ds"`

	ID                 int64     `bun:",pk,autoincrement" json:"id"`
	Hash               string    `bun:",unique,notnull" json:"hash"`
	Sequence           []string  `bun:",array,notnull" json:"sequence"`
	SequenceSize       int       `bun:",notnull" json:"sequenceSize"`
	IsMutant           bool      `bun:",notnull" json:"isMutant"`
	MutantPatterns     int       `bun:",notnull" json:"mutantPatterns"`
	HorizontalPatterns int       `bun:",notnull" json:"horizontalPatterns"`
	VerticalPatterns   int       `bun:",notnull" json:"verticalPatterns"`
	DiagonalPatterns   int       `bun:",notnull" json:"diagonalPatterns"`
	CountA             int       `bun:"count_a,notnull" json:"countA"`
	CountC             int       `bun:"count_c,notnull" json:"countC"`
	CountG             int       `bun:"count_g,notnull" json:"countG"`
	CountT             int       `bun:"count_t,notnull" json:"countT"`
	ProcessingTime     float64   `bun:",notnull" json:"processingTime"`
	CreatedAt          time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

// NewDNASequence builds the persisted record of a scanned grid.
func NewDNASequence(grid dna.Grid, result *dna.ScanResult) *DNASequence {
	bases := dna.CountBases(grid)
	return &DNASequence{
		Hash:               dna.Fingerprint(grid),
		Sequence:           []string(grid),
		SequenceSize:       grid.Size(),
		IsMutant:           result.IsMutant,
		MutantPatterns:     result.Patterns.Total,
		HorizontalPatterns: result.Patterns.Horizontal,
		VerticalPatterns:   result.Patterns.Vertical,
		DiagonalPatterns:   result.Patterns.Diagonal,
		CountA:             bases.A,
		CountC:             bases.C,
		CountG:             bases.G,
		CountT:             bases.T,
		ProcessingTime:     result.ElapsedTimeMs,
	}
}
