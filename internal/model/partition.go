package model

import "gopkg.in/guregu/null.v3"

// PartitionAggregate is one row of the per-classification aggregate query over dna_sequences.
// Means are null when the database returns no value for them.
type PartitionAggregate struct {
	IsMutant              bool       `bun:"is_mutant"`
	Count                 int64      `bun:"count"`
	AvgProcessingTime     null.Float `bun:"avg_processing_time"`
	AvgMutantPatterns     null.Float `bun:"avg_mutant_patterns"`
	AvgHorizontalPatterns null.Float `bun:"avg_horizontal_patterns"`
	AvgVerticalPatterns   null.Float `bun:"avg_vertical_patterns"`
	AvgDiagonalPatterns   null.Float `bun:"avg_diagonal_patterns"`
	AvgBaseA              null.Float `bun:"avg_base_a"`
	AvgBaseC              null.Float `bun:"avg_base_c"`
	AvgBaseG              null.Float `bun:"avg_base_g"`
	AvgBaseT              null.Float `bun:"avg_base_t"`
}

// SequenceExtremes holds the global extremes over dna_sequences; every field is null
// when the table is empty.
type SequenceExtremes struct {
	FastestProcessing null.Float `bun:"fastest_processing"`
	SlowestProcessing null.Float `bun:"slowest_processing"`
	MaxMutantPatterns null.Int   `bun:"max_mutant_patterns"`
}
