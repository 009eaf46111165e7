package model

import (
	"time"

	"github.com/uptrace/bun"
)

// StatisticsID is the primary key of the one and only statistics row.
const StatisticsID = 1

type Statistics struct {
	bun.BaseModel `bun:"statistics,alias:st"`

	ID                    int       `bun:",pk" json:"id"`
	TotalSequences        int64     `bun:",notnull" json:"totalSequences"`
	MutantCount           int64     `bun:",notnull" json:"mutantCount"`
	HumanCount            int64     `bun:",notnull" json:"humanCount"`
	Ratio                 float64   `bun:",notnull" json:"ratio"`
	AvgProcessingTime     float64   `bun:",notnull" json:"avgProcessingTime"`
	AvgMutantPatterns     float64   `bun:",notnull" json:"avgMutantPatterns"`
	AvgHorizontalPatterns float64   `bun:",notnull" json:"avgHorizontalPatterns"`
	AvgVerticalPatterns   float64   `bun:",notnull" json:"avgVerticalPatterns"`
	AvgDiagonalPatterns   float64   `bun:",notnull" json:"avgDiagonalPatterns"`
	AvgBaseA              float64   `bun:"avg_base_a,notnull" json:"avgBaseA"`
	AvgBaseC              float64   `bun:"avg_base_c,notnull" json:"avgBaseC"`
	AvgBaseG              float64   `bun:"avg_base_g,notnull" json:"avgBaseG"`
	AvgBaseT              float64   `bun:"avg_base_t,notnull" json:"avgBaseT"`
	FastestProcessing     float64   `bun:",notnull" json:"fastestProcessing"`
	SlowestProcessing     float64   `bun:",notnull" json:"slowestProcessing"`
	MaxMutantPatterns     int       `bun:",notnull" json:"maxMutantPatterns"`
	UpdatedAt             time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// NewStatistics returns the zeroed row inserted before the first update.
func NewStatistics() *Statistics {
	return &Statistics{ID: StatisticsID}
}
