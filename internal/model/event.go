package model

import (
	"time"

	"mutants.dev/backend/internal/pkg/dna"
)

type ClassificationEvent struct {
	Hash             string            `json:"hash"`
	IsMutant         bool              `json:"isMutant"`
	Size             int               `json:"size"`
	Patterns         dna.PatternCounts `json:"patterns"`
	Bases            dna.BaseCounts    `json:"bases"`
	ProcessingTimeMs float64           `json:"processingTimeMs"`
	Duplicate        bool              `json:"duplicate"`
	ClassifiedAt     time.Time         `json:"classifiedAt"`
}
