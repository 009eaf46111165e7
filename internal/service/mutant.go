package service

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"mutants.dev/backend/internal/app/appconfig"
	"mutants.dev/backend/internal/model"
	"mutants.dev/backend/internal/pkg/dna"
	"mutants.dev/backend/internal/pkg/observability"
)

type Mutant struct {
	conf       *appconfig.Config
	statistics *Statistics
	events     *Events
}

func NewMutant(conf *appconfig.Config, statistics *Statistics, events *Events) *Mutant {
	return &Mutant{
		conf:       conf,
		statistics: statistics,
		events:     events,
	}
}

// Classify validates rows, scans the grid and records the outcome. Only validation errors
// are returned: a failure to persist or publish is logged and the classification stands.
func (s *Mutant) Classify(ctx context.Context, rows []string) (*dna.ScanResult, error) {
	grid, err := dna.Validate(rows, s.conf.MaxGridSize)
	if err != nil {
		return nil, err
	}

	result := dna.Scan(grid)
	observe(grid, result)

	seq, err := s.statistics.Record(ctx, grid, result)
	duplicate := errors.Is(err, ErrDuplicateSequence)
	switch {
	case err == nil:
	case duplicate:
		log.Debug().
			Str("evt.name", "mutant.record.duplicate").
			Str("hash", seq.Hash).
			Msg("dna sequence already recorded, statistics unchanged")
	default:
		log.Error().
			Err(err).
			Str("evt.name", "mutant.record.failed").
			Str("hash", seq.Hash).
			Msg("failed to record dna sequence")
		sentry.CaptureException(err)
		return result, nil
	}

	evt := &model.ClassificationEvent{
		Hash:             seq.Hash,
		IsMutant:         result.IsMutant,
		Size:             grid.Size(),
		Patterns:         result.Patterns,
		Bases:            dna.CountBases(grid),
		ProcessingTimeMs: result.ElapsedTimeMs,
		Duplicate:        duplicate,
		ClassifiedAt:     time.Now(),
	}
	if err := s.events.PublishClassified(ctx, evt); err != nil {
		log.Warn().
			Err(err).
			Str("evt.name", "mutant.event.publish_failed").
			Str("hash", seq.Hash).
			Msg("failed to publish classification event")
	}

	return result, nil
}

func observe(grid dna.Grid, result *dna.ScanResult) {
	label := "human"
	if result.IsMutant {
		label = "mutant"
	}
	observability.Classifications.WithLabelValues(label).Inc()
	observability.ScanDuration.Observe(result.ElapsedTimeMs / 1000)
	observability.GridSize.Observe(float64(grid.Size()))
}
