package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"mutants.dev/backend/internal/app/appconfig"
	"mutants.dev/backend/internal/model"
	modelcache "mutants.dev/backend/internal/model/cache"
	modelv1 "mutants.dev/backend/internal/model/v1"
	"mutants.dev/backend/internal/pkg/apierr"
	"mutants.dev/backend/internal/repo"
)

type Stats struct {
	conf   *appconfig.Config
	store  repo.Store
	caches *modelcache.Set
}

func NewStats(conf *appconfig.Config, store repo.Store, caches *modelcache.Set) *Stats {
	return &Stats{
		conf:   conf,
		store:  store,
		caches: caches,
	}
}

// GetStats returns the current statistics view. Before anything has been recorded
// every field of the view is zero.
func (s *Stats) GetStats(ctx context.Context) (*modelv1.StatsView, error) {
	var view modelv1.StatsView
	err := s.caches.Stats.MutexGetSet(ctx, &view, func() (modelv1.StatsView, error) {
		v, err := s.load(ctx)
		if err != nil {
			return modelv1.StatsView{}, err
		}
		return *v, nil
	}, s.conf.StatsCacheTTL)
	if err == nil {
		return &view, nil
	}

	var perr *PersistenceError
	if errors.As(err, &perr) {
		return nil, err
	}

	log.Warn().
		Err(err).
		Str("evt.name", "stats.cache.failed").
		Msg("stats cache unavailable, reading from store")
	return s.load(ctx)
}

func (s *Stats) load(ctx context.Context) (*modelv1.StatsView, error) {
	stats, err := s.store.GetStatistics(ctx)
	if errors.Is(err, apierr.ErrNotFound) {
		return &modelv1.StatsView{}, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "read stats", Err: err}
	}
	return ProjectStats(stats), nil
}

// ProjectStats maps the statistics row onto its reporting shape.
func ProjectStats(stats *model.Statistics) *modelv1.StatsView {
	return &modelv1.StatsView{
		CountMutantDNA: stats.MutantCount,
		CountHumanDNA:  stats.HumanCount,
		Ratio:          stats.Ratio,
		TotalSequences: stats.TotalSequences,
		BaseDistribution: modelv1.BaseDistribution{
			A: stats.AvgBaseA,
			T: stats.AvgBaseT,
			C: stats.AvgBaseC,
			G: stats.AvgBaseG,
		},
		MutantPatterns: modelv1.MutantPatterns{
			Average: stats.AvgMutantPatterns,
			Max:     stats.MaxMutantPatterns,
			Distribution: modelv1.PatternDistribution{
				Horizontal: stats.AvgHorizontalPatterns,
				Vertical:   stats.AvgVerticalPatterns,
				Diagonal:   stats.AvgDiagonalPatterns,
			},
		},
		Performance: modelv1.Performance{
			FastestMs: stats.FastestProcessing,
			SlowestMs: stats.SlowestProcessing,
			AverageMs: stats.AvgProcessingTime,
		},
	}
}
