package service

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"mutants.dev/backend/internal/app/appconfig"
	"mutants.dev/backend/internal/model"
	modelcache "mutants.dev/backend/internal/model/cache"
	"mutants.dev/backend/internal/pkg/dna"
	"mutants.dev/backend/internal/pkg/observability"
	"mutants.dev/backend/internal/repo"
)

// ErrDuplicateSequence is returned by Statistics.Record when the grid has already been
// recorded. Statistics are left untouched.
var ErrDuplicateSequence = errors.New("dna sequence has already been recorded")

// PersistenceError wraps any storage failure other than a duplicate. When it is returned
// nothing has been written.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence failure during " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type Statistics struct {
	// mu orders commits with the views they publish to the stats cache
	mu sync.Mutex

	conf   *appconfig.Config
	store  repo.Store
	caches *modelcache.Set
}

func NewStatistics(conf *appconfig.Config, store repo.Store, caches *modelcache.Set) *Statistics {
	return &Statistics{
		conf:   conf,
		store:  store,
		caches: caches,
	}
}

// Record stores the scanned grid and refreshes the statistics in a single transaction.
// The returned sequence is populated even when an error is returned.
func (s *Statistics) Record(ctx context.Context, grid dna.Grid, result *dna.ScanResult) (*model.DNASequence, error) {
	seq := model.NewDNASequence(grid, result)

	s.mu.Lock()
	defer s.mu.Unlock()

	var stats *model.Statistics
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx repo.Tx) error {
		if err := tx.InsertSequence(ctx, seq); err != nil {
			return err
		}
		var err error
		stats, err = s.refresh(ctx, tx)
		return err
	})
	if errors.Is(err, repo.ErrDuplicateHash) {
		observability.RecordOutcomes.WithLabelValues("duplicate").Inc()
		return seq, ErrDuplicateSequence
	}
	if err != nil {
		observability.RecordOutcomes.WithLabelValues("error").Inc()
		return seq, &PersistenceError{Op: "record", Err: err}
	}

	observability.RecordOutcomes.WithLabelValues("recorded").Inc()
	s.publish(ctx, stats)
	return seq, nil
}

// Recompute rebuilds the statistics from every stored sequence without inserting anything.
func (s *Statistics) Recompute(ctx context.Context) (*model.Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats *model.Statistics
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx repo.Tx) error {
		var err error
		stats, err = s.refresh(ctx, tx)
		return err
	})
	if err != nil {
		return nil, &PersistenceError{Op: "recompute", Err: err}
	}

	s.publish(ctx, stats)
	return stats, nil
}

func (s *Statistics) refresh(ctx context.Context, tx repo.Tx) (*model.Statistics, error) {
	current, err := tx.LockStatistics(ctx)
	if err != nil {
		return nil, err
	}

	partitions, err := tx.CalcPartitionAggregates(ctx)
	if err != nil {
		return nil, err
	}

	extremes, err := tx.CalcExtremes(ctx)
	if err != nil {
		return nil, err
	}

	next := Summarize(partitions, extremes)
	next.ID = current.ID
	next.UpdatedAt = time.Now()

	if err := tx.UpdateStatistics(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// publish replaces the cached stats view with the one just committed.
func (s *Statistics) publish(ctx context.Context, stats *model.Statistics) {
	if err := s.caches.Stats.Set(ctx, *ProjectStats(stats), s.conf.StatsCacheTTL); err == nil {
		return
	}

	// the entry must not outlive the commit it missed
	if err := s.caches.Stats.Delete(ctx); err != nil {
		log.Warn().
			Err(err).
			Str("evt.name", "statistics.cache.publish_failed").
			Msg("failed to refresh stats cache; stale stats may be served until the entry expires")
	}
}
