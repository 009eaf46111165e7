package summarywkr

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"mutants.dev/backend/internal/app/appconfig"
	"mutants.dev/backend/internal/app/appcontext"
	"mutants.dev/backend/internal/constant"
	"mutants.dev/backend/internal/service"
)

type WorkerDeps struct {
	fx.In

	StatisticsService *service.Statistics
	RedSync           *redsync.Redsync `optional:"true"`
}

// Worker periodically rebuilds the statistics row from the stored sequences.
type Worker struct {
	// count counts batches worker has completed so far
	count atomic.Int64

	// interval describes the interval in-between different batches of job running
	interval time.Duration

	// timeout describes the timeout for a single batch to run
	timeout time.Duration

	// deps
	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps, lc fx.Lifecycle) {
	if conf.AppContext.Env == appcontext.EnvCLI {
		return
	}

	if !conf.WorkerEnabled {
		log.Info().
			Str("evt.name", "worker.summary.disabled").
			Msg("summary worker is disabled")
		return
	}

	w := &Worker{
		interval:   conf.WorkerInterval,
		timeout:    conf.WorkerTimeout,
		WorkerDeps: deps,
	}

	var cancel context.CancelFunc
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			cancel = w.do()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			if err := w.batch(ctx); err != nil {
				log.Error().
					Err(err).
					Str("evt.name", "worker.summary.failed").
					Int64("count", w.count.Load()).
					Msg("worker batch failed")
			}
			w.count.Add(1)
		}
	}()

	return cancel
}

func (w *Worker) batch(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if w.RedSync != nil {
		mutex := w.RedSync.NewMutex(constant.SummaryWorkerMutexKey,
			redsync.WithExpiry(w.timeout+time.Second*5),
			redsync.WithTries(1))
		if err := mutex.LockContext(ctx); err != nil {
			log.Debug().
				Err(err).
				Str("evt.name", "worker.summary.skipped").
				Msg("another instance holds the summary worker lock, skipping batch")
			return nil
		}
		defer func() {
			if _, err := mutex.UnlockContext(context.Background()); err != nil {
				log.Warn().
					Err(err).
					Str("evt.name", "worker.summary.unlock_failed").
					Msg("failed to release summary worker lock")
			}
		}()
	}

	log.Info().
		Str("evt.name", "worker.summary.started").
		Int64("count", w.count.Load()).
		Msg("worker batch started")

	return observeRecompute("summary", func() error {
		stats, err := w.StatisticsService.Recompute(ctx)
		if err != nil {
			return err
		}
		log.Info().
			Str("evt.name", "worker.summary.finished").
			Int64("count", w.count.Load()).
			Int64("total_sequences", stats.TotalSequences).
			Msg("worker batch finished")
		return nil
	})
}

func (w *Worker) Count() int64 {
	return w.count.Load()
}
