package summarywkr

import (
	"time"

	"mutants.dev/backend/internal/pkg/observability"
)

func observeRecompute(worker string, f func() error) error {
	start := time.Now()
	defer func() {
		dur := time.Since(start)
		observability.WorkerRecomputeDuration.WithLabelValues(worker).Set(dur.Seconds())
	}()
	return f()
}
