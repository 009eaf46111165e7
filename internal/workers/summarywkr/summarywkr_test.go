package summarywkr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mutants.dev/backend/internal/app/appconfig"
	modelcache "mutants.dev/backend/internal/model/cache"
	"mutants.dev/backend/internal/pkg/dna"
	"mutants.dev/backend/internal/repo/memstore"
	"mutants.dev/backend/internal/service"
)

func TestWorkerBatch(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	statistics := service.NewStatistics(&appconfig.Config{}, store, modelcache.NewMemory())

	w := &Worker{
		interval: time.Hour,
		timeout:  time.Second,
		WorkerDeps: WorkerDeps{
			StatisticsService: statistics,
		},
	}

	// recomputing an empty store creates the zeroed row
	require.NoError(t, w.batch(ctx))
	stats, err := store.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalSequences)

	grid, err := dna.Validate([]string{"ATGCGA", "CAGTGC", "TTATGT", "AGAAGG", "CCCCTA", "TCACTG"}, 0)
	require.NoError(t, err)
	_, err = statistics.Record(ctx, grid, dna.Scan(grid))
	require.NoError(t, err)

	require.NoError(t, w.batch(ctx))
	stats, err = store.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.MutantCount)
	assert.Equal(t, 1.0, stats.Ratio)
}

func TestWorkerStops(t *testing.T) {
	store := memstore.New()
	w := &Worker{
		interval: time.Millisecond,
		timeout:  time.Second,
		WorkerDeps: WorkerDeps{
			StatisticsService: service.NewStatistics(&appconfig.Config{}, store, modelcache.NewMemory()),
		},
	}

	cancel := w.do()
	assert.Eventually(t, func() bool {
		_, err := store.GetStatistics(context.Background())
		return err == nil && w.Count() > 0
	}, time.Second, time.Millisecond*5)
	cancel()

	stopped := w.Count()
	time.Sleep(time.Millisecond * 20)
	assert.LessOrEqual(t, w.Count(), stopped+1)
}
