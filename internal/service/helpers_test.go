package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mutants.dev/backend/internal/app/appconfig"
	"mutants.dev/backend/internal/model"
	modelcache "mutants.dev/backend/internal/model/cache"
	"mutants.dev/backend/internal/pkg/apierr"
	"mutants.dev/backend/internal/pkg/dna"
	"mutants.dev/backend/internal/repo"
	"mutants.dev/backend/internal/repo/memstore"
)

var (
	mutantRows = []string{"ATGCGA", "CAGTGC", "TTATGT", "AGAAGG", "CCCCTA", "TCACTG"}
	humanRows  = []string{"ATGCGA", "CAGTGC", "TTATTT", "AGACGG", "GCGTCA", "TCACTG"}
)

type fixture struct {
	conf       *appconfig.Config
	store      repo.Store
	statistics *Statistics
	stats      *Stats
	mutant     *Mutant
}

func newFixture(t *testing.T, store repo.Store) *fixture {
	t.Helper()
	if store == nil {
		store = memstore.New()
	}

	conf := &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			MaxGridSize:   64,
			StatsCacheTTL: time.Minute,
		},
	}
	caches := modelcache.NewMemory()
	statistics := NewStatistics(conf, store, caches)

	return &fixture{
		conf:       conf,
		store:      store,
		statistics: statistics,
		stats:      NewStats(conf, store, caches),
		mutant:     NewMutant(conf, statistics, NewEvents(EventsParams{})),
	}
}

func grid(t *testing.T, rows []string) dna.Grid {
	t.Helper()
	g, err := dna.Validate(rows, 0)
	require.NoError(t, err)
	return g
}

func randomRows(r *rand.Rand, n int) []string {
	rows := make([]string, n)
	for i := range rows {
		row := make([]byte, n)
		for j := range row {
			row[j] = dna.Bases[r.Intn(len(dna.Bases))]
		}
		rows[i] = string(row)
	}
	return rows
}

// failingStore fails every operation with err.
type failingStore struct {
	err error
}

func (s failingStore) RunInTx(context.Context, func(context.Context, repo.Tx) error) error {
	return s.err
}

func (s failingStore) GetStatistics(context.Context) (*model.Statistics, error) {
	if s.err == nil {
		return nil, apierr.ErrNotFound
	}
	return nil, s.err
}

func (s failingStore) Ping(context.Context) error {
	return s.err
}
