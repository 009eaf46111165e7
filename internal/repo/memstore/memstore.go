// Package memstore is an in-process repo.Store. A single mutex serializes transactions,
// and writes staged inside a transaction are applied only when it succeeds.
package memstore

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"mutants.dev/backend/internal/model"
	"mutants.dev/backend/internal/pkg/apierr"
	"mutants.dev/backend/internal/repo"
)

var _ repo.Store = (*Store)(nil)

// partition keeps running sums of one classification, accumulated in insertion order.
type partition struct {
	count              int64
	processingTime     float64
	mutantPatterns     int64
	horizontalPatterns int64
	verticalPatterns   int64
	diagonalPatterns   int64
	countA             int64
	countC             int64
	countG             int64
	countT             int64
}

func (p partition) add(seq *model.DNASequence) partition {
	p.count++
	p.processingTime += seq.ProcessingTime
	p.mutantPatterns += int64(seq.MutantPatterns)
	p.horizontalPatterns += int64(seq.HorizontalPatterns)
	p.verticalPatterns += int64(seq.VerticalPatterns)
	p.diagonalPatterns += int64(seq.DiagonalPatterns)
	p.countA += int64(seq.CountA)
	p.countC += int64(seq.CountC)
	p.countG += int64(seq.CountG)
	p.countT += int64(seq.CountT)
	return p
}

func (p partition) aggregate(isMutant bool) *model.PartitionAggregate {
	n := float64(p.count)
	mean := func(sum float64) null.Float {
		return null.FloatFrom(sum / n)
	}
	return &model.PartitionAggregate{
		IsMutant:              isMutant,
		Count:                 p.count,
		AvgProcessingTime:     mean(p.processingTime),
		AvgMutantPatterns:     mean(float64(p.mutantPatterns)),
		AvgHorizontalPatterns: mean(float64(p.horizontalPatterns)),
		AvgVerticalPatterns:   mean(float64(p.verticalPatterns)),
		AvgDiagonalPatterns:   mean(float64(p.diagonalPatterns)),
		AvgBaseA:              mean(float64(p.countA)),
		AvgBaseC:              mean(float64(p.countC)),
		AvgBaseG:              mean(float64(p.countG)),
		AvgBaseT:              mean(float64(p.countT)),
	}
}

type extremes struct {
	set               bool
	fastestProcessing float64
	slowestProcessing float64
	maxMutantPatterns int
}

func (e extremes) add(seq *model.DNASequence) extremes {
	if !e.set {
		return extremes{
			set:               true,
			fastestProcessing: seq.ProcessingTime,
			slowestProcessing: seq.ProcessingTime,
			maxMutantPatterns: seq.MutantPatterns,
		}
	}
	e.fastestProcessing = math.Min(e.fastestProcessing, seq.ProcessingTime)
	e.slowestProcessing = math.Max(e.slowestProcessing, seq.ProcessingTime)
	e.maxMutantPatterns = lo.Max([]int{e.maxMutantPatterns, seq.MutantPatterns})
	return e
}

type Store struct {
	mu sync.Mutex

	nextID     int64
	hashes     map[string]struct{}
	partitions map[bool]partition
	extremes   extremes
	stats      *model.Statistics
}

func New() *Store {
	return &Store{
		hashes:     make(map[string]struct{}),
		partitions: make(map[bool]partition),
	}
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx repo.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tx.commit()
	return nil
}

func (s *Store) GetStatistics(ctx context.Context) (*model.Statistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stats == nil {
		return nil, apierr.ErrNotFound
	}
	stats := *s.stats
	return &stats, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// memTx reads committed state merged with its own staged writes. It is only used while
// the store mutex is held.
type memTx struct {
	store *Store

	seq   *model.DNASequence
	stats *model.Statistics
}

func (t *memTx) InsertSequence(ctx context.Context, seq *model.DNASequence) error {
	if _, ok := t.store.hashes[seq.Hash]; ok {
		return repo.ErrDuplicateHash
	}
	if t.seq != nil && t.seq.Hash == seq.Hash {
		return repo.ErrDuplicateHash
	}
	staged := *seq
	staged.ID = t.store.nextID + 1
	if staged.CreatedAt.IsZero() {
		staged.CreatedAt = time.Now()
	}
	t.seq = &staged
	return nil
}

func (t *memTx) LockStatistics(ctx context.Context) (*model.Statistics, error) {
	if t.stats != nil {
		stats := *t.stats
		return &stats, nil
	}
	if t.store.stats == nil {
		t.stats = model.NewStatistics()
		stats := *t.stats
		return &stats, nil
	}
	stats := *t.store.stats
	return &stats, nil
}

func (t *memTx) partitions() map[bool]partition {
	merged := make(map[bool]partition, 2)
	for k, v := range t.store.partitions {
		merged[k] = v
	}
	if t.seq != nil {
		merged[t.seq.IsMutant] = merged[t.seq.IsMutant].add(t.seq)
	}
	return merged
}

func (t *memTx) CalcPartitionAggregates(ctx context.Context) ([]*model.PartitionAggregate, error) {
	results := make([]*model.PartitionAggregate, 0, 2)
	merged := t.partitions()
	for _, isMutant := range []bool{false, true} {
		p, ok := merged[isMutant]
		if !ok || p.count == 0 {
			continue
		}
		results = append(results, p.aggregate(isMutant))
	}
	return results, nil
}

func (t *memTx) CalcExtremes(ctx context.Context) (*model.SequenceExtremes, error) {
	e := t.store.extremes
	if t.seq != nil {
		e = e.add(t.seq)
	}
	if !e.set {
		return &model.SequenceExtremes{}, nil
	}
	return &model.SequenceExtremes{
		FastestProcessing: null.FloatFrom(e.fastestProcessing),
		SlowestProcessing: null.FloatFrom(e.slowestProcessing),
		MaxMutantPatterns: null.IntFrom(int64(e.maxMutantPatterns)),
	}, nil
}

func (t *memTx) UpdateStatistics(ctx context.Context, stats *model.Statistics) error {
	staged := *stats
	t.stats = &staged
	return nil
}

func (t *memTx) commit() {
	s := t.store
	if t.seq != nil {
		s.nextID = t.seq.ID
		s.hashes[t.seq.Hash] = struct{}{}
		s.partitions = t.partitions()
		s.extremes = s.extremes.add(t.seq)
	}
	if t.stats != nil {
		s.stats = t.stats
	}
}
