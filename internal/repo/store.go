package repo

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"mutants.dev/backend/internal/model"
)

// ErrDuplicateHash is returned by Tx.InsertSequence when a sequence with the same hash
// has already been stored.
var ErrDuplicateHash = errors.New("repo: dna sequence hash already exists")

// Tx is the unit of work handed to Store.RunInTx. Writes made through it become visible
// to other callers only if the callback returns nil.
type Tx interface {
	InsertSequence(ctx context.Context, seq *model.DNASequence) error
	// LockStatistics returns the statistics row, creating it zeroed when missing, and holds it
	// exclusively until the transaction ends.
	LockStatistics(ctx context.Context) (*model.Statistics, error)
	CalcPartitionAggregates(ctx context.Context) ([]*model.PartitionAggregate, error)
	CalcExtremes(ctx context.Context) (*model.SequenceExtremes, error)
	UpdateStatistics(ctx context.Context, stats *model.Statistics) error
}

type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	GetStatistics(ctx context.Context) (*model.Statistics, error)
	Ping(ctx context.Context) error
}

var _ Store = (*PostgresStore)(nil)

type PostgresStore struct {
	db *bun.DB

	sequences  *DNASequence
	statistics *Statistics
}

func NewPostgresStore(db *bun.DB, sequences *DNASequence, statistics *Statistics) *PostgresStore {
	return &PostgresStore{
		db:         db,
		sequences:  sequences,
		statistics: statistics,
	}
}

func (s *PostgresStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	intendedCommit := false
	defer func() {
		if !intendedCommit {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				log.Error().
					Err(err).
					Str("evt.name", "repo.tx.rollback_failed").
					Msg("failed to rollback transaction")
			}
		}
	}()

	if err := fn(ctx, &pgTx{tx: tx, sequences: s.sequences, statistics: s.statistics}); err != nil {
		return err
	}

	intendedCommit = true
	return errors.Wrap(tx.Commit(), "failed to commit transaction")
}

func (s *PostgresStore) GetStatistics(ctx context.Context) (*model.Statistics, error) {
	return s.statistics.GetStatistics(ctx)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type pgTx struct {
	tx bun.Tx

	sequences  *DNASequence
	statistics *Statistics
}

func (t *pgTx) InsertSequence(ctx context.Context, seq *model.DNASequence) error {
	return t.sequences.Insert(ctx, t.tx, seq)
}

func (t *pgTx) LockStatistics(ctx context.Context) (*model.Statistics, error) {
	return t.statistics.Lock(ctx, t.tx)
}

func (t *pgTx) CalcPartitionAggregates(ctx context.Context) ([]*model.PartitionAggregate, error) {
	return t.sequences.CalcPartitionAggregates(ctx, t.tx)
}

func (t *pgTx) CalcExtremes(ctx context.Context) (*model.SequenceExtremes, error) {
	return t.sequences.CalcExtremes(ctx, t.tx)
}

func (t *pgTx) UpdateStatistics(ctx context.Context, stats *model.Statistics) error {
	return t.statistics.Update(ctx, t.tx, stats)
}
