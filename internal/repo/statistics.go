package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"mutants.dev/backend/internal/model"
	"mutants.dev/backend/internal/repo/selector"
)

type Statistics struct {
	db  *bun.DB
	sel selector.S[model.Statistics]
}

func NewStatistics(db *bun.DB) *Statistics {
	return &Statistics{db: db, sel: selector.New[model.Statistics](db)}
}

func (r *Statistics) GetStatistics(ctx context.Context) (*model.Statistics, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", model.StatisticsID)
	})
}

func (r *Statistics) Lock(ctx context.Context, tx bun.IDB) (*model.Statistics, error) {
	_, err := tx.NewInsert().
		Model(model.NewStatistics()).
		On("CONFLICT (id) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create statistics")
	}

	var stats model.Statistics
	err = tx.NewSelect().
		Model(&stats).
		Where("id = ?", model.StatisticsID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to lock statistics")
	}

	return &stats, nil
}

func (r *Statistics) Update(ctx context.Context, tx bun.IDB, stats *model.Statistics) error {
	_, err := tx.NewUpdate().
		Model(stats).
		WherePK().
		Exec(ctx)
	return errors.Wrap(err, "failed to update statistics")
}
