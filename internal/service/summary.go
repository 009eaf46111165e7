package service

import (
	"math"

	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"mutants.dev/backend/internal/model"
)

// Summarize derives every statistics field from the per-classification aggregates and
// the global extremes. Averages are the mean of the mutant mean and the human mean, so
// both classifications weigh the same regardless of how many sequences each holds. A
// missing classification, or a null or NaN mean, contributes 0 and the divisor stays 2.
func Summarize(partitions []*model.PartitionAggregate, extremes *model.SequenceExtremes) *model.Statistics {
	mutant, _ := lo.Find(partitions, func(p *model.PartitionAggregate) bool { return p.IsMutant })
	human, _ := lo.Find(partitions, func(p *model.PartitionAggregate) bool { return !p.IsMutant })

	avg := func(field func(p *model.PartitionAggregate) null.Float) float64 {
		return (partitionMean(mutant, field) + partitionMean(human, field)) / 2
	}

	stats := model.NewStatistics()
	stats.MutantCount = partitionCount(mutant)
	stats.HumanCount = partitionCount(human)
	stats.TotalSequences = stats.MutantCount + stats.HumanCount
	if stats.TotalSequences > 0 {
		stats.Ratio = float64(stats.MutantCount) / float64(stats.TotalSequences)
	}

	stats.AvgProcessingTime = avg(func(p *model.PartitionAggregate) null.Float { return p.AvgProcessingTime })
	stats.AvgMutantPatterns = avg(func(p *model.PartitionAggregate) null.Float { return p.AvgMutantPatterns })
	stats.AvgHorizontalPatterns = avg(func(p *model.PartitionAggregate) null.Float { return p.AvgHorizontalPatterns })
	stats.AvgVerticalPatterns = avg(func(p *model.PartitionAggregate) null.Float { return p.AvgVerticalPatterns })
	stats.AvgDiagonalPatterns = avg(func(p *model.PartitionAggregate) null.Float { return p.AvgDiagonalPatterns })
	stats.AvgBaseA = avg(func(p *model.PartitionAggregate) null.Float { return p.AvgBaseA })
	stats.AvgBaseC = avg(func(p *model.PartitionAggregate) null.Float { return p.AvgBaseC })
	stats.AvgBaseG = avg(func(p *model.PartitionAggregate) null.Float { return p.AvgBaseG })
	stats.AvgBaseT = avg(func(p *model.PartitionAggregate) null.Float { return p.AvgBaseT })

	if extremes != nil {
		stats.FastestProcessing = finiteOrZero(extremes.FastestProcessing)
		stats.SlowestProcessing = finiteOrZero(extremes.SlowestProcessing)
		stats.MaxMutantPatterns = int(extremes.MaxMutantPatterns.ValueOrZero())
	}

	return stats
}

func partitionCount(p *model.PartitionAggregate) int64 {
	if p == nil {
		return 0
	}
	return p.Count
}

func partitionMean(p *model.PartitionAggregate, field func(p *model.PartitionAggregate) null.Float) float64 {
	if p == nil || p.Count == 0 {
		return 0
	}
	return finiteOrZero(field(p))
}

func finiteOrZero(f null.Float) float64 {
	if !f.Valid || math.IsNaN(f.Float64) || math.IsInf(f.Float64, 0) {
		return 0
	}
	return f.Float64
}
