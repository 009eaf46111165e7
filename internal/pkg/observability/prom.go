package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "mutantbackend"
)

var (
	Classifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "dna", "classifications_total"),
		Help: "Number of classified dna sequences by result",
	}, []string{"result"})
	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "dna", "scan_duration_seconds"),
		Help:    "Duration of dna pattern scans in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	})
	GridSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "dna", "grid_size"),
		Help:    "Side length of classified grids",
		Buckets: prometheus.ExponentialBuckets(4, 2, 9),
	})
	RecordOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "statistics", "record_outcomes_total"),
		Help: "Outcomes of statistics record attempts",
	}, []string{"outcome"})
	EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "events", "publish_failures_total"),
		Help: "Number of classification events that failed to publish",
	}, []string{"subject"})
	WorkerRecomputeDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "recompute_duration_seconds"),
		Help: "Duration of last worker summary recompute in seconds",
	}, []string{"worker"})
)
