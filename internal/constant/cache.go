package constant

const (
	StatsCacheKey = "mutants:stats"

	SummaryWorkerMutexKey = "mutants:summarywkr"

	// LimiterKeyPrefix prefixes the per-client rate limiter entries kept in Redis.
	LimiterKeyPrefix = "mutants:limiter:"
)
