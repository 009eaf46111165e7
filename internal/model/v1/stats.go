package v1

type BaseDistribution struct {
	A float64 `json:"A"`
	T float64 `json:"T"`
	C float64 `json:"C"`
	G float64 `json:"G"`
}

type PatternDistribution struct {
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
	Diagonal   float64 `json:"diagonal"`
}

type MutantPatterns struct {
	Average      float64             `json:"average"`
	Max          int                 `json:"max"`
	Distribution PatternDistribution `json:"distribution"`
}

type Performance struct {
	FastestMs float64 `json:"fastest_ms"`
	SlowestMs float64 `json:"slowest_ms"`
	AverageMs float64 `json:"average_ms"`
}

type StatsView struct {
	CountMutantDNA   int64            `json:"count_mutant_dna"`
	CountHumanDNA    int64            `json:"count_human_dna"`
	Ratio            float64          `json:"ratio"`
	TotalSequences   int64            `json:"total_sequences"`
	BaseDistribution BaseDistribution `json:"base_distribution"`
	MutantPatterns   MutantPatterns   `json:"mutant_patterns"`
	Performance      Performance      `json:"performance"`
}
