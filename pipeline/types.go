package pipeline

import breath "github.com/rcarcasses/challenge-biosignal"

// Options configures the breath_analyze pipeline.
type Options struct {
	LogPath   string
	OutDir    string
	Format    string // csv|parquet
	Timezone  string // IANA zone for rendered clock values; empty means local
	Overwrite bool

	// Zero-valued detection parameters fall back to the defaults.
	HeightPercentile float64
	MinDistance      int
	MinIntervalS     float64
	MaxIntervalS     float64
}

// Result returns the generated artifact paths and the analysis behind
// them.
type Result struct {
	OutputDir   string
	SeriesPath  string
	SummaryPath string
	Analysis    *breath.Analysis
}
