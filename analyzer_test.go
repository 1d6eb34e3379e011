package breath

import (
	"math"
	"reflect"
	"testing"

	"github.com/rcarcasses/challenge-biosignal/hrlog"
)

// sinusoidRecords builds a clean RR oscillation with a four-second period:
// one record per second, crests on seconds 1, 5, 9, and so on. Each record
// splits its RR value across two entries so normalization has work to do.
func sinusoidRecords(n int, baseTS float64) []hrlog.Record {
	pattern := []float64{800, 850, 800, 750}
	records := make([]hrlog.Record, 0, n)
	for i := 0; i < n; i++ {
		v := pattern[i%4]
		records = append(records, hrlog.Record{
			Timestamp: baseTS + float64(i),
			RR:        []float64{v - 10, v + 10},
		})
	}
	return records
}

func sinusoidConfig() Config {
	cfg := DefaultConfig()
	// Crests sit four samples apart, so the default five-sample distance
	// would thin every other one out.
	cfg.MinDistance = 4
	return cfg
}

func TestAnalyzeSinusoidSession(t *testing.T) {
	const baseTS = 1700000000.0
	records := sinusoidRecords(20, baseTS)

	analysis, err := Analyze(records, sinusoidConfig())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if analysis.RecordCount != 20 || analysis.CleanSamples != 20 {
		t.Fatalf("unexpected counts: %d records, %d clean", analysis.RecordCount, analysis.CleanSamples)
	}
	if analysis.PeakCount != 5 {
		t.Fatalf("expected 5 peaks, got %d", analysis.PeakCount)
	}
	if analysis.IntervalCount != 4 || analysis.KeptIntervals != 4 || analysis.DroppedIntervals != 0 {
		t.Fatalf("unexpected interval counts: %d total, %d kept, %d dropped",
			analysis.IntervalCount, analysis.KeptIntervals, analysis.DroppedIntervals)
	}
	if len(analysis.Rates) != 4 {
		t.Fatalf("expected 4 rate samples, got %d", len(analysis.Rates))
	}

	for i, r := range analysis.Rates {
		if math.Abs(r.BPM-15.0) > 1e-9 {
			t.Fatalf("rate %d: got %.6f breaths/min, want 15", i, r.BPM)
		}
		wantTS := baseTS + float64(5+4*i)
		if r.Timestamp != wantTS {
			t.Fatalf("rate %d stamped at %.1f, want %.1f", i, r.Timestamp, wantTS)
		}
	}
	if math.Abs(analysis.AvgBPM-15.0) > 1e-9 {
		t.Fatalf("average rate: got %.6f, want 15", analysis.AvgBPM)
	}
	if analysis.StartTS != baseTS || analysis.EndTS != baseTS+19 {
		t.Fatalf("unexpected time range: %.1f to %.1f", analysis.StartTS, analysis.EndTS)
	}
	if math.Abs(analysis.MeanRRMs-800.0) > 1e-9 {
		t.Fatalf("mean RR: got %.6f, want 800", analysis.MeanRRMs)
	}
}

func TestAnalyzeMonotonicSessionProducesEmptySeries(t *testing.T) {
	records := make([]hrlog.Record, 0, 10)
	for i := 0; i < 10; i++ {
		records = append(records, hrlog.Record{
			Timestamp: float64(i),
			RR:        []float64{700 + 10*float64(i)},
		})
	}

	analysis, err := Analyze(records, DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if analysis.CleanSamples != 10 {
		t.Fatalf("expected 10 clean samples, got %d", analysis.CleanSamples)
	}
	if analysis.PeakCount != 0 || len(analysis.Rates) != 0 {
		t.Fatalf("monotonic signal must yield an empty series, got %d peaks and %d rates",
			analysis.PeakCount, len(analysis.Rates))
	}
	if analysis.AvgBPM != 0 || analysis.MinBPM != 0 || analysis.MaxBPM != 0 {
		t.Fatalf("rate aggregates should be zero for an empty series: %+v", analysis)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	analysis, err := Analyze(nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if analysis.RecordCount != 0 || analysis.CleanSamples != 0 || len(analysis.Rates) != 0 {
		t.Fatalf("empty input must degrade to an empty analysis: %+v", analysis)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	records := sinusoidRecords(40, 1700000000)

	first, err := Analyze(records, sinusoidConfig())
	if err != nil {
		t.Fatalf("first Analyze error: %v", err)
	}
	second, err := Analyze(records, sinusoidConfig())
	if err != nil {
		t.Fatalf("second Analyze error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated runs over the same input disagree")
	}
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	records := []hrlog.Record{
		{Timestamp: 3, RR: []float64{820}},
		{Timestamp: 1, RR: []float64{800}},
		{Timestamp: 2, RR: []float64{840}},
	}
	want := []hrlog.Record{
		{Timestamp: 3, RR: []float64{820}},
		{Timestamp: 1, RR: []float64{800}},
		{Timestamp: 2, RR: []float64{840}},
	}

	if _, err := Analyze(records, DefaultConfig()); err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("input records were reordered or rewritten: %+v", records)
	}
}

func TestAnalyzeRejectsBadConfig(t *testing.T) {
	bad := []Config{
		{HeightPercentile: 0, MinDistance: 5, MinIntervalS: 2, MaxIntervalS: 10},
		{HeightPercentile: 100, MinDistance: 5, MinIntervalS: 2, MaxIntervalS: 10},
		{HeightPercentile: 60, MinDistance: 0, MinIntervalS: 2, MaxIntervalS: 10},
		{HeightPercentile: 60, MinDistance: 5, MinIntervalS: 0, MaxIntervalS: 10},
		{HeightPercentile: 60, MinDistance: 5, MinIntervalS: 10, MaxIntervalS: 10},
		{HeightPercentile: 60, MinDistance: 5, MinIntervalS: 12, MaxIntervalS: 10},
		{HeightPercentile: math.NaN(), MinDistance: 5, MinIntervalS: 2, MaxIntervalS: 10},
	}
	for i, cfg := range bad {
		if _, err := Analyze(sinusoidRecords(20, 0), cfg); err == nil {
			t.Fatalf("config %d should have been rejected: %+v", i, cfg)
		}
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}
