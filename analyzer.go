package breath

import (
	"fmt"
	"math"

	"github.com/rcarcasses/challenge-biosignal/hrlog"
)

// Config controls the four tunable stages of the estimator.
type Config struct {
	// HeightPercentile sets the peak candidate height floor as a
	// percentile of the whole signal, exclusive bounds (0, 100).
	HeightPercentile float64 `json:"height_percentile"`
	// MinDistance is the minimum separation between accepted peaks,
	// counted in samples rather than seconds; it assumes roughly uniform
	// record spacing.
	MinDistance int `json:"min_distance"`
	// MinIntervalS and MaxIntervalS bound plausible breathing periods in
	// seconds, both inclusive.
	MinIntervalS float64 `json:"min_interval_s"`
	MaxIntervalS float64 `json:"max_interval_s"`
}

// DefaultConfig returns the detection parameters tuned for chest-strap RR
// logs with roughly one record per second.
func DefaultConfig() Config {
	return Config{
		HeightPercentile: 60,
		MinDistance:      5,
		MinIntervalS:     2.0,
		MaxIntervalS:     10.0,
	}
}

// Validate rejects parameter combinations no stage can run with. It is
// checked before any data is touched.
func (c Config) Validate() error {
	if !isFinite(c.HeightPercentile) || c.HeightPercentile <= 0 || c.HeightPercentile >= 100 {
		return fmt.Errorf("height percentile %v out of range (0, 100)", c.HeightPercentile)
	}
	if c.MinDistance < 1 {
		return fmt.Errorf("min distance %d must be at least 1 sample", c.MinDistance)
	}
	if !isFinite(c.MinIntervalS) || c.MinIntervalS <= 0 {
		return fmt.Errorf("min interval %v s must be positive", c.MinIntervalS)
	}
	if !isFinite(c.MaxIntervalS) || c.MaxIntervalS <= c.MinIntervalS {
		return fmt.Errorf("max interval %v s must exceed min interval %v s", c.MaxIntervalS, c.MinIntervalS)
	}
	return nil
}

// Analysis is the full result of one breathing-rate estimation run: the
// rate series plus the session statistics around it.
type Analysis struct {
	Config           Config       `json:"config"`
	RecordCount      int          `json:"record_count"`
	CleanSamples     int          `json:"clean_samples"`
	StartTS          float64      `json:"start_ts"`
	EndTS            float64      `json:"end_ts"`
	MeanRRMs         float64      `json:"mean_rr_ms"`
	RMSSDMs          float64      `json:"rmssd_ms"`
	PeakCount        int          `json:"peak_count"`
	IntervalCount    int          `json:"interval_count"`
	KeptIntervals    int          `json:"kept_intervals"`
	DroppedIntervals int          `json:"dropped_intervals"`
	AvgBPM           float64      `json:"avg_breaths_per_min"`
	MinBPM           float64      `json:"min_breaths_per_min"`
	MaxBPM           float64      `json:"max_breaths_per_min"`
	Rates            []RateSample `json:"rates"`
	Notes            string       `json:"notes,omitempty"`
}

// Analyze runs the whole estimation chain over raw records: normalize to a
// clean signal, detect peaks, pair and filter intervals, convert to
// breaths per minute, then aggregate session statistics. The only error is
// an invalid configuration; thin or noisy data degrades to an analysis
// with an empty rate series. The run is deterministic, and the input is
// never mutated.
func Analyze(records []hrlog.Record, cfg Config) (*Analysis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	signal := BuildSignal(records)
	values := Values(signal)

	peaks := DetectPeaks(values, cfg.HeightPercentile, cfg.MinDistance)
	intervals := PeakIntervals(signal, peaks)
	kept := FilterIntervals(intervals, cfg.MinIntervalS, cfg.MaxIntervalS)
	rates := RatesFromIntervals(kept)

	analysis := &Analysis{
		Config:           cfg,
		RecordCount:      len(records),
		CleanSamples:     len(signal),
		MeanRRMs:         average(values),
		RMSSDMs:          rmssd(values),
		PeakCount:        len(peaks),
		IntervalCount:    len(intervals),
		KeptIntervals:    len(kept),
		DroppedIntervals: len(intervals) - len(kept),
		Rates:            rates,
	}
	if len(signal) > 0 {
		analysis.StartTS = signal[0].Timestamp
		analysis.EndTS = signal[len(signal)-1].Timestamp
	}

	bpms := make([]float64, len(rates))
	for i, r := range rates {
		bpms[i] = r.BPM
	}
	analysis.AvgBPM = average(bpms)
	analysis.MinBPM = minValue(bpms)
	analysis.MaxBPM = maxValue(bpms)

	return analysis, nil
}

// rmssd is the root mean square of successive differences over the
// per-record RR means, in milliseconds. It tracks beat-to-beat
// variability, the same oscillation the peak detector rides on.
func rmssd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	count := 0
	for i := 1; i < len(values); i++ {
		if !isFinite(values[i]) || !isFinite(values[i-1]) {
			continue
		}
		d := values[i] - values[i-1]
		sum += d * d
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(count))
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	count := 0
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		total += v
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func minValue(values []float64) float64 {
	min := 0.0
	found := false
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		if !found || v < min {
			min = v
			found = true
		}
	}
	if !found {
		return 0
	}
	return min
}

func maxValue(values []float64) float64 {
	max := 0.0
	found := false
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		if !found || v > max {
			max = v
			found = true
		}
	}
	if !found {
		return 0
	}
	return max
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
