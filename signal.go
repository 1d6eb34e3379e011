package breath

import (
	"sort"

	"github.com/rcarcasses/challenge-biosignal/hrlog"
)

// Sample is one cleaned point of the RR signal: the record timestamp in
// seconds since epoch and the mean RR interval of that record in
// milliseconds.
type Sample struct {
	Timestamp float64 `json:"ts"`
	RRMean    float64 `json:"rr_mean_ms"`
}

// BuildSignal collapses raw log records into the cleaned, time-ordered
// signal the peak detector runs on. Each record contributes at most one
// sample, the arithmetic mean of its RR list; records with an empty list, a
// non-finite mean (one NaN entry is enough), or a non-finite timestamp are
// dropped rather than zero-filled. The sort is stable, so records sharing a
// timestamp keep their input order.
func BuildSignal(records []hrlog.Record) []Sample {
	samples := make([]Sample, 0, len(records))
	for _, rec := range records {
		if !isFinite(rec.Timestamp) {
			continue
		}
		mean, ok := meanRR(rec.RR)
		if !ok {
			continue
		}
		samples = append(samples, Sample{Timestamp: rec.Timestamp, RRMean: mean})
	}
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Timestamp < samples[j].Timestamp
	})
	return samples
}

// Values returns the RR means of the signal as a bare slice in signal
// order.
func Values(signal []Sample) []float64 {
	values := make([]float64, len(signal))
	for i, s := range signal {
		values[i] = s.RRMean
	}
	return values
}

func meanRR(rr []float64) (float64, bool) {
	if len(rr) == 0 {
		return 0, false
	}
	total := 0.0
	for _, v := range rr {
		total += v
	}
	mean := total / float64(len(rr))
	if !isFinite(mean) {
		return 0, false
	}
	return mean, true
}
