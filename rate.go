package breath

// Interval is the elapsed span between two temporally consecutive accepted
// peaks.
type Interval struct {
	StartTS   float64 `json:"start_ts"`
	EndTS     float64 `json:"end_ts"`
	DurationS float64 `json:"duration_s"`
}

// RateSample is one point of the breathing-rate series. Timestamp is the
// later peak of the interval that produced it; BPM is unrounded.
type RateSample struct {
	Timestamp float64 `json:"ts"`
	BPM       float64 `json:"bpm"`
}

// PeakIntervals pairs consecutive peaks into intervals. Peak indices must
// be ascending into a time-sorted signal, as DetectPeaks returns them, so
// durations are never negative; a zero duration can still appear when the
// log repeats a timestamp and is left for the interval filter to discard.
// Fewer than two peaks yields no intervals.
func PeakIntervals(signal []Sample, peaks []int) []Interval {
	if len(peaks) < 2 {
		return nil
	}
	intervals := make([]Interval, 0, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		start := signal[peaks[i-1]].Timestamp
		end := signal[peaks[i]].Timestamp
		intervals = append(intervals, Interval{
			StartTS:   start,
			EndTS:     end,
			DurationS: end - start,
		})
	}
	return intervals
}

// FilterIntervals keeps the intervals whose duration is a plausible
// breathing period. Both bounds are inclusive; everything else is dropped
// silently, with the counts surfacing in Analysis.
func FilterIntervals(intervals []Interval, minS, maxS float64) []Interval {
	kept := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.DurationS >= minS && iv.DurationS <= maxS {
			kept = append(kept, iv)
		}
	}
	return kept
}

// RatesFromIntervals converts breathing intervals to breaths per minute,
// one sample per interval, stamped at the interval's later peak. Input
// order is preserved, so a chronological interval list yields a
// chronological series.
func RatesFromIntervals(intervals []Interval) []RateSample {
	rates := make([]RateSample, 0, len(intervals))
	for _, iv := range intervals {
		rates = append(rates, RateSample{Timestamp: iv.EndTS, BPM: 60.0 / iv.DurationS})
	}
	return rates
}
