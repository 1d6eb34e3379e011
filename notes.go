package breath

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// BuildSessionNotes turns an analysis into a compact human-readable
// summary. Clock values are rendered in loc; a nil loc falls back to the
// local zone.
func BuildSessionNotes(a *Analysis, loc *time.Location) string {
	if a == nil {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder

	b.WriteString("Breathing-rate session\n")
	if a.CleanSamples > 0 {
		start := epochToTime(a.StartTS).In(loc)
		end := epochToTime(a.EndTS).In(loc)
		fmt.Fprintf(
			&b,
			"Start %s | End %s | Span %s\n",
			start.Format("2006-01-02 15:04:05"),
			end.Format("15:04:05"),
			formatDuration(a.EndTS-a.StartTS),
		)
	}
	fmt.Fprintf(
		&b,
		"Records %d | Clean samples %d | Mean RR %.0f ms | RMSSD %.1f ms\n",
		a.RecordCount,
		a.CleanSamples,
		a.MeanRRMs,
		a.RMSSDMs,
	)
	fmt.Fprintf(
		&b,
		"Peaks %d | Intervals %d (kept %d, dropped %d)\n",
		a.PeakCount,
		a.IntervalCount,
		a.KeptIntervals,
		a.DroppedIntervals,
	)

	switch {
	case a.CleanSamples == 0:
		b.WriteString("No usable RR data in the log; the rate series is empty.\n")
	case a.PeakCount < 2:
		fmt.Fprintf(
			&b,
			"Too few peaks cleared the %.0fth-percentile height floor; the rate series is empty.\n",
			a.Config.HeightPercentile,
		)
	case a.KeptIntervals == 0:
		fmt.Fprintf(
			&b,
			"Every peak interval fell outside the %.1f-%.1f s breathing band; the rate series is empty.\n",
			a.Config.MinIntervalS,
			a.Config.MaxIntervalS,
		)
	default:
		fmt.Fprintf(
			&b,
			"Breathing rate %.1f avg (%.1f-%.1f) breaths/min over %d samples\n",
			a.AvgBPM,
			a.MinBPM,
			a.MaxBPM,
			len(a.Rates),
		)
	}

	return strings.TrimSpace(b.String())
}

func epochToTime(ts float64) time.Time {
	return time.UnixMilli(int64(math.Round(ts * 1000.0)))
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0s"
	}
	s := int(math.Round(seconds))
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, sec)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, sec)
	}
	return fmt.Sprintf("%ds", sec)
}
