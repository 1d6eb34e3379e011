package breath

import (
	"strings"
	"testing"
	"time"

	"github.com/rcarcasses/challenge-biosignal/hrlog"
)

func TestBuildSessionNotesFullSession(t *testing.T) {
	analysis, err := Analyze(sinusoidRecords(20, 1700000000), sinusoidConfig())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	notes := BuildSessionNotes(analysis, time.UTC)
	wanted := []string{
		"Breathing-rate session",
		"Start 2023-11-14 22:13:20 | End 22:13:39 | Span 19s",
		"Records 20 | Clean samples 20 | Mean RR 800 ms",
		"Peaks 5 | Intervals 4 (kept 4, dropped 0)",
		"Breathing rate 15.0 avg (15.0-15.0) breaths/min over 4 samples",
	}
	for _, w := range wanted {
		if !strings.Contains(notes, w) {
			t.Fatalf("notes missing %q:\n%s", w, notes)
		}
	}
}

func TestBuildSessionNotesEmptySession(t *testing.T) {
	analysis, err := Analyze(nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	notes := BuildSessionNotes(analysis, time.UTC)
	if !strings.Contains(notes, "No usable RR data") {
		t.Fatalf("notes missing empty-log explanation:\n%s", notes)
	}
	if strings.Contains(notes, "Start ") {
		t.Fatalf("notes should not render a time range without samples:\n%s", notes)
	}
}

func TestBuildSessionNotesTooFewPeaks(t *testing.T) {
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

	notes := BuildSessionNotes(analysis, time.UTC)
	if !strings.Contains(notes, "Too few peaks cleared the 60th-percentile height floor") {
		t.Fatalf("notes missing peak-floor explanation:\n%s", notes)
	}
}

func TestBuildSessionNotesAllIntervalsDropped(t *testing.T) {
	// Crests every second on half-second spacing: plenty of peaks, every
	// interval too short for the breathing band.
	records := make([]hrlog.Record, 0, 10)
	for i := 0; i < 10; i++ {
		v := 800.0
		if i%2 == 1 {
			v = 850.0
		}
		records = append(records, hrlog.Record{
			Timestamp: 0.5 * float64(i),
			RR:        []float64{v},
		})
	}
	cfg := DefaultConfig()
	cfg.MinDistance = 2
	analysis, err := Analyze(records, cfg)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if analysis.PeakCount < 2 || analysis.KeptIntervals != 0 {
		t.Fatalf("fixture should drop every interval: %d peaks, %d kept",
			analysis.PeakCount, analysis.KeptIntervals)
	}

	notes := BuildSessionNotes(analysis, time.UTC)
	if !strings.Contains(notes, "Every peak interval fell outside the 2.0-10.0 s breathing band") {
		t.Fatalf("notes missing interval-band explanation:\n%s", notes)
	}
}

func TestBuildSessionNotesNilAnalysis(t *testing.T) {
	if got := BuildSessionNotes(nil, time.UTC); got != "" {
		t.Fatalf("nil analysis should produce no notes, got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0s"},
		{-5, "0s"},
		{19, "19s"},
		{75, "1m15s"},
		{3600, "1h00m00s"},
		{3725, "1h02m05s"},
	}
	for _, c := range cases {
		if got := formatDuration(c.seconds); got != c.want {
			t.Fatalf("formatDuration(%v): got %q, want %q", c.seconds, got, c.want)
		}
	}
}
