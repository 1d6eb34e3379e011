package stream

import (
	"fmt"

	breath "github.com/rcarcasses/challenge-biosignal"
	"github.com/rcarcasses/challenge-biosignal/hrlog"
)

const defaultWindowRecords = 180

// Windower re-runs the breathing-rate estimator over a sliding window of
// the most recent records and emits only rate samples it has not emitted
// before. Bounding the window keeps the percentile height floor tracking
// the recent signal instead of the whole session.
type Windower struct {
	cfg        breath.Config
	maxRecords int

	records     []hrlog.Record
	lastEmitted float64
}

// NewWindower validates the configuration up front so Flush never fails.
// maxRecords below the three-sample detector minimum falls back to the
// default window.
func NewWindower(cfg breath.Config, maxRecords int) (*Windower, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if maxRecords < 3 {
		maxRecords = defaultWindowRecords
	}
	return &Windower{cfg: cfg, maxRecords: maxRecords}, nil
}

// Add appends a record to the window, evicting the oldest when full.
func (w *Windower) Add(rec hrlog.Record) {
	w.records = append(w.records, rec)
	if len(w.records) > w.maxRecords {
		w.records = w.records[len(w.records)-w.maxRecords:]
	}
}

// Len reports how many records the window currently holds.
func (w *Windower) Len() int {
	return len(w.records)
}

// Flush analyzes the current window and returns the rate samples newer
// than anything returned before. Flushing again without new data yields
// nothing. Samples that land at or before the emission watermark, which
// can happen when records arrive out of order, are dropped rather than
// re-emitted.
func (w *Windower) Flush() []breath.RateSample {
	if len(w.records) == 0 {
		return nil
	}
	analysis, err := breath.Analyze(w.records, w.cfg)
	if err != nil {
		// Config was validated at construction.
		return nil
	}

	fresh := make([]breath.RateSample, 0, len(analysis.Rates))
	for _, r := range analysis.Rates {
		if r.Timestamp <= w.lastEmitted {
			continue
		}
		fresh = append(fresh, r)
	}
	if len(fresh) > 0 {
		w.lastEmitted = fresh[len(fresh)-1].Timestamp
	}
	return fresh
}
