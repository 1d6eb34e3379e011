package hrlog

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/tormoder/fit"
)

// ReadFITFile loads RR intervals from a FIT activity file. Chest straps
// with beat-to-beat logging enabled write the RR train into hrv messages.
func ReadFITFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()

	decoded, err := fit.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}
	return RecordsFromActivity(activity)
}

// RecordsFromActivity converts the hrv messages of a decoded activity into
// log records. hrv messages carry RR durations but no wall clock, so each
// record is stamped with a clock rebuilt from the session start time and
// advanced by every RR interval seen so far. Invalid RR slots (0xFFFF) are
// skipped.
func RecordsFromActivity(activity *fit.ActivityFile) ([]Record, error) {
	if activity == nil {
		return nil, fmt.Errorf("nil activity file")
	}
	if len(activity.Hrvs) == 0 {
		return nil, fmt.Errorf("activity file has no hrv messages")
	}

	start := activityStart(activity)
	if start.IsZero() {
		return nil, fmt.Errorf("activity file has no usable start time")
	}

	clock := float64(start.UnixMilli()) / 1000.0
	records := make([]Record, 0, len(activity.Hrvs))
	for _, hrv := range activity.Hrvs {
		if hrv == nil {
			continue
		}
		rr := make([]float64, 0, len(hrv.Time))
		for _, v := range hrv.Time {
			if v == math.MaxUint16 {
				continue
			}
			rr = append(rr, float64(v))
		}
		if len(rr) == 0 {
			continue
		}
		records = append(records, Record{Timestamp: clock, RR: rr})
		for _, ms := range rr {
			clock += ms / 1000.0
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("activity file has no usable hrv samples")
	}
	return records, nil
}

func activityStart(activity *fit.ActivityFile) time.Time {
	for _, session := range activity.Sessions {
		if session == nil {
			continue
		}
		if ts := validTimeOrZero(session.StartTime); !ts.IsZero() {
			return ts
		}
	}
	for _, rec := range activity.Records {
		if rec == nil {
			continue
		}
		if ts := validTimeOrZero(rec.Timestamp); !ts.IsZero() {
			return ts
		}
	}
	return time.Time{}
}

func validTimeOrZero(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t
}
