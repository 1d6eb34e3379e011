package hrlog

import (
	"path/filepath"
	"strings"
)

// Record is one raw heart-rate-monitor log entry: a capture timestamp in
// seconds since epoch plus the RR intervals, in milliseconds between
// successive beats, reported with that entry. Records arrive in whatever
// order and quality the logger produced; sorting and cleaning happen
// downstream.
type Record struct {
	Timestamp float64   `json:"ts"`
	RR        []float64 `json:"rr"`
}

// ReadAny loads records from path, picking the decoder by extension:
// .fit files go through the FIT decoder, everything else is read as a
// JSON log.
func ReadAny(path string) ([]Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".fit") {
		return ReadFITFile(path)
	}
	return ReadFile(path)
}
