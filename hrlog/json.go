package hrlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// ReadFile loads a JSON heart-rate log from disk.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes decodes an in-memory log into records. Two layouts are
// accepted: a single JSON array of record objects (the Polar H10 logger
// format) and JSONL with one record per line (the streaming capture
// format). Entries keep their input order. Unknown keys are ignored;
// malformed JSON is a hard error.
func ParseBytes(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var records []Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("parse log JSON: %w", err)
		}
		return records, nil
	}
	return parseLines(trimmed)
}

func parseLines(data []byte) ([]Record, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, 16*1024*1024)

	records := make([]Record, 0, 1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan log lines: %w", err)
	}
	return records, nil
}
