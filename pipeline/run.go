package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	breath "github.com/rcarcasses/challenge-biosignal"
	"github.com/rcarcasses/challenge-biosignal/hrlog"
)

// Run executes the full breath_analyze pipeline: load the heart-rate log,
// estimate the breathing-rate series, and write the series artifact plus a
// JSON summary into the output directory.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.LogPath) == "" {
		return nil, fmt.Errorf("log path is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "parquet" {
		return nil, fmt.Errorf("unsupported format %q (expected csv|parquet)", format)
	}

	loc, err := resolveLocation(opts.Timezone)
	if err != nil {
		return nil, err
	}

	// Parameter problems are rejected before any data is read.
	cfg := configFromOptions(opts)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	records, err := hrlog.ReadAny(opts.LogPath)
	if err != nil {
		return nil, fmt.Errorf("load heart-rate log: %w", err)
	}

	analysis, err := breath.Analyze(records, cfg)
	if err != nil {
		return nil, err
	}
	analysis.Notes = breath.BuildSessionNotes(analysis, loc)

	if err := ensureOutputDir(opts.OutDir, opts.Overwrite); err != nil {
		return nil, err
	}

	seriesPath := filepath.Join(opts.OutDir, "breathing_rate."+format)
	switch format {
	case "csv":
		if err := writeRateCSV(seriesPath, analysis.Rates, loc); err != nil {
			return nil, fmt.Errorf("write breathing_rate.csv: %w", err)
		}
	case "parquet":
		if err := writeRateParquet(seriesPath, analysis.Rates, loc); err != nil {
			return nil, fmt.Errorf("write breathing_rate.parquet: %w", err)
		}
	}

	summaryPath := filepath.Join(opts.OutDir, "breath_summary.json")
	if err := writeJSON(summaryPath, analysis); err != nil {
		return nil, fmt.Errorf("write breath_summary.json: %w", err)
	}

	return &Result{
		OutputDir:   opts.OutDir,
		SeriesPath:  seriesPath,
		SummaryPath: summaryPath,
		Analysis:    analysis,
	}, nil
}

func configFromOptions(opts Options) breath.Config {
	cfg := breath.DefaultConfig()
	if opts.HeightPercentile != 0 {
		cfg.HeightPercentile = opts.HeightPercentile
	}
	if opts.MinDistance != 0 {
		cfg.MinDistance = opts.MinDistance
	}
	if opts.MinIntervalS != 0 {
		cfg.MinIntervalS = opts.MinIntervalS
	}
	if opts.MaxIntervalS != 0 {
		cfg.MaxIntervalS = opts.MaxIntervalS
	}
	return cfg
}

func resolveLocation(name string) (*time.Location, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.EqualFold(trimmed, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(trimmed)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", trimmed, err)
	}
	return loc, nil
}

func ensureOutputDir(path string, overwrite bool) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory is not empty: %s (set overwrite to allow)", path)
	}
	return nil
}

// writeRateCSV renders the series in the log-analysis schema: a wall-clock
// column in the chosen zone and the rate rounded to one decimal. The
// unrounded series lives in the JSON summary and the parquet artifact.
func writeRateCSV(path string, rates []breath.RateSample, loc *time.Location) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "bpm"}); err != nil {
		return err
	}
	for _, r := range rates {
		row := []string{
			epochTime(r.Timestamp).In(loc).Format("15:04:05"),
			strconv.FormatFloat(r.BPM, 'f', 1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func epochTime(ts float64) time.Time {
	return time.UnixMilli(int64(math.Round(ts * 1000.0)))
}
