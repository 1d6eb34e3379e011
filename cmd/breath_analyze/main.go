package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rcarcasses/challenge-biosignal/pipeline"
)

func main() {
	var (
		logPath     = flag.String("log", "", "Path to input heart-rate log (.json, .jsonl, or .fit)")
		outDir      = flag.String("out", "", "Output directory")
		format      = flag.String("format", "csv", "Series format: csv|parquet")
		tz          = flag.String("tz", "", "IANA timezone for rendered clock values (default: local)")
		percentile  = flag.Float64("percentile", 0, "Peak height floor as a signal percentile (default 60)")
		minDistance = flag.Int("min-distance", 0, "Minimum peak separation in samples (default 5)")
		minInterval = flag.Float64("min-interval", 0, "Shortest plausible breathing interval in seconds (default 2)")
		maxInterval = flag.Float64("max-interval", 0, "Longest plausible breathing interval in seconds (default 10)")
		overwrite   = flag.Bool("overwrite", true, "Allow writing into non-empty output directories")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --log capture.json --out outdir [--format csv|parquet] [--tz US/Pacific]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*logPath) == "" || strings.TrimSpace(*outDir) == "" {
		flag.Usage()
		os.Exit(2)
	}

	result, err := pipeline.Run(pipeline.Options{
		LogPath:          *logPath,
		OutDir:           *outDir,
		Format:           *format,
		Timezone:         *tz,
		Overwrite:        *overwrite,
		HeightPercentile: *percentile,
		MinDistance:      *minDistance,
		MinIntervalS:     *minInterval,
		MaxIntervalS:     *maxInterval,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "breath_analyze failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("breath_analyze complete\n")
	fmt.Printf("Output dir:      %s\n", result.OutputDir)
	fmt.Printf("rate series:     %s\n", result.SeriesPath)
	fmt.Printf("summary:         %s\n", result.SummaryPath)
	fmt.Println()
	fmt.Println(result.Analysis.Notes)
}
