package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	breath "github.com/rcarcasses/challenge-biosignal"
	"github.com/rcarcasses/challenge-biosignal/hrlog"
)

func main() {
	var (
		percentile  = flag.Float64("percentile", 60, "Peak height floor as a signal percentile")
		minDistance = flag.Int("min-distance", 5, "Minimum peak separation in samples")
		minInterval = flag.Float64("min-interval", 2.0, "Shortest plausible breathing interval in seconds")
		maxInterval = flag.Float64("max-interval", 10.0, "Longest plausible breathing interval in seconds")
		tz          = flag.String("tz", "", "IANA timezone for rendered clock values (default: local)")
		jsonOut     = flag.Bool("json", false, "Emit the full analysis as JSON")
		showRates   = flag.Bool("rates", false, "Include the sample-by-sample series in text output")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <path-to-heart-rate-log>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	loc := time.Local
	if *tz != "" {
		parsed, err := time.LoadLocation(*tz)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad timezone: %v\n", err)
			os.Exit(2)
		}
		loc = parsed
	}

	records, err := hrlog.ReadAny(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}

	analysis, err := breath.Analyze(records, breath.Config{
		HeightPercentile: *percentile,
		MinDistance:      *minDistance,
		MinIntervalS:     *minInterval,
		MaxIntervalS:     *maxInterval,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}
	analysis.Notes = breath.BuildSessionNotes(analysis, loc)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analysis); err != nil {
			fmt.Fprintf(os.Stderr, "json encode failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(analysis.Notes)
	if *showRates && len(analysis.Rates) > 0 {
		fmt.Println()
		fmt.Println("Rate Series")
		for _, r := range analysis.Rates {
			ts := time.UnixMilli(int64(math.Round(r.Timestamp * 1000.0))).In(loc)
			fmt.Printf("- %s | %5.1f breaths/min\n", ts.Format("15:04:05"), r.BPM)
		}
	}
}
