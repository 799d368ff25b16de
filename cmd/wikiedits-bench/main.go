package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/jamesainslie/wikiedits/internal/bench"
	"github.com/jamesainslie/wikiedits/internal/config"
	"github.com/jamesainslie/wikiedits/internal/logger"
)

func main() {
	var (
		configFile = flag.String("config", "", "YAML config file")
		corpusDir  = flag.String("corpus", "testdata/extract", "Directory containing case files")
		length     = flag.Int("length", 0, "Characters kept on each side of the edit (default from config)")
		tolerance  = flag.Int("tolerance", -1, "Overlap tolerance in percent (default from config)")
		wp         = flag.Float64("wp", 1.0, "Precision weight")
		wr         = flag.Float64("wr", 1.0, "Recall weight")
		we         = flag.Float64("we", 1.0, "Exact agreement weight")
		sweep      = flag.Bool("sweep", false, "Run tolerance sweep")
		sweepMin   = flag.Int("sweep-min", -1, "Sweep minimum tolerance")
		sweepMax   = flag.Int("sweep-max", 100, "Sweep maximum tolerance")
		sweepStep  = flag.Int("sweep-step", 10, "Sweep step size")
		verbose    = flag.BoolP("verbose", "v", false, "Log every case that misses")
	)
	flag.Parse()

	cfg, err := config.Load(config.Sources{File: *configFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	level := cfg.Log.Level
	if *verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level, JSON: cfg.Log.JSON, TimeFormat: cfg.Log.TimeFormat})

	suites, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	cases := bench.Cases(suites)
	fmt.Printf("Loaded %d cases from %d files in %s\n\n", len(cases), len(suites), *corpusDir)

	bcfg := bench.Config{
		Length:          cfg.Context.Length,
		Open:            cfg.Context.Open,
		Close:           cfg.Context.Close,
		Tolerance:       cfg.Context.Tolerance,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
		ExactWeight:     *we,
	}
	if *length > 0 {
		bcfg.Length = *length
	}
	if *tolerance >= 0 {
		bcfg.Tolerance = *tolerance
	}

	if !*sweep {
		outcomes := bench.Run(cases, bcfg)
		for _, o := range outcomes {
			if !o.Exact() {
				log.Debug("mismatch", "case", o.Case.ID, "want", o.Case.Want, "got", o.Got)
			}
		}
		printMetrics(bench.Score(outcomes, bcfg))
		return
	}

	tolerances := cfg.Bench.Tolerances
	if *sweepMin >= 0 {
		tolerances = bench.SweepTolerances(*sweepMin, *sweepMax, *sweepStep)
	}
	runSweep(context.Background(), cases, bcfg, tolerances)
}

func runSweep(ctx context.Context, cases []bench.Case, cfg bench.Config, tolerances []int) {
	fmt.Printf("Tolerance Sweep Results (wp=%.1f, wr=%.1f, we=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight, cfg.ExactWeight)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("%-8s %-8s %-8s %-8s %-8s %-8s\n", "Tol", "Hits", "Prec", "Rec", "Exact", "Weighted")

	results, err := bench.Sweep(ctx, cases, cfg, tolerances)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during sweep: %v\n", err)
		os.Exit(1)
	}

	// Print in tolerance order for readability
	byTolerance := slices.Clone(results)
	slices.SortFunc(byTolerance, func(a, b bench.SweepResult) int { return a.Tolerance - b.Tolerance })
	for _, r := range byTolerance {
		fmt.Printf("%-8d %-8.2f %-8.2f %-8.2f %-8.2f %-8.2f\n",
			r.Tolerance, r.Metrics.HitRate, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.ExactRate, r.Metrics.WeightedScore)
	}

	fmt.Println(strings.Repeat("-", 60))
	if len(results) > 0 {
		best := results[0]
		fmt.Printf("Optimal: %d (Weighted: %.2f)\n", best.Tolerance, best.Metrics.WeightedScore)
	}
}

func printMetrics(m bench.Metrics) {
	fmt.Printf("Hit rate: %.2f  Exact: %.2f\n", m.HitRate, m.ExactRate)
	fmt.Printf("Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
		m.Precision, m.Recall, m.F1, m.WeightedScore)
	fmt.Printf("(TP: %d, FP: %d, FN: %d, exact: %d/%d)\n",
		m.TruePositives, m.FalsePositives, m.FalseNegatives, m.Exact, m.Cases)
}
