package bench

import (
	"context"
	"sort"
)

// SweepResult holds metrics for one tolerance value.
type SweepResult struct {
	Tolerance int
	Metrics   Metrics
}

// SweepTolerances generates tolerance values from min up to and including
// max with the given step.
func SweepTolerances(min, max, step int) []int {
	if step <= 0 {
		return nil
	}
	var tolerances []int
	for t := min; t <= max; t += step {
		tolerances = append(tolerances, t)
	}
	return tolerances
}

// Sweep evaluates cases at each tolerance and returns results sorted by
// weighted score, best first. Ties keep the order of tolerances.
func Sweep(ctx context.Context, cases []Case, cfg Config, tolerances []int) ([]SweepResult, error) {
	results := make([]SweepResult, 0, len(tolerances))

	for _, tolerance := range tolerances {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cfg.Tolerance = tolerance
		results = append(results, SweepResult{
			Tolerance: tolerance,
			Metrics:   Evaluate(cases, cfg),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metrics.WeightedScore > results[j].Metrics.WeightedScore
	})

	return results, nil
}
