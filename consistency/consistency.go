/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package consistency aggregates repeated scoring runs of one objective into
// per-criterion and composite statistics, and classifies how stable the
// judge's scores were across repetitions.
package consistency

import (
	"errors"
	"fmt"

	"chainguard.dev/loeval/rubric"
	"chainguard.dev/loeval/score"
	"chainguard.dev/loeval/stats"
)

// ErrNoSuccessfulRuns indicates that every repetition for an objective
// failed, so no statistics can be produced.
var ErrNoSuccessfulRuns = errors.New("no successful runs")

// Classification describes score stability across repetitions.
type Classification string

const (
	// Consistent: sample standard deviation at or below 0.5.
	Consistent Classification = "consistent"
	// ModeratelyVariable: sample standard deviation above 0.5, at or
	// below 1.0.
	ModeratelyVariable Classification = "moderately_variable"
	// HighlyVariable: sample standard deviation above 1.0.
	HighlyVariable Classification = "highly_variable"
)

// Classify maps a sample standard deviation to its stability band. A nil
// stdev (fewer than two runs) counts as consistent: a single observation
// cannot exhibit variation.
func Classify(stdev *float64) Classification {
	switch {
	case stdev == nil || *stdev <= 0.5:
		return Consistent
	case *stdev <= 1.0:
		return ModeratelyVariable
	default:
		return HighlyVariable
	}
}

// IsConsistent reports whether a stdev falls in the consistent band.
func IsConsistent(stdev *float64) bool {
	return Classify(stdev) == Consistent
}

// Aggregate holds the descriptive statistics for one criterion (or the
// composite) across repetitions. Stdev is nil when fewer than two runs
// succeeded; it is never a numeric placeholder.
type Aggregate struct {
	Mean           float64        `json:"mean"`
	Mode           float64        `json:"mode"`
	Stdev          *float64       `json:"std_dev"`
	Min            float64        `json:"min"`
	Max            float64        `json:"max"`
	Classification Classification `json:"classification"`
}

// Analysis is the aggregated view of one objective's repetitions under one
// judge and rubric.
type Analysis struct {
	Rubric    rubric.ID `json:"rubric"`
	Objective int       `json:"objective"`
	Judge     string    `json:"judge"`
	Runs      int       `json:"runs"`

	Criteria  map[string]Aggregate `json:"criteria"`
	Composite Aggregate            `json:"composite"`
}

// Analyze aggregates the successful runs for one objective. All runs must
// share the same objective index and judge; failed repetitions are simply
// absent from the input.
func Analyze(runs []score.Run, id rubric.ID) (*Analysis, error) {
	if len(runs) == 0 {
		return nil, ErrNoSuccessfulRuns
	}
	rb, err := rubric.Get(id)
	if err != nil {
		return nil, err
	}
	for i := range runs {
		if runs[i].Objective != runs[0].Objective {
			return nil, fmt.Errorf("runs mix objectives %d and %d", runs[0].Objective, runs[i].Objective)
		}
		if runs[i].Judge != runs[0].Judge {
			return nil, fmt.Errorf("runs mix judges %q and %q", runs[0].Judge, runs[i].Judge)
		}
		if err := score.Validate(&runs[i], id); err != nil {
			return nil, fmt.Errorf("run %d invalid: %w", runs[i].RunNumber, err)
		}
	}

	criteria := make(map[string]Aggregate, len(rb.Criteria))
	for _, criterion := range rb.Criteria {
		values := make([]float64, 0, len(runs))
		ints := make([]int, 0, len(runs))
		for i := range runs {
			cs, _ := runs[i].Criterion(criterion)
			values = append(values, float64(cs.Score))
			ints = append(ints, cs.Score)
		}
		mode, err := stats.Mode(ints)
		if err != nil {
			return nil, err
		}
		criteria[criterion] = aggregate(values, float64(mode))
	}

	composites := make([]float64, 0, len(runs))
	for i := range runs {
		composites = append(composites, runs[i].Composite)
	}
	mode, err := stats.Mode(composites)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Rubric:    id,
		Objective: runs[0].Objective,
		Judge:     runs[0].Judge,
		Runs:      len(runs),
		Criteria:  criteria,
		Composite: aggregate(composites, mode),
	}, nil
}

func aggregate(values []float64, mode float64) Aggregate {
	mean, _ := stats.Mean(values)
	lo, hi, _ := stats.MinMax(values)

	var stdev *float64
	if sd, err := stats.SampleStdev(values); err == nil {
		rounded := score.Round2(sd)
		stdev = &rounded
	}

	return Aggregate{
		Mean:           score.Round2(mean),
		Mode:           mode,
		Stdev:          stdev,
		Min:            lo,
		Max:            hi,
		Classification: Classify(stdev),
	}
}
