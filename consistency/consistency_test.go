/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package consistency

import (
	"errors"
	"testing"

	"chainguard.dev/loeval/rubric"
	"chainguard.dev/loeval/score"
)

func run(runNumber, audience, behavior, condition, degree int) score.Run {
	scores := []score.CriterionScore{
		{Criterion: "audience", Score: audience},
		{Criterion: "behavior", Score: behavior},
		{Criterion: "condition", Score: condition},
		{Criterion: "degree", Score: degree},
	}
	return score.Run{
		Judge:     "gemini-2.0-flash",
		RunNumber: runNumber,
		Scores:    scores,
		Composite: score.Composite(scores),
	}
}

func TestAnalyzeEmptyRuns(t *testing.T) {
	_, err := Analyze(nil, rubric.ABCD)
	if !errors.Is(err, ErrNoSuccessfulRuns) {
		t.Fatalf("Analyze(nil) = %v, want ErrNoSuccessfulRuns", err)
	}
}

func TestAnalyzeStableAndVariableCriteria(t *testing.T) {
	runs := []score.Run{
		run(1, 5, 1, 3, 4),
		run(2, 5, 1, 3, 4),
		run(3, 4, 1, 3, 4),
	}
	a, err := Analyze(runs, rubric.ABCD)
	if err != nil {
		t.Fatalf("Analyze() = %v", err)
	}
	if a.Runs != 3 || a.Judge != "gemini-2.0-flash" {
		t.Errorf("attribution = %d runs, judge %q", a.Runs, a.Judge)
	}

	// behavior scored 1 in all three runs: stdev exactly 0, consistent.
	behavior := a.Criteria["behavior"]
	if behavior.Stdev == nil || *behavior.Stdev != 0 {
		t.Errorf("behavior stdev = %v, want 0", behavior.Stdev)
	}
	if behavior.Classification != Consistent {
		t.Errorf("behavior classification = %q, want consistent", behavior.Classification)
	}
	if behavior.Mean != 1 || behavior.Mode != 1 || behavior.Min != 1 || behavior.Max != 1 {
		t.Errorf("behavior aggregate = %+v", behavior)
	}

	// audience scored 5,5,4: mean 4.67, mode 5, sample stdev 0.58.
	audience := a.Criteria["audience"]
	if audience.Mean != 4.67 {
		t.Errorf("audience mean = %v, want 4.67", audience.Mean)
	}
	if audience.Mode != 5 {
		t.Errorf("audience mode = %v, want 5", audience.Mode)
	}
	if audience.Stdev == nil || *audience.Stdev != 0.58 {
		t.Errorf("audience stdev = %v, want 0.58", audience.Stdev)
	}
	if audience.Classification != ModeratelyVariable {
		t.Errorf("audience classification = %q, want moderately_variable", audience.Classification)
	}

	// Composite mean must lie within the per-run composite range.
	if a.Composite.Mean < a.Composite.Min || a.Composite.Mean > a.Composite.Max {
		t.Errorf("composite mean %v outside [%v, %v]", a.Composite.Mean, a.Composite.Min, a.Composite.Max)
	}
}

func TestAnalyzeSingleRun(t *testing.T) {
	a, err := Analyze([]score.Run{run(1, 5, 4, 3, 2)}, rubric.ABCD)
	if err != nil {
		t.Fatalf("Analyze() = %v", err)
	}
	// One observation: stdev is undefined, not zero.
	if a.Composite.Stdev != nil {
		t.Errorf("composite stdev = %v, want nil", *a.Composite.Stdev)
	}
	if a.Composite.Classification != Consistent {
		t.Errorf("classification = %q, want consistent", a.Composite.Classification)
	}
	if a.Composite.Mean != 3.5 || a.Composite.Min != 3.5 || a.Composite.Max != 3.5 {
		t.Errorf("composite aggregate = %+v", a.Composite)
	}
}

func TestAnalyzeModeTieBreaksLow(t *testing.T) {
	runs := []score.Run{
		run(1, 3, 1, 3, 4),
		run(2, 3, 1, 3, 4),
		run(3, 4, 1, 3, 4),
		run(4, 4, 1, 3, 4),
	}
	a, err := Analyze(runs, rubric.ABCD)
	if err != nil {
		t.Fatalf("Analyze() = %v", err)
	}
	if a.Criteria["audience"].Mode != 3 {
		t.Errorf("audience mode = %v, want 3 (tie breaks to lowest)", a.Criteria["audience"].Mode)
	}
}

func TestAnalyzeRejectsMixedObjectives(t *testing.T) {
	a := run(1, 5, 4, 3, 2)
	b := run(2, 5, 4, 3, 2)
	b.Objective = 1
	if _, err := Analyze([]score.Run{a, b}, rubric.ABCD); err == nil {
		t.Error("Analyze() = nil, want error for mixed objectives")
	}
}

func TestAnalyzeRejectsInvalidRun(t *testing.T) {
	bad := run(1, 5, 4, 3, 2)
	bad.Scores = bad.Scores[:3]
	if _, err := Analyze([]score.Run{bad}, rubric.ABCD); err == nil {
		t.Error("Analyze() = nil, want error for incomplete criteria")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		stdev *float64
		want  Classification
	}{{
		name:  "nil is consistent",
		stdev: nil,
		want:  Consistent,
	}, {
		name:  "boundary 0.5 is consistent",
		stdev: ptr(0.5),
		want:  Consistent,
	}, {
		name:  "boundary 1.0 is moderately variable",
		stdev: ptr(1.0),
		want:  ModeratelyVariable,
	}, {
		name:  "above 1.0 is highly variable",
		stdev: ptr(1.01),
		want:  HighlyVariable,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.stdev); got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.stdev, got, tt.want)
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }
