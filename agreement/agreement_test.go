/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agreement

import (
	"testing"

	"chainguard.dev/loeval/consistency"
	"chainguard.dev/loeval/rubric"
)

func analysis(judge string, objective int, means map[string]float64) *consistency.Analysis {
	criteria := make(map[string]consistency.Aggregate, len(means))
	for c, m := range means {
		criteria[c] = consistency.Aggregate{Mean: m, Mode: m, Min: m, Max: m}
	}
	return &consistency.Analysis{
		Rubric:    rubric.ABCD,
		Objective: objective,
		Judge:     judge,
		Runs:      3,
		Criteria:  criteria,
	}
}

func TestCompare(t *testing.T) {
	a := analysis("gemini-2.0-flash", 0, map[string]float64{
		"audience": 5, "behavior": 4, "condition": 3, "degree": 2,
	})
	b := analysis("llama-3.3-70b-versatile", 0, map[string]float64{
		"audience": 5, "behavior": 3, "condition": 1, "degree": 2,
	})

	got, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare() = %v", err)
	}

	// audience and degree agree exactly; behavior is within one; condition
	// differs by two points.
	if got.ExactPct != 50 {
		t.Errorf("ExactPct = %v, want 50", got.ExactPct)
	}
	if got.WithinOnePct != 75 {
		t.Errorf("WithinOnePct = %v, want 75", got.WithinOnePct)
	}
	if got.WithinOnePct < got.ExactPct {
		t.Error("within-one agreement below exact agreement")
	}
	// Bias: (0 + 1 + 2 + 0) / 4 = 0.75, judge A scores higher.
	if got.MeanBias != 0.75 {
		t.Errorf("MeanBias = %v, want 0.75", got.MeanBias)
	}
	if !got.Criteria["behavior"].WithinOne || got.Criteria["behavior"].Exact {
		t.Errorf("behavior agreement = %+v", got.Criteria["behavior"])
	}
}

func TestCompareExactUsesRoundedMeans(t *testing.T) {
	a := analysis("a", 0, map[string]float64{
		"audience": 4.67, "behavior": 4, "condition": 3, "degree": 2,
	})
	b := analysis("b", 0, map[string]float64{
		"audience": 5, "behavior": 4, "condition": 3, "degree": 2,
	})
	got, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare() = %v", err)
	}
	// 4.67 rounds to 5: exact agreement despite different raw means.
	if !got.Criteria["audience"].Exact {
		t.Error("audience means 4.67 and 5 should agree exactly after rounding")
	}
	if got.ExactPct != 100 {
		t.Errorf("ExactPct = %v, want 100", got.ExactPct)
	}
}

func TestCompareMismatchedInputs(t *testing.T) {
	a := analysis("a", 0, map[string]float64{"audience": 5, "behavior": 4, "condition": 3, "degree": 2})
	b := analysis("b", 1, map[string]float64{"audience": 5, "behavior": 4, "condition": 3, "degree": 2})
	if _, err := Compare(a, b); err == nil {
		t.Error("Compare() = nil, want error for mismatched objectives")
	}

	c := analysis("c", 0, map[string]float64{"audience": 5, "behavior": 4, "condition": 3, "degree": 2})
	c.Rubric = rubric.SMART
	if _, err := Compare(a, c); err == nil {
		t.Error("Compare() = nil, want error for mismatched rubrics")
	}

	if _, err := Compare(a, nil); err == nil {
		t.Error("Compare(a, nil) = nil, want error")
	}
}

func TestOverall(t *testing.T) {
	mk := func(obj int, meansA, meansB map[string]float64) *InterJudge {
		a := analysis("a", obj, meansA)
		b := analysis("b", obj, meansB)
		p, err := Compare(a, b)
		if err != nil {
			t.Fatalf("Compare() = %v", err)
		}
		return p
	}

	pairs := []*InterJudge{
		mk(0,
			map[string]float64{"audience": 5, "behavior": 4, "condition": 3, "degree": 2},
			map[string]float64{"audience": 4, "behavior": 4, "condition": 2, "degree": 2}),
		mk(1,
			map[string]float64{"audience": 3, "behavior": 5, "condition": 4, "degree": 1},
			map[string]float64{"audience": 3, "behavior": 4, "condition": 4, "degree": 1}),
	}

	got, err := Overall(pairs)
	if err != nil {
		t.Fatalf("Overall() = %v", err)
	}
	if got.Objectives != 2 {
		t.Errorf("Objectives = %d, want 2", got.Objectives)
	}
	// 5 of 8 criterion pairs agree exactly; all are within one point.
	if got.ExactPct != 62.5 {
		t.Errorf("ExactPct = %v, want 62.5", got.ExactPct)
	}
	if got.WithinOnePct != 100 {
		t.Errorf("WithinOnePct = %v, want 100", got.WithinOnePct)
	}
	if got.Pearson == nil {
		t.Fatal("Pearson = nil, want defined correlation")
	}
	if *got.Pearson <= 0.8 || *got.Pearson > 1 {
		t.Errorf("Pearson = %v, want strong positive correlation", *got.Pearson)
	}
}

func TestOverallUndefinedPearson(t *testing.T) {
	// Judge B is flat across every criterion: correlation is undefined.
	a := analysis("a", 0, map[string]float64{"audience": 5, "behavior": 4, "condition": 3, "degree": 2})
	b := analysis("b", 0, map[string]float64{"audience": 3, "behavior": 3, "condition": 3, "degree": 3})
	p, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare() = %v", err)
	}
	got, err := Overall([]*InterJudge{p})
	if err != nil {
		t.Fatalf("Overall() = %v", err)
	}
	if got.Pearson != nil {
		t.Errorf("Pearson = %v, want nil for constant judge", *got.Pearson)
	}
}

func TestOverallEmpty(t *testing.T) {
	if _, err := Overall(nil); err == nil {
		t.Error("Overall(nil) = nil, want error")
	}
}
