/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package agreement compares two judges' aggregated scores for the same
// objectives: exact agreement, within-one-point agreement, systematic bias,
// and score correlation across a whole evaluation.
package agreement

import (
	"errors"
	"fmt"
	"math"

	"chainguard.dev/loeval/consistency"
	"chainguard.dev/loeval/rubric"
	"chainguard.dev/loeval/score"
	"chainguard.dev/loeval/stats"
)

// CriterionAgreement compares two judges' mean scores for one criterion.
type CriterionAgreement struct {
	MeanA float64 `json:"mean_a"`
	MeanB float64 `json:"mean_b"`
	// Exact holds when both means round to the same integer score.
	Exact bool `json:"exact"`
	// WithinOne holds when the means differ by at most one point.
	WithinOne bool `json:"within_one"`
	// Delta is MeanA minus MeanB.
	Delta float64 `json:"delta"`
}

// InterJudge is the agreement between two judges on one objective.
type InterJudge struct {
	Rubric    rubric.ID `json:"rubric"`
	Objective int       `json:"objective"`
	JudgeA    string    `json:"judge_a"`
	JudgeB    string    `json:"judge_b"`

	Criteria map[string]CriterionAgreement `json:"criteria"`

	// ExactPct and WithinOnePct are percentages over the rubric's
	// criteria. WithinOnePct is always at least ExactPct.
	ExactPct     float64 `json:"exact_pct"`
	WithinOnePct float64 `json:"within_one_pct"`
	// MeanBias is the average signed difference (judge A minus judge B).
	// Positive means judge A scores higher.
	MeanBias float64 `json:"mean_bias"`
}

// Compare computes inter-judge agreement for one objective from the two
// judges' consistency analyses. Both analyses must cover the same objective
// and rubric.
func Compare(a, b *consistency.Analysis) (*InterJudge, error) {
	if a == nil || b == nil {
		return nil, errors.New("both analyses are required")
	}
	if a.Rubric != b.Rubric {
		return nil, fmt.Errorf("analyses compare different rubrics: %s vs %s", a.Rubric, b.Rubric)
	}
	if a.Objective != b.Objective {
		return nil, fmt.Errorf("analyses compare different objectives: %d vs %d", a.Objective, b.Objective)
	}
	rb, err := rubric.Get(a.Rubric)
	if err != nil {
		return nil, err
	}

	criteria := make(map[string]CriterionAgreement, len(rb.Criteria))
	exact, within := 0, 0
	var biasSum float64
	for _, criterion := range rb.Criteria {
		aggA, okA := a.Criteria[criterion]
		aggB, okB := b.Criteria[criterion]
		if !okA || !okB {
			return nil, fmt.Errorf("criterion %q missing from analysis", criterion)
		}
		ca := CriterionAgreement{
			MeanA:     aggA.Mean,
			MeanB:     aggB.Mean,
			Exact:     math.Round(aggA.Mean) == math.Round(aggB.Mean),
			WithinOne: math.Abs(aggA.Mean-aggB.Mean) <= 1,
			Delta:     score.Round2(aggA.Mean - aggB.Mean),
		}
		if ca.Exact {
			exact++
		}
		if ca.WithinOne {
			within++
		}
		biasSum += aggA.Mean - aggB.Mean
		criteria[criterion] = ca
	}

	n := float64(len(rb.Criteria))
	return &InterJudge{
		Rubric:       a.Rubric,
		Objective:    a.Objective,
		JudgeA:       a.Judge,
		JudgeB:       b.Judge,
		Criteria:     criteria,
		ExactPct:     score.Round2(float64(exact) / n * 100),
		WithinOnePct: score.Round2(float64(within) / n * 100),
		MeanBias:     score.Round2(biasSum / n),
	}, nil
}

// Summary aggregates agreement across every objective of an evaluation.
type Summary struct {
	Objectives   int     `json:"objectives"`
	ExactPct     float64 `json:"exact_pct"`
	WithinOnePct float64 `json:"within_one_pct"`
	MeanBias     float64 `json:"mean_bias"`
	// Pearson correlates the two judges' criterion means pooled across
	// all objectives. Nil when undefined (fewer than two pairs, or one
	// judge's means are constant).
	Pearson *float64 `json:"pearson"`
}

// Overall pools per-objective agreements into evaluation-wide rates and the
// cross-objective score correlation.
func Overall(pairs []*InterJudge) (*Summary, error) {
	if len(pairs) == 0 {
		return nil, errors.New("no inter-judge pairs to summarize")
	}

	var meansA, meansB []float64
	exact, within := 0, 0
	var biasSum float64
	total := 0
	for _, p := range pairs {
		for _, ca := range p.Criteria {
			meansA = append(meansA, ca.MeanA)
			meansB = append(meansB, ca.MeanB)
			if ca.Exact {
				exact++
			}
			if ca.WithinOne {
				within++
			}
			biasSum += ca.MeanA - ca.MeanB
			total++
		}
	}

	var pearson *float64
	if r, err := stats.Pearson(meansA, meansB); err == nil {
		rounded := score.Round2(r)
		pearson = &rounded
	}

	n := float64(total)
	return &Summary{
		Objectives:   len(pairs),
		ExactPct:     score.Round2(float64(exact) / n * 100),
		WithinOnePct: score.Round2(float64(within) / n * 100),
		MeanBias:     score.Round2(biasSum / n),
		Pearson:      pearson,
	}, nil
}
