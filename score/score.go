/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package score defines the result of a single judge scoring call and its
// validation against a rubric's criterion set.
package score

import (
	"fmt"
	"math"

	"chainguard.dev/loeval/rubric"
)

// CriterionScore is one judged criterion: an integer score on the 1-5 scale
// plus the evidence and weakness the judge cited for it.
type CriterionScore struct {
	Criterion string `json:"criterion"`
	Score     int    `json:"score"`
	Evidence  string `json:"evidence,omitempty"`
	Weakness  string `json:"weakness,omitempty"`
}

// Run is the outcome of one successful scoring call: one judge, one
// objective, one rubric, one repetition.
type Run struct {
	// Objective is the zero-based index of the objective within its
	// input document.
	Objective int `json:"objective"`
	// Judge identifies the model that produced this run.
	Judge string `json:"judge"`
	// RunNumber is the 1-based repetition number.
	RunNumber int `json:"run"`

	Scores []CriterionScore `json:"scores"`
	// Level is the Bloom's level the judge identified. Empty for rubrics
	// that do not classify cognitive levels.
	Level string `json:"identified_level,omitempty"`
	// Composite is the mean of the criterion scores, rounded to two
	// decimal places.
	Composite   float64  `json:"composite_score"`
	Assessment  string   `json:"overall_assessment,omitempty"`
	Suggestions []string `json:"improvement_suggestions,omitempty"`
}

// Criterion returns the score recorded for the named criterion.
func (r *Run) Criterion(name string) (CriterionScore, bool) {
	for _, cs := range r.Scores {
		if cs.Criterion == name {
			return cs, true
		}
	}
	return CriterionScore{}, false
}

// Composite computes the composite score for a set of criterion scores:
// the mean, rounded to two decimal places.
func Composite(scores []CriterionScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, cs := range scores {
		sum += cs.Score
	}
	return Round2(float64(sum) / float64(len(scores)))
}

// Round2 rounds to two decimal places. All composite and aggregate scores in
// output documents use this rounding.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Validate checks that a run covers exactly the rubric's criterion set, with
// every score inside the 1-5 scale. A run that fails validation is treated as
// a failed call, never silently repaired.
func Validate(r *Run, id rubric.ID) error {
	rb, err := rubric.Get(id)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(r.Scores))
	for _, cs := range r.Scores {
		if !rb.HasCriterion(cs.Criterion) {
			return fmt.Errorf("criterion %q is not part of rubric %s", cs.Criterion, id)
		}
		if seen[cs.Criterion] {
			return fmt.Errorf("criterion %q scored twice", cs.Criterion)
		}
		seen[cs.Criterion] = true
		if cs.Score < 1 || cs.Score > 5 {
			return fmt.Errorf("criterion %q score %d outside 1-5 scale", cs.Criterion, cs.Score)
		}
	}
	for _, want := range rb.Criteria {
		if !seen[want] {
			return fmt.Errorf("rubric %s criterion %q missing from run", id, want)
		}
	}
	return nil
}
