/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"fmt"

	"chainguard.dev/loeval/result"
	"chainguard.dev/loeval/rubric"
	"chainguard.dev/loeval/score"
)

// criterionPayload is the wire form of one judged criterion.
type criterionPayload struct {
	Score    int    `json:"score"`
	Evidence string `json:"evidence"`
	Weakness string `json:"weakness"`
}

// scorePayload is the wire form of a judge response, matching the OUTPUT
// FORMAT skeleton in the user prompts.
type scorePayload struct {
	IdentifiedLevel string                      `json:"identified_level"`
	OverallScores   map[string]criterionPayload `json:"overall_scores"`
	CompositeScore  float64                     `json:"composite_score"`
	Assessment      string                      `json:"overall_assessment"`
	Suggestions     []string                    `json:"improvement_suggestions"`
}

// parseRun converts raw judge output into a validated scoring run. The
// composite is recomputed from the criterion scores; the judge's own
// composite_score field is advisory only. Any structural defect surfaces as
// a *result.MalformedResponseError carrying the raw response.
func parseRun(raw string, req *Request, judgeName string) (*score.Run, error) {
	payload, err := result.Extract[scorePayload](raw)
	if err != nil {
		return nil, err
	}

	rb, err := rubric.Get(req.Rubric)
	if err != nil {
		return nil, err
	}

	scores := make([]score.CriterionScore, 0, len(rb.Criteria))
	for _, criterion := range rb.Criteria {
		cp, ok := payload.OverallScores[criterion]
		if !ok {
			return nil, &result.MalformedResponseError{
				Raw: raw,
				Err: fmt.Errorf("response missing criterion %q", criterion),
			}
		}
		scores = append(scores, score.CriterionScore{
			Criterion: criterion,
			Score:     cp.Score,
			Evidence:  cp.Evidence,
			Weakness:  cp.Weakness,
		})
	}

	run := &score.Run{
		Objective:   req.ObjectiveIndex,
		Judge:       judgeName,
		RunNumber:   req.RunNumber,
		Scores:      scores,
		Composite:   score.Composite(scores),
		Level:       payload.IdentifiedLevel,
		Assessment:  payload.Assessment,
		Suggestions: payload.Suggestions,
	}

	if err := score.Validate(run, req.Rubric); err != nil {
		return nil, &result.MalformedResponseError{Raw: raw, Err: err}
	}
	return run, nil
}
