/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package rubric defines the pedagogical frameworks that learning objectives
// are scored against: ABCD, SMART, and Bloom's Taxonomy. Each rubric carries
// its fixed ordered criterion set, the full scoring anchors handed to the
// judge as a system instruction, and the granular questions the judge must
// answer per criterion.
package rubric

import (
	"fmt"
	"slices"
)

// ID identifies one of the supported evaluation rubrics.
type ID string

const (
	// ABCD scores structural completeness: Audience, Behavior,
	// Condition, Degree.
	ABCD ID = "abcd"
	// SMART scores actionability: Specific, Measurable, Achievable,
	// Relevant, Time-bound.
	SMART ID = "smart"
	// Blooms scores cognitive-level accuracy: verb accuracy, cognitive
	// demand, level classification.
	Blooms ID = "blooms"
)

func (id ID) String() string { return string(id) }

// ParseID converts a configuration string into a rubric ID.
func ParseID(s string) (ID, error) {
	switch ID(s) {
	case ABCD, SMART, Blooms:
		return ID(s), nil
	}
	return "", fmt.Errorf("unknown rubric %q (want one of abcd, smart, blooms)", s)
}

// Question is one granular evaluation question the judge answers alongside
// the per-criterion scores.
type Question struct {
	Criterion string `json:"criterion"`
	Question  string `json:"question"`
	Scale     string `json:"scale"`
}

// Rubric is a complete scoring framework.
type Rubric struct {
	ID   ID
	Name string
	// Criteria is the fixed ordered set of criterion keys a scoring run
	// must cover exactly (no more, no fewer).
	Criteria []string
	// Text is the full rubric handed to the judge as its system
	// instruction: 1-5 anchors, hard constraints, and binary checklists.
	Text string
	// Questions are the granular per-criterion questions rendered into
	// the user prompt.
	Questions []Question
}

// HasCriterion reports whether name is one of the rubric's criterion keys.
func (r *Rubric) HasCriterion(name string) bool {
	return slices.Contains(r.Criteria, name)
}

var rubrics = map[ID]*Rubric{
	ABCD: {
		ID:       ABCD,
		Name:     "ABCD Framework",
		Criteria: []string{"audience", "behavior", "condition", "degree"},
		Text:     abcdText,
		Questions: []Question{{
			Criterion: "Audience",
			Question:  "Is the intended learner explicitly or clearly implicitly stated (e.g., 'Students will...', 'Learners will...', or context makes audience obvious)?",
			Scale:     "1=No audience identifiable, 3=Implicit but clear, 5=Explicitly stated",
		}, {
			Criterion: "Behavior",
			Question:  "Does the learning objective use an observable, measurable action verb (not vague terms like 'understand' or 'know')?",
			Scale:     "1=Non-behavioral/passive, 3=Vague action verb, 5=Clear measurable verb",
		}, {
			Criterion: "Condition",
			Question:  "Are the circumstances, context, or conditions under which the behavior will be demonstrated stated or strongly implied?",
			Scale:     "1=No context, 3=Vague conditions, 5=Explicit conditions",
		}, {
			Criterion: "Degree",
			Question:  "Is there a performance standard or criterion that defines how well the behavior must be performed?",
			Scale:     "1=No standard, 3=Implicit standard, 5=Explicit measurable standard",
		}},
	},
	SMART: {
		ID:       SMART,
		Name:     "SMART Framework",
		Criteria: []string{"specific", "measurable", "achievable", "relevant", "time_bound"},
		Text:     smartText,
		Questions: []Question{{
			Criterion: "Specific",
			Question:  "Does the learning objective clearly identify WHAT specific concept, skill, or knowledge will be learned (not generic terms)?",
			Scale:     "1=Completely vague, 3=Somewhat specific, 5=Highly specific with exact topics",
		}, {
			Criterion: "Measurable",
			Question:  "Can achievement of this learning objective be objectively assessed through exams, projects, or assignments?",
			Scale:     "1=Cannot be measured, 3=Difficult to measure, 5=Easily measurable with clear criteria",
		}, {
			Criterion: "Achievable",
			Question:  "Is this learning objective realistic and attainable for students in this course within one semester?",
			Scale:     "1=Impossible/trivial, 3=Questionable difficulty, 5=Perfectly scoped",
		}, {
			Criterion: "Relevant",
			Question:  "Is this learning objective directly tied to the core concepts of the course?",
			Scale:     "1=Irrelevant, 3=Tangentially related, 5=Core course topic",
		}, {
			Criterion: "Time-bound",
			Question:  "Is there a clear (explicit or implicit) timeframe for when this learning outcome should be achieved?",
			Scale:     "1=No timeframe, 3=Vague timeframe, 5=Clear explicit timeframe",
		}},
	},
	Blooms: {
		ID:       Blooms,
		Name:     "Bloom's Taxonomy",
		Criteria: []string{"verb_accuracy", "cognitive_demand", "level_classification"},
		Text:     bloomsText,
		Questions: []Question{{
			Criterion: "Verb_Accuracy",
			Question:  "Does the action verb accurately represent the cognitive level according to Bloom's Taxonomy (e.g., 'Analyze' for analysis, not 'understand')?",
			Scale:     "1=Wrong/no Bloom's verb, 3=Approximate match (off by one level), 5=Perfect Bloom's verb for task",
		}, {
			Criterion: "Cognitive_Demand",
			Question:  "Does the actual task complexity match the cognitive level implied by the verb? (e.g., if verb is 'analyze', does task require breaking down/comparing, not just applying?)",
			Scale:     "1=Complete mismatch (2+ levels off), 3=Partial match (1 level off), 5=Perfect match",
		}, {
			Criterion: "Level_Classification",
			Question:  "Can you unambiguously classify this learning objective into a single Bloom's level without debate?",
			Scale:     "1=Impossible to classify, 3=Ambiguous between 2 adjacent levels, 5=Clearly one level",
		}},
	},
}

// Get returns the rubric for id.
func Get(id ID) (*Rubric, error) {
	r, ok := rubrics[id]
	if !ok {
		return nil, fmt.Errorf("unknown rubric %q", id)
	}
	return r, nil
}

// MustGet is like Get but panics on unknown IDs. For use with the
// compile-time constants above.
func MustGet(id ID) *Rubric {
	r, err := Get(id)
	if err != nil {
		panic(err)
	}
	return r
}

// All returns the supported rubrics in evaluation order.
func All() []*Rubric {
	return []*Rubric{rubrics[ABCD], rubrics[SMART], rubrics[Blooms]}
}

// Criteria returns the fixed ordered criterion keys for id.
func Criteria(id ID) ([]string, error) {
	r, err := Get(id)
	if err != nil {
		return nil, err
	}
	return slices.Clone(r.Criteria), nil
}
