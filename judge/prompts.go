/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"fmt"

	"chainguard.dev/loeval/promptbuilder"
	"chainguard.dev/loeval/rubric"
)

// systemPrompt assembles the judge's system instruction: the role preamble
// plus the full rubric text (anchors, hard constraints, binary checklist).
func systemPrompt(rb *rubric.Rubric) string {
	return fmt.Sprintf(`You are an expert educational assessment specialist. You evaluate learning objectives against the %s with strict adherence to the rubric.

%s

**YOUR ROLE**: Apply this rubric consistently. Use the binary checklist first, then assign scores. Provide specific evidence from the learning objective for every score.`, rb.Name, rb.Text)
}

// abcdPrompt is the user prompt for ABCD framework scoring.
var abcdPrompt = promptbuilder.MustNewPrompt(`{{objective}}

The run and total_runs attributes identify the repetition. Evaluate independently each time; do not anchor on prior runs.

**COURSE CONTEXT**:
{{course_context}}

**INSTRUCTIONS**:
1. First, answer the 5 binary checklist questions (YES/NO)
2. Then, for EACH component (A, B, C, D), assign a score from 1-5 based on the rubric
3. Apply HARD CONSTRAINTS (check if the objective uses 'understand'/'know' without demonstration, and cap Behavior at 2)
4. Provide specific evidence from the objective that justifies your score
5. Identify what's missing or weak

**GRANULAR QUESTIONS** (answer these too):
{{questions}}

**OUTPUT FORMAT** (JSON ONLY):
{
  "overall_scores": {
    "audience": {"score": <1-5>, "evidence": "specific quote or observation", "weakness": "what's missing or weak"},
    "behavior": {"score": <1-5>, "evidence": "...", "weakness": "..."},
    "condition": {"score": <1-5>, "evidence": "...", "weakness": "..."},
    "degree": {"score": <1-5>, "evidence": "...", "weakness": "..."}
  },
  "composite_score": <average of 4 component scores>,
  "overall_assessment": "Brief 2-3 sentence summary of strengths and weaknesses",
  "improvement_suggestions": ["specific suggestion 1", "suggestion 2"]
}

Return ONLY valid JSON. Be rigorous and objective.`)

// smartPrompt is the user prompt for SMART framework scoring.
var smartPrompt = promptbuilder.MustNewPrompt(`{{objective}}

The run and total_runs attributes identify the repetition. Evaluate independently each time; do not anchor on prior runs.

**COURSE CONTEXT**:
{{course_context}}

**INSTRUCTIONS**:
1. First, answer the 5 binary checklist questions (YES/NO)
2. Then, for EACH component (S, M, A, R, T), assign a score from 1-5 based on the rubric
3. Apply HARD CONSTRAINTS (weak verbs cap Measurable at 2; generic content caps Specific at 2)
4. Consider course context for Achievable and Relevant scores
5. Provide specific evidence and justification

**GRANULAR QUESTIONS** (answer these too):
{{questions}}

**OUTPUT FORMAT** (JSON ONLY):
{
  "overall_scores": {
    "specific": {"score": <1-5>, "evidence": "specific quote or observation", "weakness": "what's missing"},
    "measurable": {"score": <1-5>, "evidence": "...", "weakness": "..."},
    "achievable": {"score": <1-5>, "evidence": "...", "weakness": "..."},
    "relevant": {"score": <1-5>, "evidence": "...", "weakness": "..."},
    "time_bound": {"score": <1-5>, "evidence": "...", "weakness": "..."}
  },
  "composite_score": <average of 5 component scores>,
  "overall_assessment": "Brief 2-3 sentence summary",
  "improvement_suggestions": ["specific suggestion 1", "suggestion 2"]
}

Return ONLY valid JSON. Be rigorous and objective.`)

// bloomsPrompt is the user prompt for Bloom's Taxonomy scoring.
var bloomsPrompt = promptbuilder.MustNewPrompt(`{{objective}}

The run and total_runs attributes identify the repetition. Evaluate independently each time; do not anchor on prior runs.

**COURSE CONTEXT**:
{{course_context}}

**INSTRUCTIONS**:
1. Answer the 4 binary checklist questions
2. Identify the Bloom's level (Remember/Understand/Apply/Analyze/Evaluate/Create)
3. Apply HARD CONSTRAINTS (if the verb is 'understand'/'know', classify as Remember/Understand level)
4. Score: Verb Accuracy, Cognitive Demand, Level Classification

**GRANULAR QUESTIONS** (answer these too):
{{questions}}

**OUTPUT FORMAT** (JSON ONLY):
{
  "identified_level": "Remember/Understand/Apply/Analyze/Evaluate/Create",
  "overall_scores": {
    "verb_accuracy": {"score": <1-5>, "evidence": "specific quote or observation", "weakness": "what's missing or weak"},
    "cognitive_demand": {"score": <1-5>, "evidence": "...", "weakness": "..."},
    "level_classification": {"score": <1-5>, "evidence": "...", "weakness": "..."}
  },
  "composite_score": <average of 3 component scores>,
  "overall_assessment": "Brief 2-3 sentence summary of strengths and weaknesses",
  "improvement_suggestions": ["specific suggestion 1", "suggestion 2"]
}

Return ONLY valid JSON. Be rigorous and objective.`)

// promptFor selects the user prompt template for a rubric.
func promptFor(id rubric.ID) (*promptbuilder.Prompt, error) {
	switch id {
	case rubric.ABCD:
		return abcdPrompt, nil
	case rubric.SMART:
		return smartPrompt, nil
	case rubric.Blooms:
		return bloomsPrompt, nil
	}
	return nil, fmt.Errorf("no prompt for rubric %q", id)
}

// Bind implements promptbuilder binding for Request.
func (r *Request) Bind(prompt *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	rb, err := rubric.Get(r.Rubric)
	if err != nil {
		return nil, err
	}

	prompt, err = prompt.BindXML("objective", struct {
		XMLName   struct{} `xml:"learning_objective"`
		Run       int      `xml:"run,attr"`
		TotalRuns int      `xml:"total_runs,attr"`
		Content   string   `xml:",chardata"`
	}{
		Run:       r.RunNumber,
		TotalRuns: r.TotalRuns,
		Content:   r.Objective,
	})
	if err != nil {
		return nil, err
	}

	if r.Course == (CourseContext{}) {
		prompt, err = prompt.BindStringLiteral("course_context", "not provided")
	} else {
		prompt, err = prompt.BindYAML("course_context", r.Course)
	}
	if err != nil {
		return nil, err
	}

	return prompt.BindJSON("questions", rb.Questions)
}

// buildUserPrompt renders the complete user prompt for a request.
func buildUserPrompt(r *Request) (string, error) {
	prompt, err := promptFor(r.Rubric)
	if err != nil {
		return "", err
	}
	bound, err := r.Bind(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to bind request to prompt: %w", err)
	}
	return bound.Build()
}
