/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package judge scores learning objectives against pedagogical rubrics by
// prompting external LLM judges. Each implementation wraps one provider
// (Gemini, Groq, Claude) behind a common single-call interface.
package judge

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/loeval/rubric"
	"chainguard.dev/loeval/score"
)

// CourseContext situates an objective inside its course so the judge can
// assess achievability and relevance. All fields are optional.
type CourseContext struct {
	Title string `json:"course_title,omitempty" yaml:"course,omitempty"`
	Code  string `json:"course_code,omitempty" yaml:"code,omitempty"`
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	Focus string `json:"focus,omitempty" yaml:"focus,omitempty"`
}

// Request contains the context for one scoring call: one objective, one
// rubric, one repetition.
type Request struct {
	// Rubric selects the scoring framework.
	Rubric rubric.ID `json:"rubric"`

	// Objective is the learning objective statement to score.
	Objective string `json:"objective"`

	// ObjectiveIndex is the zero-based position of the objective within
	// its input document.
	ObjectiveIndex int `json:"objective_index"`

	// RunNumber is the 1-based repetition number, surfaced to the judge
	// so each repetition is evaluated independently.
	RunNumber int `json:"run_number"`

	// TotalRuns is the repetition budget for this objective.
	TotalRuns int `json:"total_runs"`

	// Course is optional course context for achievability and relevance.
	Course CourseContext `json:"course,omitempty"`
}

// Validate checks the request before any provider call is made.
func (r *Request) Validate() error {
	if _, err := rubric.Get(r.Rubric); err != nil {
		return err
	}
	if r.Objective == "" {
		return errors.New("objective is required")
	}
	if r.RunNumber < 1 {
		return fmt.Errorf("run number %d must be at least 1", r.RunNumber)
	}
	if r.TotalRuns < r.RunNumber {
		return fmt.Errorf("total runs %d cannot be less than run number %d", r.TotalRuns, r.RunNumber)
	}
	return nil
}

// Interface defines the contract for judge implementations.
type Interface interface {
	// Name identifies the judge for run attribution and output metadata.
	Name() string

	// Score evaluates a learning objective against a rubric and returns
	// one validated scoring run. A failed call returns an error; partial
	// or defaulted runs are never produced.
	Score(ctx context.Context, request *Request) (*score.Run, error)
}
