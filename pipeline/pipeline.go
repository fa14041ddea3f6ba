/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package pipeline orchestrates the full evaluation flow: every objective in
// an input document is scored by the primary judge (and optionally a
// validation judge), each repeated a configured number of times, and the runs
// are aggregated into consistency, inter-judge agreement, and a single output
// document per rubric.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/loeval/agreement"
	"chainguard.dev/loeval/consistency"
	"chainguard.dev/loeval/dataset"
	"chainguard.dev/loeval/judge"
	"chainguard.dev/loeval/rubric"
)

// Config controls how the pipeline repeats and paces judge calls.
type Config struct {
	// Runs is the number of repetitions per objective per judge.
	Runs int

	// CallDelay is the pause between consecutive provider calls, shared
	// across judges and objectives to stay under free-tier rate limits.
	CallDelay time.Duration

	// Temperature is recorded in output metadata. The judges themselves
	// are configured separately; keep the two in sync.
	Temperature float64

	// Course is optional course context passed to every judge call.
	Course judge.CourseContext
}

// DefaultConfig returns the standard pipeline configuration: three
// repetitions with a five second pause between calls.
func DefaultConfig() Config {
	return Config{
		Runs:        3,
		CallDelay:   5 * time.Second,
		Temperature: 0.3,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("runs %d must be at least 1", c.Runs)
	}
	if c.CallDelay < 0 {
		return fmt.Errorf("call delay %v cannot be negative", c.CallDelay)
	}
	return nil
}

// Evaluator drives repeated scoring runs across one or two judges.
type Evaluator struct {
	primary    judge.Interface
	validation judge.Interface
	cfg        Config
	now        func() time.Time
}

// New creates an Evaluator. The validation judge may be nil, in which case
// inter-judge agreement is skipped.
func New(primary, validation judge.Interface, cfg Config) (*Evaluator, error) {
	if primary == nil {
		return nil, errors.New("primary judge is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{
		primary:    primary,
		validation: validation,
		cfg:        cfg,
		now:        time.Now,
	}, nil
}

// EvaluateRubric scores every objective in the document against one rubric
// and returns the complete evaluation document. Individual run failures are
// recorded inline and never abort the evaluation; only context cancellation
// stops it early.
func (e *Evaluator) EvaluateRubric(ctx context.Context, id rubric.ID, doc *dataset.Document) (*dataset.EvaluationDocument, error) {
	if _, err := rubric.Get(id); err != nil {
		return nil, err
	}
	if doc == nil || len(doc.LearningObjectives) == 0 {
		return nil, errors.New("no learning objectives to evaluate")
	}

	log := clog.FromContext(ctx).With("rubric", id)
	log.With("objectives", len(doc.LearningObjectives)).
		With("runs", e.cfg.Runs).
		Info("Starting rubric evaluation")

	throttle := &throttle{delay: e.cfg.CallDelay}
	evaluations := make([]dataset.ObjectiveEvaluation, 0, len(doc.LearningObjectives))
	var pairs []*agreement.InterJudge

	for i, objective := range doc.LearningObjectives {
		primary, err := e.runJudge(ctx, throttle, e.primary, id, objective, i)
		if err != nil {
			return nil, err
		}

		eval := dataset.ObjectiveEvaluation{
			LearningObjective: objective,
			ObjectiveNumber:   i + 1,
			Primary:           primary,
		}

		if e.validation != nil {
			validation, err := e.runJudge(ctx, throttle, e.validation, id, objective, i)
			if err != nil {
				return nil, err
			}
			eval.Validation = &validation

			if primary.Consistency != nil && validation.Consistency != nil {
				interJudge, err := agreement.Compare(primary.Consistency, validation.Consistency)
				if err != nil {
					return nil, fmt.Errorf("comparing judges for objective %d: %w", i+1, err)
				}
				eval.InterJudge = interJudge
				pairs = append(pairs, interJudge)
			}
		}

		evaluations = append(evaluations, eval)
	}

	out := &dataset.EvaluationDocument{
		Rubric:        id,
		CourseTitle:   doc.CourseTitle,
		CourseCode:    doc.CourseCode,
		NumObjectives: len(doc.LearningObjectives),
		Evaluations:   evaluations,
		Metadata: dataset.Metadata{
			PrimaryJudge: e.primary.Name(),
			Runs:         e.cfg.Runs,
			Temperature:  e.cfg.Temperature,
			GeneratedAt:  e.now().UTC(),
		},
	}
	if e.validation != nil {
		out.Metadata.ValidationJudge = e.validation.Name()
	}

	if len(pairs) > 0 {
		summary, err := agreement.Overall(pairs)
		if err != nil {
			return nil, fmt.Errorf("pooling inter-judge agreement: %w", err)
		}
		out.OverallAgreement = summary
		log.With("exact_pct", summary.ExactPct).
			With("within_one_pct", summary.WithinOnePct).
			Info("Inter-judge agreement computed")
	}

	log.Info("Rubric evaluation complete")
	return out, nil
}

// runJudge executes all repetitions of one objective against one judge and
// aggregates the successful runs. Failed repetitions are recorded and
// skipped; when every repetition fails the evaluation is marked unavailable
// rather than erroring.
func (e *Evaluator) runJudge(ctx context.Context, t *throttle, j judge.Interface, id rubric.ID, objective string, index int) (dataset.JudgeEvaluation, error) {
	log := clog.FromContext(ctx).With("judge", j.Name()).
		With("rubric", id).
		With("objective", index+1)

	eval := dataset.JudgeEvaluation{Model: j.Name()}
	for run := 1; run <= e.cfg.Runs; run++ {
		if err := t.wait(ctx); err != nil {
			return eval, err
		}
		r, err := j.Score(ctx, &judge.Request{
			Rubric:         id,
			Objective:      objective,
			ObjectiveIndex: index,
			RunNumber:      run,
			TotalRuns:      e.cfg.Runs,
			Course:         e.cfg.Course,
		})
		if err != nil {
			if ctx.Err() != nil {
				return eval, ctx.Err()
			}
			log.With("run", run).With("error", err).
				Warn("Scoring run failed")
			eval.Failures = append(eval.Failures, dataset.RunFailure{
				RunNumber: run,
				Error:     err.Error(),
			})
			continue
		}
		eval.Runs = append(eval.Runs, *r)
	}

	if len(eval.Runs) == 0 {
		log.Warn("No successful runs for objective")
		eval.Unavailable = dataset.UnavailableNoSuccessfulRuns
		return eval, nil
	}

	analysis, err := consistency.Analyze(eval.Runs, id)
	if err != nil {
		return eval, fmt.Errorf("aggregating runs for objective %d: %w", index+1, err)
	}
	eval.Consistency = analysis
	log.With("runs", len(eval.Runs)).
		With("composite_mean", analysis.Composite.Mean).
		With("classification", analysis.Composite.Classification).
		Info("Objective scored")
	return eval, nil
}

// throttle paces provider calls: every call after the first waits for the
// configured delay.
type throttle struct {
	delay time.Duration
	calls int
}

func (t *throttle) wait(ctx context.Context) error {
	defer func() { t.calls++ }()
	if t.calls == 0 || t.delay == 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(t.delay):
		return nil
	}
}
