/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chainguard.dev/loeval/dataset"
	"chainguard.dev/loeval/judge"
	"chainguard.dev/loeval/rubric"
	"chainguard.dev/loeval/score"
)

// fakeJudge returns a fixed score for every criterion, failing the runs
// listed in fail (keyed "objectiveIndex/runNumber").
type fakeJudge struct {
	name  string
	level int
	fail  map[string]error
	calls []judge.Request
}

func (f *fakeJudge) Name() string { return f.name }

func (f *fakeJudge) Score(ctx context.Context, request *judge.Request) (*score.Run, error) {
	f.calls = append(f.calls, *request)
	if err := request.Validate(); err != nil {
		return nil, err
	}
	if err, ok := f.fail[fmt.Sprintf("%d/%d", request.ObjectiveIndex, request.RunNumber)]; ok {
		return nil, err
	}
	criteria, err := rubric.Criteria(request.Rubric)
	if err != nil {
		return nil, err
	}
	scores := make([]score.CriterionScore, 0, len(criteria))
	for _, c := range criteria {
		scores = append(scores, score.CriterionScore{Criterion: c, Score: f.level})
	}
	return &score.Run{
		Objective: request.ObjectiveIndex,
		Judge:     f.name,
		RunNumber: request.RunNumber,
		Scores:    scores,
		Composite: score.Composite(scores),
	}, nil
}

func testDocument(objectives ...string) *dataset.Document {
	return &dataset.Document{
		CourseTitle:        "Operating Systems",
		CourseCode:         "CS 4348",
		LearningObjectives: objectives,
	}
}

func testConfig(runs int) Config {
	return Config{Runs: runs, Temperature: 0.3}
}

func TestEvaluateRubricDualJudges(t *testing.T) {
	primary := &fakeJudge{name: "gemini-2.0-flash", level: 4}
	validation := &fakeJudge{name: "llama-3.3-70b-versatile", level: 5}

	e, err := New(primary, validation, testConfig(2))
	require.NoError(t, err)

	doc := testDocument(
		"Students will implement a thread-safe queue given starter code, passing 90% of tests.",
		"Students will explain the difference between processes and threads.",
	)
	out, err := e.EvaluateRubric(context.Background(), rubric.ABCD, doc)
	require.NoError(t, err)

	require.Equal(t, rubric.ABCD, out.Rubric)
	require.Equal(t, "Operating Systems", out.CourseTitle)
	require.Equal(t, 2, out.NumObjectives)
	require.Len(t, out.Evaluations, 2)

	// Two objectives, two runs each, for each judge.
	require.Len(t, primary.calls, 4)
	require.Len(t, validation.calls, 4)
	require.Equal(t, 1, primary.calls[0].RunNumber)
	require.Equal(t, 2, primary.calls[1].RunNumber)
	require.Equal(t, 2, primary.calls[0].TotalRuns)

	first := out.Evaluations[0]
	require.Equal(t, 1, first.ObjectiveNumber)
	require.NotNil(t, first.Primary.Consistency)
	require.Equal(t, 4.0, first.Primary.Consistency.Composite.Mean)
	require.Empty(t, first.Primary.Failures)

	require.NotNil(t, first.Validation)
	require.Equal(t, 5.0, first.Validation.Consistency.Composite.Mean)

	// The judges disagree by exactly one point on every criterion.
	require.NotNil(t, first.InterJudge)
	require.Equal(t, 0.0, first.InterJudge.ExactPct)
	require.Equal(t, 100.0, first.InterJudge.WithinOnePct)
	require.Equal(t, -1.0, first.InterJudge.MeanBias)

	require.NotNil(t, out.OverallAgreement)
	require.Equal(t, 2, out.OverallAgreement.Objectives)
	require.Equal(t, 100.0, out.OverallAgreement.WithinOnePct)

	require.Equal(t, "gemini-2.0-flash", out.Metadata.PrimaryJudge)
	require.Equal(t, "llama-3.3-70b-versatile", out.Metadata.ValidationJudge)
	require.Equal(t, 2, out.Metadata.Runs)
	require.Equal(t, 0.3, out.Metadata.Temperature)
	require.False(t, out.Metadata.GeneratedAt.IsZero())
}

func TestEvaluateRubricSingleJudge(t *testing.T) {
	primary := &fakeJudge{name: "gemini-2.0-flash", level: 3}

	e, err := New(primary, nil, testConfig(3))
	require.NoError(t, err)

	out, err := e.EvaluateRubric(context.Background(), rubric.SMART,
		testDocument("Students will explain paging."))
	require.NoError(t, err)

	require.Len(t, primary.calls, 3)
	require.Nil(t, out.Evaluations[0].Validation)
	require.Nil(t, out.Evaluations[0].InterJudge)
	require.Nil(t, out.OverallAgreement)
	require.Empty(t, out.Metadata.ValidationJudge)
}

func TestEvaluateRubricRecordsFailures(t *testing.T) {
	primary := &fakeJudge{
		name:  "gemini-2.0-flash",
		level: 4,
		fail: map[string]error{
			"0/1": errors.New("429 rate limit exceeded"),
		},
	}

	e, err := New(primary, nil, testConfig(2))
	require.NoError(t, err)

	out, err := e.EvaluateRubric(context.Background(), rubric.ABCD,
		testDocument("Students will explain paging."))
	require.NoError(t, err)

	eval := out.Evaluations[0].Primary
	require.Len(t, eval.Runs, 1)
	require.Len(t, eval.Failures, 1)
	require.Equal(t, 1, eval.Failures[0].RunNumber)
	require.Contains(t, eval.Failures[0].Error, "rate limit")
	require.Empty(t, eval.Unavailable)

	// Consistency is computed over the single surviving run.
	require.NotNil(t, eval.Consistency)
	require.Nil(t, eval.Consistency.Composite.Stdev)
}

func TestEvaluateRubricNoSuccessfulRuns(t *testing.T) {
	primary := &fakeJudge{
		name:  "gemini-2.0-flash",
		level: 4,
		fail: map[string]error{
			"0/1": errors.New("503 service unavailable"),
			"0/2": errors.New("503 service unavailable"),
		},
	}
	validation := &fakeJudge{name: "llama-3.3-70b-versatile", level: 4}

	e, err := New(primary, validation, testConfig(2))
	require.NoError(t, err)

	out, err := e.EvaluateRubric(context.Background(), rubric.Blooms,
		testDocument("Students will explain paging."))
	require.NoError(t, err)

	eval := out.Evaluations[0]
	require.Equal(t, dataset.UnavailableNoSuccessfulRuns, eval.Primary.Unavailable)
	require.Empty(t, eval.Primary.Runs)
	require.Nil(t, eval.Primary.Consistency)

	// The validation judge still succeeded, but with no primary
	// aggregation there is nothing to compare.
	require.NotNil(t, eval.Validation.Consistency)
	require.Nil(t, eval.InterJudge)
	require.Nil(t, out.OverallAgreement)
}

func TestEvaluateRubricContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	primary := &fakeJudge{
		name:  "gemini-2.0-flash",
		level: 4,
	}
	cancelling := judgeFunc(func(c context.Context, request *judge.Request) (*score.Run, error) {
		if request.RunNumber == 2 {
			cancel()
			return nil, c.Err()
		}
		return primary.Score(c, request)
	})

	e, err := New(named{"gemini-2.0-flash", cancelling}, nil, testConfig(3))
	require.NoError(t, err)

	_, err = e.EvaluateRubric(ctx, rubric.ABCD,
		testDocument("Students will explain paging."))
	require.ErrorIs(t, err, context.Canceled)
}

type judgeFunc func(context.Context, *judge.Request) (*score.Run, error)

type named struct {
	name string
	fn   judgeFunc
}

func (n named) Name() string { return n.name }

func (n named) Score(ctx context.Context, request *judge.Request) (*score.Run, error) {
	return n.fn(ctx, request)
}

func TestEvaluateRubricRejectsBadInput(t *testing.T) {
	primary := &fakeJudge{name: "gemini-2.0-flash", level: 4}
	e, err := New(primary, nil, testConfig(1))
	require.NoError(t, err)

	_, err = e.EvaluateRubric(context.Background(), rubric.ID("likert"),
		testDocument("Students will explain paging."))
	require.Error(t, err)

	_, err = e.EvaluateRubric(context.Background(), rubric.ABCD, &dataset.Document{})
	require.Error(t, err)
}

func TestNewValidatesArguments(t *testing.T) {
	_, err := New(nil, nil, DefaultConfig())
	require.Error(t, err)

	_, err = New(&fakeJudge{name: "j"}, nil, Config{Runs: 0})
	require.Error(t, err)

	_, err = New(&fakeJudge{name: "j"}, nil, Config{Runs: 1, CallDelay: -time.Second})
	require.Error(t, err)
}

func TestThrottleSkipsFirstCall(t *testing.T) {
	th := &throttle{delay: 20 * time.Millisecond}
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, th.wait(ctx))
	require.Less(t, time.Since(start), 10*time.Millisecond)

	start = time.Now()
	require.NoError(t, th.wait(ctx))
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
