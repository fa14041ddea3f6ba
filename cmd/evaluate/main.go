/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the learning objective evaluation pipeline: it
// scores every objective in an input document against the configured rubrics
// with a primary and an optional validation judge, then writes one evaluation
// document per rubric.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"chainguard.dev/loeval/dataset"
	"chainguard.dev/loeval/judge"
	"chainguard.dev/loeval/pipeline"
	"chainguard.dev/loeval/rubric"
)

type config struct {
	InputFile string `env:"INPUT_FILE,required"`
	OutputDir string `env:"OUTPUT_DIR,default=results"`

	// Rubrics selects which frameworks to evaluate against.
	Rubrics []string `env:"RUBRICS,default=abcd,smart,blooms"`

	Runs        int           `env:"RUNS,default=3"`
	Temperature float64       `env:"TEMPERATURE,default=0.3"`
	CallDelay   time.Duration `env:"CALL_DELAY,default=5s"`

	PrimaryJudge    string `env:"PRIMARY_JUDGE,default=gemini"`
	ValidationJudge string `env:"VALIDATION_JUDGE,default=groq"`

	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GroqAPIKey      string `env:"GROQ_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`

	// Optional course context passed to the judges.
	CourseLevel string `env:"COURSE_LEVEL"`
	CourseFocus string `env:"COURSE_FOCUS"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	doc, err := dataset.LoadObjectives(cfg.InputFile)
	if err != nil {
		clog.FatalContextf(ctx, "loading objectives: %v", err)
	}
	clog.InfoContextf(ctx, "Loaded %d learning objectives from %s",
		len(doc.LearningObjectives), cfg.InputFile)

	primary, err := newJudge(ctx, cfg, cfg.PrimaryJudge)
	if err != nil {
		clog.FatalContextf(ctx, "creating primary judge: %v", err)
	}
	var validation judge.Interface
	if cfg.ValidationJudge != "" && cfg.ValidationJudge != "none" {
		validation, err = newJudge(ctx, cfg, cfg.ValidationJudge)
		if err != nil {
			clog.FatalContextf(ctx, "creating validation judge: %v", err)
		}
	}

	evaluator, err := pipeline.New(primary, validation, pipeline.Config{
		Runs:        cfg.Runs,
		CallDelay:   cfg.CallDelay,
		Temperature: cfg.Temperature,
		Course: judge.CourseContext{
			Title: doc.CourseTitle,
			Code:  doc.CourseCode,
			Level: cfg.CourseLevel,
			Focus: cfg.CourseFocus,
		},
	})
	if err != nil {
		clog.FatalContextf(ctx, "creating evaluator: %v", err)
	}

	for _, raw := range cfg.Rubrics {
		id, err := rubric.ParseID(raw)
		if err != nil {
			clog.FatalContextf(ctx, "parsing rubric: %v", err)
		}

		out, err := evaluator.EvaluateRubric(ctx, id, doc)
		if err != nil {
			clog.FatalContextf(ctx, "evaluating %s rubric: %v", id, err)
		}

		path := dataset.DocumentPath(cfg.OutputDir, id)
		if err := dataset.WriteDocument(path, out); err != nil {
			clog.FatalContextf(ctx, "writing %s document: %v", id, err)
		}
		clog.InfoContextf(ctx, "Wrote %s evaluation to %s", id, path)
	}
}

// newJudge constructs the judge named by provider, using the temperature and
// API key from the configuration.
func newJudge(ctx context.Context, cfg config, provider string) (judge.Interface, error) {
	opts := []judge.Option{judge.WithTemperature(cfg.Temperature)}
	switch provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini judge")
		}
		return judge.NewGemini(ctx, cfg.GeminiAPIKey, opts...)
	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required for the groq judge")
		}
		return judge.NewGroq(cfg.GroqAPIKey, opts...)
	case "claude":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for the claude judge")
		}
		return judge.NewClaude(cfg.AnthropicAPIKey, opts...)
	default:
		return nil, fmt.Errorf("unknown judge provider %q (want gemini, groq, or claude)", provider)
	}
}
