/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"errors"
	"fmt"

	"chainguard.dev/loeval/metrics"
	"chainguard.dev/loeval/retry"
)

// meterName is the unified meter shared by all judges; the model name is a
// dimension on the recorded metrics.
const meterName = "chainguard.loeval"

// options holds the provider-independent judge configuration.
type options struct {
	model       string
	temperature float64
	maxTokens   int64
	retry       retry.Config
	metrics     *metrics.Judge
}

func defaultOptions(model string) options {
	return options{
		model:       model,
		temperature: 0.3,
		maxTokens:   8192,
		retry:       retry.DefaultConfig(),
		metrics:     metrics.NewJudge(meterName),
	}
}

// Option configures a judge.
type Option func(*options) error

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(o *options) error {
		if model == "" {
			return errors.New("model cannot be empty")
		}
		o.model = model
		return nil
	}
}

// WithTemperature sets the sampling temperature. Scoring calls default to
// 0.3 for repeatable judgments with enough variation to measure consistency.
func WithTemperature(temperature float64) Option {
	return func(o *options) error {
		if temperature < 0 || temperature > 2 {
			return fmt.Errorf("temperature %v outside valid range [0, 2]", temperature)
		}
		o.temperature = temperature
		return nil
	}
}

// WithMaxTokens sets the response token budget.
func WithMaxTokens(maxTokens int64) Option {
	return func(o *options) error {
		if maxTokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", maxTokens)
		}
		o.maxTokens = maxTokens
		return nil
	}
}

// WithRetryConfig overrides the backoff policy for transient provider errors.
func WithRetryConfig(cfg retry.Config) Option {
	return func(o *options) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid retry config: %w", err)
		}
		o.retry = cfg
		return nil
	}
}
