/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/loeval/retry"
	"chainguard.dev/loeval/rubric"
	"chainguard.dev/loeval/score"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/chainguard-dev/clog"
)

// DefaultClaudeModel is the optional third judge.
const DefaultClaudeModel = "claude-sonnet-4-5"

// claude implements Interface using the Anthropic API.
type claude struct {
	client anthropic.Client
	opts   options
}

// NewClaude creates a Claude judge authenticated with an API key.
func NewClaude(apiKey string, opts ...Option) (Interface, error) {
	o := defaultOptions(DefaultClaudeModel)
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &claude{client: client, opts: o}, nil
}

// Name implements Interface.
func (c *claude) Name() string { return c.opts.model }

// Score implements Interface.
func (c *claude) Score(ctx context.Context, request *Request) (*score.Run, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	rb, err := rubric.Get(request.Rubric)
	if err != nil {
		return nil, err
	}
	userPrompt, err := buildUserPrompt(request)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	clog.FromContext(ctx).With("judge", c.opts.model).
		With("rubric", request.Rubric).
		With("objective", request.ObjectiveIndex).
		With("run", request.RunNumber).
		Info("Scoring learning objective")

	msg, err := retry.WithBackoff(ctx, c.opts.retry, "claude scoring call", isRetryableClaudeError,
		func() (*anthropic.Message, error) {
			return c.client.Messages.New(ctx, anthropic.MessageNewParams{
				Model:       anthropic.Model(c.opts.model),
				MaxTokens:   c.opts.maxTokens,
				Temperature: anthropic.Float(c.opts.temperature),
				System: []anthropic.TextBlockParam{{
					Text: systemPrompt(rb),
				}},
				Messages: []anthropic.MessageParam{
					anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
				},
			})
		})
	if err != nil {
		return nil, fmt.Errorf("claude scoring call failed: %w", err)
	}

	c.opts.metrics.RecordScoreCall(ctx, c.opts.model, request.Rubric.String())
	c.opts.metrics.RecordTokens(ctx, c.opts.model, msg.Usage.InputTokens, msg.Usage.OutputTokens)

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	run, err := parseRun(sb.String(), request, c.opts.model)
	if err != nil {
		c.opts.metrics.RecordMalformed(ctx, c.opts.model, request.Rubric.String())
		return nil, err
	}
	return run, nil
}

// isRetryableClaudeError checks if an error is a retryable Anthropic API
// error. Returns true for rate limit, overloaded, and transient server errors.
func isRetryableClaudeError(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 503, 504, 529:
			return true
		}
	}
	return false
}
