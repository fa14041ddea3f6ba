/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/loeval/result"
	"chainguard.dev/loeval/retry"
	"chainguard.dev/loeval/rubric"
	"chainguard.dev/loeval/score"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultGroqModel is the validation judge used for inter-judge agreement.
const DefaultGroqModel = "llama-3.3-70b-versatile"

// groqBaseURL is Groq's OpenAI-compatible endpoint.
const groqBaseURL = "https://api.groq.com/openai/v1"

// groq implements Interface using Groq's OpenAI-compatible API.
type groq struct {
	client openai.Client
	opts   options
}

// NewGroq creates a Groq judge authenticated with an API key.
func NewGroq(apiKey string, opts ...Option) (Interface, error) {
	o := defaultOptions(DefaultGroqModel)
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(groqBaseURL),
	)

	return &groq{client: client, opts: o}, nil
}

// Name implements Interface.
func (g *groq) Name() string { return g.opts.model }

// Score implements Interface.
func (g *groq) Score(ctx context.Context, request *Request) (*score.Run, error) {
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

	clog.FromContext(ctx).With("judge", g.opts.model).
		With("rubric", request.Rubric).
		With("objective", request.ObjectiveIndex).
		With("run", request.RunNumber).
		Info("Scoring learning objective")

	resp, err := retry.WithBackoff(ctx, g.opts.retry, "groq scoring call", isRetryableGroqError,
		func() (*openai.ChatCompletion, error) {
			return g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
				Model:       openai.ChatModel(g.opts.model),
				Temperature: openai.Float(g.opts.temperature),
				MaxTokens:   openai.Int(g.opts.maxTokens),
				Messages: []openai.ChatCompletionMessageParamUnion{
					openai.SystemMessage(systemPrompt(rb)),
					openai.UserMessage(userPrompt),
				},
			})
		})
	if err != nil {
		return nil, fmt.Errorf("groq scoring call failed: %w", err)
	}

	g.opts.metrics.RecordScoreCall(ctx, g.opts.model, request.Rubric.String())
	g.opts.metrics.RecordTokens(ctx, g.opts.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		g.opts.metrics.RecordMalformed(ctx, g.opts.model, request.Rubric.String())
		return nil, &result.MalformedResponseError{Err: errors.New("response contained no choices")}
	}

	run, err := parseRun(resp.Choices[0].Message.Content, request, g.opts.model)
	if err != nil {
		g.opts.metrics.RecordMalformed(ctx, g.opts.model, request.Rubric.String())
		return nil, err
	}
	return run, nil
}

// isRetryableGroqError checks if an error is a retryable Groq API error.
// Returns true for rate limit and transient server errors.
func isRetryableGroqError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 502, 503, 504:
			return true
		}
	}
	return false
}
