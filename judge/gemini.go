/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"fmt"
	"strings"

	"chainguard.dev/loeval/retry"
	"chainguard.dev/loeval/rubric"
	"chainguard.dev/loeval/score"
	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

// DefaultGeminiModel is the primary scoring judge.
const DefaultGeminiModel = "gemini-2.0-flash"

// gemini implements Interface using the Gemini API.
type gemini struct {
	client *genai.Client
	opts   options
}

// NewGemini creates a Gemini judge authenticated with an API key.
func NewGemini(ctx context.Context, apiKey string, opts ...Option) (Interface, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	o := defaultOptions(DefaultGeminiModel)
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return &gemini{client: client, opts: o}, nil
}

// Name implements Interface.
func (g *gemini) Name() string { return g.opts.model }

// Score implements Interface.
func (g *gemini) Score(ctx context.Context, request *Request) (*score.Run, error) {
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

	config := &genai.GenerateContentConfig{
		Temperature:      ptr(float32(g.opts.temperature)),
		MaxOutputTokens:  int32(g.opts.maxTokens),
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: systemPrompt(rb),
			}},
		},
	}

	clog.FromContext(ctx).With("judge", g.opts.model).
		With("rubric", request.Rubric).
		With("objective", request.ObjectiveIndex).
		With("run", request.RunNumber).
		Info("Scoring learning objective")

	resp, err := retry.WithBackoff(ctx, g.opts.retry, "gemini scoring call", isRetryableGeminiError,
		func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.opts.model, genai.Text(userPrompt), config)
		})
	if err != nil {
		return nil, fmt.Errorf("gemini scoring call failed: %w", err)
	}

	g.opts.metrics.RecordScoreCall(ctx, g.opts.model, request.Rubric.String())
	if resp.UsageMetadata != nil {
		g.opts.metrics.RecordTokens(ctx, g.opts.model,
			int64(resp.UsageMetadata.PromptTokenCount),
			int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	run, err := parseRun(resp.Text(), request, g.opts.model)
	if err != nil {
		g.opts.metrics.RecordMalformed(ctx, g.opts.model, request.Rubric.String())
		return nil, err
	}
	return run, nil
}

// isRetryableGeminiError checks if an error is a retryable Gemini API error.
// Returns true for rate limit, quota exhaustion, and transient server errors.
func isRetryableGeminiError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Resource exhausted") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "Overloaded") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "quota exceeded") ||
		strings.Contains(errStr, "Internal error") ||
		strings.Contains(errStr, "server error")
}

func ptr[T any](v T) *T { return &v }
