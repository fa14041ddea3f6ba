/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Judge provides OpenTelemetry metrics for rubric scoring calls.
// It includes counters for token usage (prompt and completion), scoring calls,
// and malformed responses, with support for graceful degradation if metric
// creation fails.
type Judge struct {
	meter            metric.Meter
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	scoreCalls       metric.Int64Counter
	malformed        metric.Int64Counter
	attrEnricher     AttributeEnricher
}

// NewJudge creates a new Judge metrics instance with the specified meter name.
// Uses graceful degradation: if any metric counter fails to initialize, logs a
// warning and uses a no-op counter instead of failing entirely.
//
// The meterName should be unified across all judges (e.g., "chainguard.loeval")
// with the model name serving as a dimension on the recorded metrics to
// differentiate between different judges (Gemini, Groq, Claude).
func NewJudge(meterName string) *Judge {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	// Create prompt tokens counter with graceful degradation
	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	// Create completion tokens counter with graceful degradation
	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	// Create scoring call counter with graceful degradation
	scoreCalls, err := meter.Int64Counter("judge.score.calls",
		metric.WithDescription("The number of rubric scoring calls made"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create scoring call counter, metrics will be disabled", "error", err, "meter", meterName)
		scoreCalls = noop.Int64Counter{}
	}

	// Create malformed response counter with graceful degradation
	malformed, err := meter.Int64Counter("judge.score.malformed",
		metric.WithDescription("The number of scoring responses that could not be parsed"),
		metric.WithUnit("{responses}"))
	if err != nil {
		slog.Warn("Failed to create malformed response counter, metrics will be disabled", "error", err, "meter", meterName)
		malformed = noop.Int64Counter{}
	}

	return &Judge{
		meter:            meter,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		scoreCalls:       scoreCalls,
		malformed:        malformed,
	}
}

// SetAttributeEnricher sets the attribute enricher for this metrics instance.
// The enricher is called before recording each metric to add contextual
// attributes (e.g., objective_id, rubric, run).
func (m *Judge) SetAttributeEnricher(enricher AttributeEnricher) {
	m.attrEnricher = enricher
}

// RecordTokens records prompt and completion token usage with optional enrichment.
// The model parameter is added as a base attribute, and the enricher (if set)
// can add additional contextual attributes.
func (m *Judge) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64, attrs ...attribute.KeyValue) {
	baseAttrs := []attribute.KeyValue{
		attribute.String("model", model),
	}

	if m.attrEnricher != nil {
		baseAttrs = m.attrEnricher(ctx, baseAttrs)
	}

	baseAttrs = append(baseAttrs, attrs...)

	m.promptTokens.Add(ctx, promptTokens, metric.WithAttributes(baseAttrs...))
	m.completionTokens.Add(ctx, completionTokens, metric.WithAttributes(baseAttrs...))
}

// RecordScoreCall records one rubric scoring call with optional enrichment.
// The model and rubric parameters are added as base attributes, and the
// enricher (if set) can add additional contextual attributes.
func (m *Judge) RecordScoreCall(ctx context.Context, model, rubric string, attrs ...attribute.KeyValue) {
	baseAttrs := []attribute.KeyValue{
		attribute.String("model", model),
		attribute.String("rubric", rubric),
	}

	if m.attrEnricher != nil {
		baseAttrs = m.attrEnricher(ctx, baseAttrs)
	}

	baseAttrs = append(baseAttrs, attrs...)

	m.scoreCalls.Add(ctx, 1, metric.WithAttributes(baseAttrs...))
}

// RecordMalformed records a scoring response that failed structured extraction.
func (m *Judge) RecordMalformed(ctx context.Context, model, rubric string, attrs ...attribute.KeyValue) {
	baseAttrs := []attribute.KeyValue{
		attribute.String("model", model),
		attribute.String("rubric", rubric),
	}

	if m.attrEnricher != nil {
		baseAttrs = m.attrEnricher(ctx, baseAttrs)
	}

	baseAttrs = append(baseAttrs, attrs...)

	m.malformed.Add(ctx, 1, metric.WithAttributes(baseAttrs...))
}
