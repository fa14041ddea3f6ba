/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// AttributeEnricher enriches metric attributes with additional context.
// This allows callers to add their own contextual attributes without coupling
// judges to specific pipelines (e.g., objective IDs, run numbers, cohort tags).
// The enricher receives base attributes (model, rubric) and returns an
// enriched set.
type AttributeEnricher func(ctx context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue
