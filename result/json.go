/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError reports a model response whose score payload could
// not be parsed. It carries the raw response text so callers can log or
// persist it; the extractor never substitutes a default payload, since a
// fabricated score would silently corrupt downstream statistics.
type MalformedResponseError struct {
	// Raw is the unmodified model response text.
	Raw string
	// Err is the underlying parse failure.
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ExtractJSON extracts JSON content from a model response that may be
// wrapped in markdown code fences or surrounded by prose. It looks for a
// ```json block first, then falls back to trimming stray fences, and
// finally to the outermost balanced brace region.
func ExtractJSON(responseText string) string {
	// Search for the first ```json line and collect content until the
	// closing fence.
	lines := strings.Split(responseText, "\n")
	var jsonBuffer bytes.Buffer
	inJSONBlock := false
	foundJSON := false

	for _, line := range lines {
		if !inJSONBlock && strings.TrimSpace(line) == "```json" {
			inJSONBlock = true
			foundJSON = true
			continue
		}
		if inJSONBlock && strings.TrimSpace(line) == "```" {
			break
		}
		if inJSONBlock {
			if jsonBuffer.Len() > 0 {
				jsonBuffer.WriteString("\n")
			}
			jsonBuffer.WriteString(line)
		}
	}

	if foundJSON {
		// An empty ```json block yields an empty string; the caller treats
		// that as a parse failure.
		return strings.TrimSpace(jsonBuffer.String())
	}

	trimmed := strings.TrimSpace(responseText)

	// Strip whole-response fences. These do nothing when absent.
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if strings.HasPrefix(trimmed, "{") {
		return trimmed
	}

	// Last resort: models sometimes lead with prose before the payload.
	// Take the outermost balanced brace region if one exists.
	if region := balancedBraceRegion(trimmed); region != "" {
		return region
	}

	return trimmed
}

// balancedBraceRegion returns the first balanced {...} region in s, or ""
// when none exists. Braces inside JSON strings are skipped.
func balancedBraceRegion(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// Extract extracts JSON content from a model response and unmarshals it
// into T. Parse failures are returned as *MalformedResponseError carrying
// the raw text.
func Extract[T any](responseText string) (T, error) {
	var result T

	jsonContent := ExtractJSON(responseText)

	if err := json.Unmarshal([]byte(jsonContent), &result); err != nil {
		return result, &MalformedResponseError{Raw: responseText, Err: err}
	}

	return result, nil
}
