/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package result extracts structured score payloads from raw model responses.

Judge models are instructed to return only JSON, but in practice responses
arrive wrapped in markdown code fences, prefixed with prose, or both. This
package peels away that wrapping and unmarshals the remaining payload:

	run, err := result.Extract[score.Run](responseText)
	if err != nil {
		var malformed *result.MalformedResponseError
		if errors.As(err, &malformed) {
			// malformed.Raw carries the full response for diagnosis.
		}
	}

Extraction is a pure function of the input text. When no parseable payload
exists, Extract returns *MalformedResponseError with the raw text attached;
it never falls back to a default score, since a fabricated value would bias
every statistic computed downstream.
*/
package result
