/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"chainguard.dev/loeval/consistency"
	"chainguard.dev/loeval/rubric"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}
	return path
}

func TestLoadObjectives(t *testing.T) {
	path := writeFile(t, "objectives.json", `{
  "course_title": "Advanced Operating Systems",
  "course_code": "CS3.304",
  "learning_objectives": [
    "Students will implement the Banker's algorithm with 90% test accuracy",
    "Students will compare FCFS and SJF scheduling given a workload trace"
  ]
}`)
	doc, err := LoadObjectives(path)
	if err != nil {
		t.Fatalf("LoadObjectives() = %v", err)
	}
	if doc.CourseTitle != "Advanced Operating Systems" || doc.CourseCode != "CS3.304" {
		t.Errorf("course metadata = %q %q", doc.CourseTitle, doc.CourseCode)
	}
	if len(doc.LearningObjectives) != 2 {
		t.Errorf("got %d objectives, want 2", len(doc.LearningObjectives))
	}
}

func TestLoadObjectivesRejectsEmpty(t *testing.T) {
	path := writeFile(t, "objectives.json", `{"learning_objectives": []}`)
	if _, err := LoadObjectives(path); err == nil {
		t.Error("LoadObjectives() = nil, want error for empty document")
	}

	path = writeFile(t, "blank.json", `{"learning_objectives": ["ok", "  "]}`)
	if _, err := LoadObjectives(path); err == nil {
		t.Error("LoadObjectives() = nil, want error for blank objective")
	}

	if _, err := LoadObjectives(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadObjectives() = nil, want error for missing file")
	}
}

func TestLoadCalibrationSet(t *testing.T) {
	path := writeFile(t, "calibration_set.json", `{
  "calibration_set": [
    {
      "lo_id": "ABCD_LO_1",
      "framework": "ABCD",
      "learning_objective": "Students will analyze deadlock scenarios",
      "human_scores": {"audience": 5, "behavior": 4, "condition": 3, "degree": 2},
      "human_notes": "Clear audience, missing explicit conditions"
    },
    {
      "lo_id": "SMART_LO_2",
      "framework": "SMART",
      "learning_objective": "Students will implement a scheduler",
      "human_scores": {"specific": 4, "measurable": 3, "achievable": 5, "relevant": 5, "time_bound": 4}
    }
  ]
}`)
	entries, err := LoadCalibrationSet(path)
	if err != nil {
		t.Fatalf("LoadCalibrationSet() = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	id, err := entries[0].RubricID()
	if err != nil || id != rubric.ABCD {
		t.Errorf("RubricID() = %v, %v; want abcd", id, err)
	}
	n, err := entries[1].ObjectiveNumber()
	if err != nil || n != 2 {
		t.Errorf("ObjectiveNumber() = %d, %v; want 2", n, err)
	}
}

func TestLoadCalibrationSetValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{{
		name:    "empty set",
		content: `{"calibration_set": []}`,
	}, {
		name: "unknown framework",
		content: `{"calibration_set": [{"lo_id": "X_LO_1", "framework": "LIKERT",
			"learning_objective": "x", "human_scores": {"audience": 3}}]}`,
	}, {
		name: "foreign criterion",
		content: `{"calibration_set": [{"lo_id": "ABCD_LO_1", "framework": "ABCD",
			"learning_objective": "x", "human_scores": {"specific": 3}}]}`,
	}, {
		name: "score out of scale",
		content: `{"calibration_set": [{"lo_id": "ABCD_LO_1", "framework": "ABCD",
			"learning_objective": "x", "human_scores": {"audience": 6}}]}`,
	}, {
		name: "no objective number",
		content: `{"calibration_set": [{"lo_id": "ABCD_LO", "framework": "ABCD",
			"learning_objective": "x", "human_scores": {"audience": 3}}]}`,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "calibration_set.json", tt.content)
			if _, err := LoadCalibrationSet(path); err == nil {
				t.Error("LoadCalibrationSet() = nil, want error")
			}
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := &EvaluationDocument{
		Rubric:        rubric.ABCD,
		CourseTitle:   "Advanced Operating Systems",
		NumObjectives: 2,
		Evaluations: []ObjectiveEvaluation{{
			LearningObjective: "Students will analyze deadlock scenarios",
			ObjectiveNumber:   1,
			Primary: JudgeEvaluation{
				Model: "gemini-2.0-flash",
				Consistency: &consistency.Analysis{
					Rubric: rubric.ABCD,
					Judge:  "gemini-2.0-flash",
					Runs:   3,
					Criteria: map[string]consistency.Aggregate{
						"audience": {Mean: 4.67, Mode: 5, Min: 4, Max: 5},
					},
				},
			},
		}, {
			LearningObjective: "Students will implement a scheduler",
			ObjectiveNumber:   2,
			Primary: JudgeEvaluation{
				Model:       "gemini-2.0-flash",
				Unavailable: UnavailableNoSuccessfulRuns,
				Failures:    []RunFailure{{RunNumber: 1, Error: "malformed response"}},
			},
		}},
		Metadata: Metadata{PrimaryJudge: "gemini-2.0-flash", Runs: 3, Temperature: 0.3},
	}

	path := DocumentPath(t.TempDir(), rubric.ABCD)
	if err := WriteDocument(path, doc); err != nil {
		t.Fatalf("WriteDocument() = %v", err)
	}
	got, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() = %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("document round trip mismatch (-want +got):\n%s", diff)
	}

	means, err := got.AutomatedScores(1)
	if err != nil {
		t.Fatalf("AutomatedScores(1) = %v", err)
	}
	if means["audience"] != 4.67 {
		t.Errorf("audience mean = %v, want 4.67", means["audience"])
	}

	// A failed objective stays in the document but yields no scores.
	if _, err := got.AutomatedScores(2); err == nil {
		t.Error("AutomatedScores(2) = nil, want error for unavailable objective")
	}
	if _, err := got.AutomatedScores(9); err == nil {
		t.Error("AutomatedScores(9) = nil, want error for unknown objective")
	}
}

func TestDocumentPath(t *testing.T) {
	got := DocumentPath("out", rubric.Blooms)
	want := filepath.Join("out", "evaluation_blooms.json")
	if got != want {
		t.Errorf("DocumentPath() = %q, want %q", got, want)
	}
}
