/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package dataset loads the evaluation inputs (learning objective documents
// and the human-scored calibration set) and defines the per-rubric output
// documents the pipeline writes.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"chainguard.dev/loeval/agreement"
	"chainguard.dev/loeval/consistency"
	"chainguard.dev/loeval/rubric"
	"chainguard.dev/loeval/score"
)

// Document is one learning objectives input file.
type Document struct {
	CourseTitle        string   `json:"course_title"`
	CourseCode         string   `json:"course_code"`
	LearningObjectives []string `json:"learning_objectives"`
}

// LoadObjectives reads and validates a learning objectives document. The
// document is consumed once and never mutated by the pipeline.
func LoadObjectives(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read objectives file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse objectives file %s: %w", path, err)
	}
	if len(doc.LearningObjectives) == 0 {
		return nil, fmt.Errorf("no learning objectives found in %s", path)
	}
	for i, lo := range doc.LearningObjectives {
		if strings.TrimSpace(lo) == "" {
			return nil, fmt.Errorf("learning objective %d in %s is empty", i+1, path)
		}
	}
	return &doc, nil
}

// CalibrationEntry is one manually scored objective from the calibration set.
type CalibrationEntry struct {
	ID                string         `json:"lo_id"`
	Framework         string         `json:"framework"`
	LearningObjective string         `json:"learning_objective"`
	HumanScores       map[string]int `json:"human_scores"`
	HumanNotes        string         `json:"human_notes,omitempty"`
}

// RubricID maps the entry's framework name ("ABCD", "SMART", "BLOOMS") onto
// a rubric identifier.
func (e *CalibrationEntry) RubricID() (rubric.ID, error) {
	return rubric.ParseID(strings.ToLower(e.Framework))
}

// ObjectiveNumber extracts the 1-based objective number from the entry ID
// (e.g. "ABCD_LO_1" is objective 1).
func (e *CalibrationEntry) ObjectiveNumber() (int, error) {
	parts := strings.Split(e.ID, "_")
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("calibration entry %q has no objective number suffix", e.ID)
	}
	return n, nil
}

// LoadCalibrationSet reads and validates the human-scored calibration set.
func LoadCalibrationSet(path string) ([]CalibrationEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calibration set: %w", err)
	}
	var wrapper struct {
		CalibrationSet []CalibrationEntry `json:"calibration_set"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse calibration set %s: %w", path, err)
	}
	if len(wrapper.CalibrationSet) == 0 {
		return nil, fmt.Errorf("calibration set %s is empty", path)
	}
	for _, entry := range wrapper.CalibrationSet {
		id, err := entry.RubricID()
		if err != nil {
			return nil, fmt.Errorf("calibration entry %q: %w", entry.ID, err)
		}
		rb := rubric.MustGet(id)
		for criterion, human := range entry.HumanScores {
			if !rb.HasCriterion(criterion) {
				return nil, fmt.Errorf("calibration entry %q scores unknown criterion %q", entry.ID, criterion)
			}
			if human < 1 || human > 5 {
				return nil, fmt.Errorf("calibration entry %q: human score %d for %q outside 1-5 scale", entry.ID, human, criterion)
			}
		}
		if _, err := entry.ObjectiveNumber(); err != nil {
			return nil, err
		}
	}
	return wrapper.CalibrationSet, nil
}

// UnavailableNoSuccessfulRuns marks an objective whose every repetition
// failed under a judge. The failure is recorded inline; it never aborts the
// rest of the evaluation.
const UnavailableNoSuccessfulRuns = "no_successful_runs"

// RunFailure records one failed repetition.
type RunFailure struct {
	RunNumber int    `json:"run"`
	Error     string `json:"error"`
}

// JudgeEvaluation is one judge's view of one objective: the successful runs,
// their aggregation, and any failed repetitions.
type JudgeEvaluation struct {
	Model       string                `json:"model"`
	Runs        []score.Run           `json:"evaluation_runs"`
	Consistency *consistency.Analysis `json:"consistency_analysis,omitempty"`
	Failures    []RunFailure          `json:"failures,omitempty"`
	// Unavailable is set to UnavailableNoSuccessfulRuns when no
	// repetition produced a valid run.
	Unavailable string `json:"unavailable,omitempty"`
}

// ObjectiveEvaluation is the full record for one objective: both judges'
// runs plus their agreement.
type ObjectiveEvaluation struct {
	LearningObjective string `json:"learning_objective"`
	// ObjectiveNumber is 1-based, matching the calibration set IDs.
	ObjectiveNumber int                   `json:"objective_number"`
	Primary         JudgeEvaluation       `json:"primary_evaluation"`
	Validation      *JudgeEvaluation      `json:"validation_evaluation,omitempty"`
	InterJudge      *agreement.InterJudge `json:"inter_judge_agreement,omitempty"`
}

// Metadata records how an evaluation document was produced.
type Metadata struct {
	PrimaryJudge    string    `json:"primary_judge"`
	ValidationJudge string    `json:"validation_judge,omitempty"`
	Runs            int       `json:"num_runs"`
	Temperature     float64   `json:"temperature"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// EvaluationDocument is the complete output for one rubric.
type EvaluationDocument struct {
	Rubric        rubric.ID             `json:"rubric"`
	CourseTitle   string                `json:"course_title,omitempty"`
	CourseCode    string                `json:"course_code,omitempty"`
	NumObjectives int                   `json:"num_objectives"`
	Evaluations   []ObjectiveEvaluation `json:"evaluations"`
	// OverallAgreement pools inter-judge agreement across all objectives
	// that both judges scored.
	OverallAgreement *agreement.Summary `json:"overall_inter_judge_agreement,omitempty"`
	Metadata         Metadata           `json:"metadata"`
}

// Objective returns the evaluation for a 1-based objective number.
func (d *EvaluationDocument) Objective(n int) (*ObjectiveEvaluation, bool) {
	for i := range d.Evaluations {
		if d.Evaluations[i].ObjectiveNumber == n {
			return &d.Evaluations[i], true
		}
	}
	return nil, false
}

// DocumentPath is the per-rubric output file convention.
func DocumentPath(dir string, id rubric.ID) string {
	return filepath.Join(dir, fmt.Sprintf("evaluation_%s.json", id))
}

// WriteDocument writes one rubric's evaluation document as indented JSON.
func WriteDocument(path string, doc *EvaluationDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal evaluation document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write evaluation document: %w", err)
	}
	return nil
}

// LoadDocument reads a previously written evaluation document.
func LoadDocument(path string) (*EvaluationDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read evaluation document: %w", err)
	}
	var doc EvaluationDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation document %s: %w", path, err)
	}
	return &doc, nil
}

// AutomatedScores returns the primary judge's per-criterion mean scores for
// a 1-based objective number, for joining against human calibration scores.
func (d *EvaluationDocument) AutomatedScores(n int) (map[string]float64, error) {
	obj, ok := d.Objective(n)
	if !ok {
		return nil, fmt.Errorf("objective %d not present in %s evaluation", n, d.Rubric)
	}
	if obj.Primary.Unavailable != "" || obj.Primary.Consistency == nil {
		return nil, fmt.Errorf("objective %d has no successful runs under %s", n, d.Rubric)
	}
	means := make(map[string]float64, len(obj.Primary.Consistency.Criteria))
	for criterion, agg := range obj.Primary.Consistency.Criteria {
		means[criterion] = agg.Mean
	}
	return means, nil
}
