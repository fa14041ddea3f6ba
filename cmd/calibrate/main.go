/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main compares automated evaluation results against human expert
// scores and reports whether the automated judge agrees well enough with
// humans to trust its scores.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"chainguard.dev/loeval/calibration"
	"chainguard.dev/loeval/dataset"
	"chainguard.dev/loeval/rubric"
)

type config struct {
	// CalibrationFile holds the human expert scores.
	CalibrationFile string `env:"CALIBRATION_FILE,required"`

	// ResultsDir holds the evaluation documents produced by the
	// evaluate command.
	ResultsDir string `env:"RESULTS_DIR,default=results"`

	ReportFile string `env:"REPORT_FILE,default=calibration_report.md"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	entries, err := dataset.LoadCalibrationSet(cfg.CalibrationFile)
	if err != nil {
		clog.FatalContextf(ctx, "loading calibration set: %v", err)
	}
	clog.InfoContextf(ctx, "Loaded %d calibration entries from %s",
		len(entries), cfg.CalibrationFile)

	records, err := buildRecords(ctx, cfg.ResultsDir, entries)
	if err != nil {
		clog.FatalContextf(ctx, "joining human and automated scores: %v", err)
	}

	report, err := calibration.Analyze(records)
	if err != nil {
		clog.FatalContextf(ctx, "analyzing calibration: %v", err)
	}

	if err := os.WriteFile(cfg.ReportFile, []byte(calibration.Render(report)), 0644); err != nil {
		clog.FatalContextf(ctx, "writing report: %v", err)
	}

	clog.InfoContextf(ctx, "Calibration report written to %s", cfg.ReportFile)
	clog.InfoContextf(ctx, "Exact agreement %.1f%%, within one point %.1f%%, MAE %.2f",
		report.ExactPct, report.WithinOnePct, report.MAE)
	if report.Publishable {
		clog.InfoContextf(ctx, "Calibration thresholds met; scores are publishable")
	} else {
		clog.WarnContextf(ctx, "Calibration thresholds NOT met: %v", report.FailedThresholds)
	}
}

// buildRecords joins every human-scored criterion with the automated mean
// score for the same objective and criterion. Entries whose objective was not
// evaluated (or produced no successful runs) are skipped with a warning so a
// partial evaluation still yields a report.
func buildRecords(ctx context.Context, resultsDir string, entries []dataset.CalibrationEntry) ([]calibration.Record, error) {
	docs := make(map[rubric.ID]*dataset.EvaluationDocument)
	var records []calibration.Record

	for _, entry := range entries {
		id, err := entry.RubricID()
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", entry.ID, err)
		}

		doc, ok := docs[id]
		if !ok {
			path := dataset.DocumentPath(resultsDir, id)
			doc, err = dataset.LoadDocument(path)
			if err != nil {
				return nil, fmt.Errorf("loading %s results: %w", id, err)
			}
			docs[id] = doc
		}

		n, err := entry.ObjectiveNumber()
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", entry.ID, err)
		}
		automated, err := doc.AutomatedScores(n)
		if err != nil {
			clog.WarnContextf(ctx, "Skipping %s: %v", entry.ID, err)
			continue
		}

		criteria, err := rubric.Criteria(id)
		if err != nil {
			return nil, err
		}
		for _, criterion := range criteria {
			human, ok := entry.HumanScores[criterion]
			if !ok {
				continue
			}
			mean, ok := automated[criterion]
			if !ok {
				clog.WarnContextf(ctx, "Skipping %s %s: no automated score", entry.ID, criterion)
				continue
			}
			records = append(records, calibration.Record{
				ObjectiveID: entry.ID,
				Rubric:      id,
				Criterion:   criterion,
				Human:       human,
				Automated:   mean,
			})
		}
	}
	return records, nil
}
