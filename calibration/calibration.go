/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package calibration measures how well automated judge scores track human
// expert scores on a manually graded calibration set, and decides whether
// the agreement clears the publication thresholds.
package calibration

import (
	"errors"
	"fmt"
	"math"

	"chainguard.dev/loeval/rubric"
	"chainguard.dev/loeval/score"
	"chainguard.dev/loeval/stats"
)

// Publication thresholds (Landis & Koch, 1977 for the Kappa band).
const (
	// KappaThreshold is the minimum Cohen's Kappa for acceptable
	// inter-rater reliability.
	KappaThreshold = 0.40
	// WithinOneThreshold is the minimum within-one-point agreement
	// percentage for acceptable practical agreement.
	WithinOneThreshold = 60.0
)

// Record pairs one human criterion score with the corresponding automated
// score.
type Record struct {
	ObjectiveID string    `json:"lo_id"`
	Rubric      rubric.ID `json:"rubric"`
	Criterion   string    `json:"criterion"`
	Human       int       `json:"human"`
	Automated   float64   `json:"automated"`
}

// Agreement classifies one record's human/automated difference.
func (r Record) Agreement() string {
	diff := math.Round(r.Automated) - float64(r.Human)
	switch {
	case diff == 0:
		return "exact"
	case math.Abs(diff) <= 1:
		return "within_1"
	default:
		return "divergent"
	}
}

// Report is the human-vs-automated agreement analysis over a calibration set.
type Report struct {
	// Comparisons is the number of criterion score pairs analyzed.
	Comparisons int `json:"comparisons"`

	ExactPct     float64 `json:"exact_agreement_pct"`
	WithinOnePct float64 `json:"within_one_agreement_pct"`
	MAE          float64 `json:"mean_absolute_error"`
	// MeanBias is automated minus human; positive means the judge scores
	// higher than the human grader (lenient).
	MeanBias float64 `json:"mean_bias"`

	// Pearson and Kappa are nil when the statistic is undefined for the
	// data (too few pairs, or a constant rater). They are never numeric
	// placeholders.
	Pearson *float64 `json:"pearson_correlation"`
	Kappa   *float64 `json:"cohens_kappa"`

	KappaInterpretation string `json:"kappa_interpretation"`
	AgreementQuality    string `json:"agreement_quality"`
	BiasInterpretation  string `json:"bias_interpretation"`

	// Publishable holds when Kappa >= 0.40 and within-one agreement
	// >= 60%. FailedThresholds names each threshold that was missed.
	Publishable      bool     `json:"suitable_for_paper"`
	FailedThresholds []string `json:"failed_thresholds,omitempty"`

	Recommendations []string `json:"recommendations"`

	Records []Record `json:"records"`
}

// InterpretKappa maps a Kappa value to its Landis-Koch band.
func InterpretKappa(kappa float64) string {
	switch {
	case kappa < 0:
		return "Poor (worse than chance)"
	case kappa < 0.20:
		return "Slight"
	case kappa < 0.40:
		return "Fair"
	case kappa < 0.60:
		return "Moderate"
	case kappa < 0.80:
		return "Substantial"
	default:
		return "Almost Perfect"
	}
}

func interpretAgreement(withinOnePct float64) string {
	switch {
	case withinOnePct >= 80:
		return "Excellent (most scores within one point)"
	case withinOnePct >= 60:
		return "Good (majority within one point)"
	case withinOnePct >= 40:
		return "Moderate (some disagreement)"
	default:
		return "Poor (significant divergence)"
	}
}

func interpretBias(bias float64) string {
	switch {
	case math.Abs(bias) < 0.3:
		return "No systematic bias"
	case bias > 0:
		return fmt.Sprintf("Automated scores %.1f points higher on average (lenient)", math.Abs(bias))
	default:
		return fmt.Sprintf("Automated scores %.1f points lower on average (strict)", math.Abs(bias))
	}
}

// Analyze computes the agreement report for a set of calibration records.
func Analyze(records []Record) (*Report, error) {
	if len(records) == 0 {
		return nil, errors.New("no calibration records to analyze")
	}

	human := make([]float64, 0, len(records))
	automated := make([]float64, 0, len(records))
	humanInts := make([]int, 0, len(records))
	autoInts := make([]int, 0, len(records))
	exact, within := 0, 0
	for _, r := range records {
		if r.Human < 1 || r.Human > 5 {
			return nil, fmt.Errorf("human score %d for %s/%s outside 1-5 scale", r.Human, r.ObjectiveID, r.Criterion)
		}
		human = append(human, float64(r.Human))
		automated = append(automated, r.Automated)
		rounded := int(math.Round(r.Automated))
		humanInts = append(humanInts, r.Human)
		autoInts = append(autoInts, rounded)
		if rounded == r.Human {
			exact++
		}
		if math.Abs(float64(rounded)-float64(r.Human)) <= 1 {
			within++
		}
	}

	n := float64(len(records))
	mae, err := stats.MeanAbsoluteError(human, automated)
	if err != nil {
		return nil, err
	}
	var biasSum float64
	for i := range human {
		biasSum += automated[i] - human[i]
	}

	report := &Report{
		Comparisons:  len(records),
		ExactPct:     score.Round2(float64(exact) / n * 100),
		WithinOnePct: score.Round2(float64(within) / n * 100),
		MAE:          score.Round2(mae),
		MeanBias:     score.Round2(biasSum / n),
		Records:      records,
	}

	if r, err := stats.Pearson(human, automated); err == nil {
		rounded := math.Round(r*1000) / 1000
		report.Pearson = &rounded
	}
	if k, err := stats.CohensKappa(humanInts, autoInts); err == nil {
		rounded := math.Round(k*1000) / 1000
		report.Kappa = &rounded
		report.KappaInterpretation = InterpretKappa(rounded)
	} else {
		report.KappaInterpretation = "Undefined (constant rater)"
	}

	report.AgreementQuality = interpretAgreement(report.WithinOnePct)
	report.BiasInterpretation = interpretBias(report.MeanBias)

	if report.Kappa == nil {
		report.FailedThresholds = append(report.FailedThresholds,
			"Cohen's Kappa is undefined for this calibration set")
	} else if *report.Kappa < KappaThreshold {
		report.FailedThresholds = append(report.FailedThresholds,
			fmt.Sprintf("Cohen's Kappa %.3f below %.2f", *report.Kappa, KappaThreshold))
	}
	if report.WithinOnePct < WithinOneThreshold {
		report.FailedThresholds = append(report.FailedThresholds,
			fmt.Sprintf("within-one agreement %.2f%% below %.0f%%", report.WithinOnePct, WithinOneThreshold))
	}
	report.Publishable = len(report.FailedThresholds) == 0

	report.Recommendations = recommendations(report)
	return report, nil
}

// recommendations translates missed thresholds and systematic bias into
// concrete rubric and calibration-set actions.
func recommendations(r *Report) []string {
	var recs []string
	if r.Kappa == nil || *r.Kappa < KappaThreshold {
		recs = append(recs,
			"Cohen's Kappa below 0.40: add harder constraints to rubric prompts",
			"Review divergent cases manually to identify systematic issues")
	}
	if math.Abs(r.MeanBias) > 0.5 {
		if r.MeanBias > 0 {
			recs = append(recs, fmt.Sprintf("Judge is %.1f points too lenient: tighten rubric language", r.MeanBias))
		} else {
			recs = append(recs, fmt.Sprintf("Judge is %.1f points too strict: add examples of acceptable objectives", math.Abs(r.MeanBias)))
		}
	}
	if r.WithinOnePct < WithinOneThreshold {
		recs = append(recs,
			"Within-one agreement below 60%: increase calibration set size and iterate",
			"Consider using human scores as ground truth when refining prompts")
	}
	if r.Publishable {
		recs = append(recs, "Metrics are acceptable for publication: report Kappa and within-one agreement")
	}
	return recs
}
