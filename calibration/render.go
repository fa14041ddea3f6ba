/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package calibration

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// newReportTable creates a table writer with the formatting shared by all
// calibration report sections.
func newReportTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 100,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// fmtStat renders a possibly-undefined statistic. Undefined stays visible as
// text rather than masquerading as a number.
func fmtStat(v *float64, digits int) string {
	if v == nil {
		return "undefined"
	}
	return fmt.Sprintf("%.*f", digits, *v)
}

// Render formats a calibration report as markdown: the aggregate metrics
// table, the publication verdict, per-record comparisons, and
// recommendations.
func Render(r *Report) string {
	var sb strings.Builder
	sb.WriteString("# Calibration Report: Human vs Automated Agreement\n\n")

	var buf bytes.Buffer
	metrics := newReportTable([]string{"Metric", "Value", "Interpretation"}, &buf)
	_ = metrics.Append([]string{"Comparisons", fmt.Sprintf("%d", r.Comparisons), ""})
	_ = metrics.Append([]string{"Exact Agreement", fmt.Sprintf("%.2f%%", r.ExactPct), ""})
	_ = metrics.Append([]string{"Within-One Agreement", fmt.Sprintf("%.2f%%", r.WithinOnePct), r.AgreementQuality})
	_ = metrics.Append([]string{"Mean Absolute Error", fmt.Sprintf("%.2f", r.MAE), ""})
	_ = metrics.Append([]string{"Pearson Correlation", fmtStat(r.Pearson, 3), ""})
	_ = metrics.Append([]string{"Cohen's Kappa", fmtStat(r.Kappa, 3), r.KappaInterpretation})
	_ = metrics.Append([]string{"Mean Bias", fmt.Sprintf("%+.2f", r.MeanBias), r.BiasInterpretation})
	_ = metrics.Render()
	sb.WriteString(buf.String())
	sb.WriteString("\n")

	if r.Publishable {
		sb.WriteString("## Verdict: acceptable for publication\n\n")
		sb.WriteString(fmt.Sprintf("- Cohen's Kappa >= %.2f (acceptable inter-rater reliability)\n", KappaThreshold))
		sb.WriteString(fmt.Sprintf("- Within-one agreement >= %.0f%% (good practical agreement)\n", WithinOneThreshold))
	} else {
		sb.WriteString("## Verdict: not acceptable for publication\n\n")
		for _, failed := range r.FailedThresholds {
			sb.WriteString(fmt.Sprintf("- %s\n", failed))
		}
	}
	sb.WriteString("\n")

	if len(r.Records) > 0 {
		sb.WriteString("## Criterion Comparisons\n\n")
		buf.Reset()
		rows := newReportTable([]string{"Objective", "Rubric", "Criterion", "Human", "Automated", "Agreement"}, &buf)
		for _, rec := range r.Records {
			_ = rows.Append([]string{
				rec.ObjectiveID,
				rec.Rubric.String(),
				rec.Criterion,
				fmt.Sprintf("%d", rec.Human),
				fmt.Sprintf("%.2f", rec.Automated),
				rec.Agreement(),
			})
		}
		_ = rows.Render()
		sb.WriteString(buf.String())
		sb.WriteString("\n")
	}

	if len(r.Recommendations) > 0 {
		sb.WriteString("## Recommendations\n\n")
		for _, rec := range r.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
	}

	return sb.String()
}
