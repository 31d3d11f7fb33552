// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxFindingsToShow is the default number of findings to display
	maxFindingsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScoreReport outputs a human-readable summary of the quality/risk report.
func (p *Printer) PrintScoreReport(report *types.ScoreReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:    %d/100 (%s)\n", report.OverallScore, report.OverallRating))
	sb.WriteString(fmt.Sprintf("Confidence: %s\n", report.Confidence))
	sb.WriteString("\n")

	sb.WriteString("Categories:\n")
	for _, cat := range report.Categories {
		sb.WriteString(fmt.Sprintf("  %-10s %3d  %s\n", cat.Name, cat.Score, cat.Risk))
	}

	if report.LockedFindingsCount > 0 {
		sb.WriteString(fmt.Sprintf("\n%d more findings in the full report", report.LockedFindingsCount))
	}

	p.printBox("QUOTE SCORE REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFindings outputs the severity-tagged preview findings.
func (p *Printer) PrintFindings(findings []types.PreviewFinding) {
	if len(findings) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(findings), maxFindingsToShow)
	for i := 0; i < count; i++ {
		f := findings[i]
		marker := "•"
		switch f.Severity {
		case types.SeverityRisk:
			marker = "✗"
		case types.SeverityWarning:
			marker = "⚠"
		case types.SeverityPositive:
			marker = "✓"
		}
		text := f.Text
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, text))
	}

	if len(findings) > maxFindingsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more findings", len(findings)-maxFindingsToShow))
	}

	p.printBox("PREVIEW FINDINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPricing outputs the benchmark position alongside the unit estimate
// and its evidence trail.
func (p *Printer) PrintPricing(pricing *types.PricingClassification, est *types.UnitEstimate) {
	if pricing == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Position:   %s\n", pricing.PricingPositionLabel))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", pricing.PricingConfidence))
	if pricing.PctVsMidpoint != nil {
		sb.WriteString(fmt.Sprintf("Vs midpoint: %+.1f%%\n", *pricing.PctVsMidpoint))
	}
	if pricing.EstimatedOverageMid != nil && *pricing.EstimatedOverageMid > 0 {
		sb.WriteString(fmt.Sprintf("Est. overage: $%.2f\n", *pricing.EstimatedOverageMid))
	}

	if est != nil {
		sb.WriteString("\n")
		if est.JobUnits != nil {
			sb.WriteString(fmt.Sprintf("Job units:  %.1f squares\n", *est.JobUnits))
		}
		if est.EffectivePerSquare != nil {
			sb.WriteString(fmt.Sprintf("Per square: $%.2f\n", *est.EffectivePerSquare))
		}
		if len(est.Evidence) > 0 {
			sb.WriteString("Evidence:\n")
			for _, e := range est.Evidence {
				sb.WriteString(fmt.Sprintf("  • %s\n", e))
			}
		}
	}

	p.printBox("PRICING BENCHMARK", strings.TrimSuffix(sb.String(), "\n"))
}
