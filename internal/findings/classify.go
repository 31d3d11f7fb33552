// Package findings turns raw finding text from the AI result and the score
// engine into a bounded, deduplicated, severity-tagged list safe to show a
// homeowner.
package findings

import (
	"fmt"
	"math"
	"strings"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

// DefaultMaxItems bounds the preview list when the caller passes no limit.
const DefaultMaxItems = 4

// minFindingLength filters out fragments too short to be meaningful copy.
const minFindingLength = 10

// Deposit rule thresholds, in percent of the quote total.
const (
	depositRiskMin    = 40
	depositWarningMin = 30 // exclusive: exactly 30 reads as positive
)

const defaultWarningText = "Quote details are limited; ask the contractor to itemize scope, warranty and timeline"

// riskKeywords force a finding to risk severity regardless of its source.
// A risk-pattern match is never relabeled to anything softer.
var riskKeywords = []string{
	"deposit",
	"upfront",
	"up front",
	"missing scope",
	"scope gap",
	"warranty gap",
	"limited warranty",
	"timeline unclear",
	"no timeline",
	"payment risk",
}

// warningKeywords mark softer concerns. Text matching neither set still
// classifies as warning: unclassified findings are deliberately never
// defaulted to positive.
var warningKeywords = []string{
	"unclear",
	"missing",
	"vague",
	"confirm",
	"verify",
	"not stated",
	"allowance",
	"exclusion",
}

// Classify builds the preview finding list from the three sources in strict
// priority order: deposit rule first, then AI findings, then score-engine
// findings, each deduplicated by exact trimmed text and cut off at maxItems.
// Absent or invalid inputs degrade to empty lists; the function never fails.
func Classify(depositPercent *float64, aiFindings, scoreFindings []string, maxItems int) []types.PreviewFinding {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	out := make([]types.PreviewFinding, 0, maxItems)
	seen := make(map[string]bool)

	appendFinding := func(f types.PreviewFinding) {
		if len(out) >= maxItems {
			return
		}
		text := strings.TrimSpace(f.Text)
		if len(text) < minFindingLength || seen[text] {
			return
		}
		seen[text] = true
		out = append(out, types.PreviewFinding{Text: text, Severity: f.Severity})
	}

	if deposit := DepositFinding(depositPercent); deposit != nil {
		appendFinding(*deposit)
	}
	for _, text := range aiFindings {
		appendFinding(types.PreviewFinding{Text: text, Severity: ClassifySeverity(text)})
	}
	for _, text := range scoreFindings {
		appendFinding(types.PreviewFinding{Text: text, Severity: ClassifySeverity(text)})
	}

	if len(out) == 0 {
		out = append(out, types.PreviewFinding{Text: defaultWarningText, Severity: types.SeverityWarning})
	}

	return out
}

// DepositFinding applies the deposit rule: at most one entry, always placed
// first when applicable. A nil or non-finite percentage yields no entry.
func DepositFinding(depositPercent *float64) *types.PreviewFinding {
	if depositPercent == nil || math.IsNaN(*depositPercent) || math.IsInf(*depositPercent, 0) {
		return nil
	}
	pct := *depositPercent
	switch {
	case pct >= depositRiskMin:
		return &types.PreviewFinding{
			Text:     fmt.Sprintf("Deposit of %.0f%% requested up front is unusually high for this trade", pct),
			Severity: types.SeverityRisk,
		}
	case pct > depositWarningMin:
		return &types.PreviewFinding{
			Text:     fmt.Sprintf("Deposit of %.0f%% is above the typical 30%% threshold", pct),
			Severity: types.SeverityWarning,
		}
	default:
		return &types.PreviewFinding{
			Text:     "Deposit request is within the typical range for this trade",
			Severity: types.SeverityPositive,
		}
	}
}

// ClassifySeverity assigns a severity to free finding text by keyword match.
// Risk keywords win outright; everything else is a warning.
func ClassifySeverity(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range riskKeywords {
		if strings.Contains(lower, kw) {
			return types.SeverityRisk
		}
	}
	for _, kw := range warningKeywords {
		if strings.Contains(lower, kw) {
			return types.SeverityWarning
		}
	}
	// Conservative bias: text the keyword sets cannot place still surfaces
	// as a warning, never as positive.
	return types.SeverityWarning
}
