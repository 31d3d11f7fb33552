// Package units infers the canonical job quantity for a trade from noisy
// quote data. Roofing is the only trade profile in this version: the
// canonical unit is the "square" (100 sq ft of roof surface).
//
// Extraction is heuristic and can silently fail, so every branch records a
// human-readable evidence entry describing which rule fired. Support relies
// on that trail to diagnose a bad estimate without re-running the pipeline.
package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

// Confidence assigned per extraction rule, highest-trust rule first.
const (
	confidencePriorReuse = 0.9
	confidenceText       = 0.8
	confidenceBundles    = 0.7
	confidenceAiField    = 0.7
)

// bundlesPerSquare is the standard three-tab shingle coverage ratio.
const bundlesPerSquare = 3.0

// Text patterns, tried in this order. The order is load-bearing: a range
// must win over its own first number, and an explicit squares mention must
// win over a bundle count. Do not merge or reorder these rules.
var (
	squaresRangePattern  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:-|–|to)\s*(\d+(?:\.\d+)?)\s*(?:square|sq)s?\b\.?\s*(ft|feet)?`)
	squaresSinglePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:square|sq)s?\b\.?\s*(ft|feet)?`)
	bundlesPattern       = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*bundles?\b`)
)

// Inputs carries everything the roofing normalizer may consult. Every field
// is optional; absent inputs simply skip their extraction rule.
type Inputs struct {
	LineItems    []types.LineItemRow
	Prior        *types.PriorAnalysis
	AiResult     *types.AiResult
	ProjectValue *float64
}

// EstimateRoofing runs the three-tier priority search for roof squares and
// derives the implied scope total and effective per-square price. It never
// fails: when no rule fires the estimate carries nil units and confidence 0
// and downstream benchmarking is skipped.
func EstimateRoofing(in Inputs) types.UnitEstimate {
	est := types.UnitEstimate{Evidence: []string{}}

	if units, conf, note, ok := unitsFromPrior(in.Prior); ok {
		est.JobUnits, est.Confidence = &units, conf
		est.Evidence = append(est.Evidence, note)
	} else if units, conf, note, ok := unitsFromLineItemText(in.LineItems); ok {
		est.JobUnits, est.Confidence = &units, conf
		est.Evidence = append(est.Evidence, note)
	} else if units, conf, note, ok := unitsFromAiResult(in.AiResult); ok {
		est.JobUnits, est.Confidence = &units, conf
		est.Evidence = append(est.Evidence, note)
	} else {
		est.Evidence = append(est.Evidence, "no roof quantity found in prior analysis, line items, or AI result")
	}

	total, note := scopeTotal(in)
	est.RoofingScopeTotal = total
	est.Evidence = append(est.Evidence, note)

	if est.JobUnits != nil && *est.JobUnits > 0 && total > 0 {
		perSquare := total / *est.JobUnits
		est.EffectivePerSquare = &perSquare
		est.Evidence = append(est.Evidence, fmt.Sprintf("effective price per square: $%.2f", perSquare))
	}

	return est
}

// unitsFromPrior reuses a previously normalized quantity so re-scoring a
// submission is idempotent.
func unitsFromPrior(prior *types.PriorAnalysis) (float64, float64, string, bool) {
	if prior == nil || prior.UnitBasis != types.UnitBasisSquare {
		return 0, 0, "", false
	}
	if prior.NormalizedQuantity == nil || *prior.NormalizedQuantity <= 0 {
		return 0, 0, "", false
	}
	qty := *prior.NormalizedQuantity
	return qty, confidencePriorReuse, fmt.Sprintf("reused prior analysis quantity: %s squares", trimFloat(qty)), true
}

// unitsFromLineItemText scans the concatenated line-item text for an explicit
// squares range, then a single squares value, then a bundle count.
func unitsFromLineItemText(items []types.LineItemRow) (float64, float64, string, bool) {
	text := concatLineItemText(items)
	if text == "" {
		return 0, 0, "", false
	}

	for _, m := range squaresRangePattern.FindAllStringSubmatch(text, -1) {
		if m[3] != "" {
			// "sq ft" is an area, not a squares count.
			continue
		}
		low, errLow := strconv.ParseFloat(m[1], 64)
		high, errHigh := strconv.ParseFloat(m[2], 64)
		if errLow == nil && errHigh == nil && low > 0 && high >= low {
			mid := (low + high) / 2
			note := fmt.Sprintf("squares range from line item text: %s-%s -> midpoint %s",
				trimFloat(low), trimFloat(high), trimFloat(mid))
			return mid, confidenceText, note, true
		}
	}

	for _, m := range squaresSinglePattern.FindAllStringSubmatch(text, -1) {
		if m[2] != "" {
			// "sq ft" is an area, not a squares count.
			continue
		}
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
			return v, confidenceText, fmt.Sprintf("squares from line item text: %s", trimFloat(v)), true
		}
	}

	if m := bundlesPattern.FindStringSubmatch(text); m != nil {
		if bundles, err := strconv.ParseFloat(m[1], 64); err == nil && bundles > 0 {
			squares := bundles / bundlesPerSquare
			note := fmt.Sprintf("bundles from line item text: %s -> %s squares", trimFloat(bundles), trimFloat(squares))
			return squares, confidenceBundles, note, true
		}
	}

	return 0, 0, "", false
}

// unitsFromAiResult falls back to a roof_squares field reported directly by
// the extraction model.
func unitsFromAiResult(res *types.AiResult) (float64, float64, string, bool) {
	if res == nil || res.RoofSquares == nil || *res.RoofSquares <= 0 {
		return 0, 0, "", false
	}
	qty := *res.RoofSquares
	return qty, confidenceAiField, fmt.Sprintf("roof squares from AI result: %s", trimFloat(qty)), true
}

// scopeTotal prefers an externally supplied project value, then the line-item
// sum, then the AI report total, then zero.
func scopeTotal(in Inputs) (float64, string) {
	if in.ProjectValue != nil && *in.ProjectValue > 0 {
		return *in.ProjectValue, fmt.Sprintf("scope total from project value: $%.2f", *in.ProjectValue)
	}

	sum := 0.0
	for _, item := range in.LineItems {
		if item.LineTotal != nil && *item.LineTotal > 0 {
			sum += *item.LineTotal
		}
	}
	if sum > 0 {
		return sum, fmt.Sprintf("scope total from line item sum: $%.2f", sum)
	}

	if in.AiResult != nil {
		if in.AiResult.TotalAmount != nil && *in.AiResult.TotalAmount > 0 {
			return *in.AiResult.TotalAmount, fmt.Sprintf("scope total from AI report total: $%.2f", *in.AiResult.TotalAmount)
		}
		if in.AiResult.Costs != nil && in.AiResult.Costs.Total != nil && *in.AiResult.Costs.Total > 0 {
			return *in.AiResult.Costs.Total, fmt.Sprintf("scope total from AI report total: $%.2f", *in.AiResult.Costs.Total)
		}
	}

	return 0, "scope total unavailable; defaulting to 0"
}

func concatLineItemText(items []types.LineItemRow) string {
	var sb strings.Builder
	for _, item := range items {
		if item.DescriptionRaw != "" {
			sb.WriteString(item.DescriptionRaw)
			sb.WriteString(" ")
		}
		if item.DescriptionNormalized != "" {
			sb.WriteString(item.DescriptionNormalized)
			sb.WriteString(" ")
		}
	}
	return strings.TrimSpace(sb.String())
}

// trimFloat renders a quantity without trailing zeros ("22", "21.5").
func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}
