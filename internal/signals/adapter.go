// Package signals normalizes AI extraction results into score inputs.
//
// The extraction schema has evolved. Current results carry explicit signals
// and quality objects which are used directly; legacy results derive every
// field from scope, costs, red flags and timeline fragments. Both paths are
// total: every field has a deterministic default and adaptation never fails.
package signals

import (
	"math"
	"regexp"
	"strings"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

// Fallback constants used when a field is absent but its sibling object is
// present, and for legacy quality derivation.
const (
	defaultDocQuality      = 0.6
	defaultLineItemClarity = 0.55

	docQualityHigh   = 0.85
	docQualityMedium = 0.65
	docQualityLow    = 0.45

	clarityFloor   = 0.5
	clarityPerItem = 0.05
	clarityCeiling = 0.9
)

// Legacy derivation caps. Tighter than the struct-level invariant caps so a
// noisy legacy extraction cannot saturate a category on its own.
const (
	legacyMissingScopeCap = 5
	legacyPricingCap      = 6
	legacyWarrantyCap     = 4
)

var warrantyPattern = regexp.MustCompile(`(?i)warrant|guarantee|workmanship`)

// FromAiResult maps an AI result of either schema into fully populated score
// inputs. lineItemCount is the number of stored line-item rows for the
// submission; the legacy path uses it to approximate line-item clarity.
func FromAiResult(res *types.AiResult, lineItemCount int) types.ScoreInputs {
	inputs := types.ScoreInputs{
		DocQuality:      defaultDocQuality,
		LineItemClarity: defaultLineItemClarity,
	}

	if res == nil {
		return inputs.Clamped()
	}

	if res.HasCurrentQuality() {
		inputs.DocQuality = fractionOrDefault(res.Quality.DocQuality, defaultDocQuality)
		inputs.LineItemClarity = fractionOrDefault(res.Quality.LineItemClarity, defaultLineItemClarity)
	} else {
		inputs.DocQuality = docQualityFromConfidence(res.Confidence)
		inputs.LineItemClarity = clarityFromItemCount(lineItemCount)
	}

	if res.HasCurrentSignals() {
		inputs.MissingScopeSignals = countOrZero(res.Signals.MissingScope)
		inputs.PricingOutlierSignals = countOrZero(res.Signals.PricingOutliers)
		inputs.WarrantySignals = countOrZero(res.Signals.WarrantyRedFlags)
		inputs.TimelineSignals = countOrZero(res.Signals.TimelineRedFlags)
	} else {
		inputs.MissingScopeSignals = deriveMissingScope(res)
		inputs.PricingOutlierSignals = derivePricingOutliers(res)
		inputs.WarrantySignals = deriveWarrantySignals(res)
		inputs.TimelineSignals = deriveTimelineSignal(res)
	}

	return inputs.Clamped()
}

// fractionOrDefault rounds a quality fraction into [0,1], substituting the
// fallback when the field is absent or not a finite number.
func fractionOrDefault(v *float64, fallback float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return fallback
	}
	return types.ClampFraction(*v)
}

// countOrZero rounds a numeric signal field to a non-negative int.
func countOrZero(v *float64) int {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return 0
	}
	return int(math.Round(*v))
}

// docQualityFromConfidence maps the legacy three-level confidence label to a
// quality fraction. Unknown or empty labels read as medium.
func docQualityFromConfidence(label string) float64 {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "high":
		return docQualityHigh
	case "low":
		return docQualityLow
	default:
		return docQualityMedium
	}
}

// clarityFromItemCount scales line-item clarity linearly with the number of
// extracted rows. Zero rows reads as the floor.
func clarityFromItemCount(count int) float64 {
	if count <= 0 {
		return clarityFloor
	}
	clarity := clarityFloor + clarityPerItem*float64(count)
	if clarity > clarityCeiling {
		return clarityCeiling
	}
	return clarity
}

func deriveMissingScope(res *types.AiResult) int {
	if res.Scope == nil {
		return 0
	}
	return types.ClampSignal(len(res.Scope.MissingOrUnclear), legacyMissingScopeCap)
}

func derivePricingOutliers(res *types.AiResult) int {
	if res.Costs == nil {
		return 0
	}
	return types.ClampSignal(len(res.Costs.HighCostFlags), legacyPricingCap)
}

// deriveWarrantySignals counts red flags whose combined title and detail
// text reads as warranty-related.
func deriveWarrantySignals(res *types.AiResult) int {
	count := 0
	for _, flag := range res.RedFlags {
		if warrantyPattern.MatchString(flag.Title + " " + flag.Detail) {
			count++
		}
	}
	return types.ClampSignal(count, legacyWarrantyCap)
}

// deriveTimelineSignal reads 1 when the timeline is explicitly absent or its
// clarity is missing/basic, else 0.
func deriveTimelineSignal(res *types.AiResult) int {
	if res.Timeline == nil {
		return 1
	}
	switch strings.ToLower(strings.TrimSpace(res.Timeline.Clarity)) {
	case "missing", "basic":
		return 1
	default:
		return 0
	}
}
