package benchmark

import (
	"math"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

// Band confidences. The within-range band is the most certain call; the
// below-market band is the least, since a low price can also mean a thin
// scope.
const (
	confidenceBelow  = 0.75
	confidenceWithin = 0.85
	confidenceAbove  = 0.80
	confidenceOver   = 0.80
)

// Classify positions the estimate's effective unit price against the range.
// Any missing required value yields the neutral within-range label with
// confidence 0: an explicit no-data signal, not an actual classification.
func Classify(est types.UnitEstimate, r types.BenchmarkRange) types.PricingClassification {
	noData := types.PricingClassification{
		PricingPositionLabel: types.PositionWithinRange,
		PricingConfidence:    0,
	}

	if est.EffectivePerSquare == nil || r.UnitLow == nil || r.UnitHigh == nil {
		return noData
	}

	p := *est.EffectivePerSquare
	low := *r.UnitLow
	high := *r.UnitHigh
	mid := midpoint(r)
	if mid <= 0 {
		return noData
	}

	out := types.PricingClassification{}
	switch {
	case p < low:
		out.PricingPositionLabel = types.PositionBelowMarket
		out.PricingConfidence = confidenceBelow
	case p <= mid:
		out.PricingPositionLabel = types.PositionWithinRange
		out.PricingConfidence = confidenceWithin
	case p <= high:
		out.PricingPositionLabel = types.PositionAboveMarket
		out.PricingConfidence = confidenceAbove
	default:
		out.PricingPositionLabel = types.PositionSignificantlyOver
		out.PricingConfidence = confidenceOver
	}

	delta := (p - mid) / mid
	pct := math.Round(delta*1000) / 10
	out.DeltaVsMid = &delta
	out.PctVsMidpoint = &pct

	if est.JobUnits != nil && *est.JobUnits > 0 {
		overMid := roundCents(math.Max(0, p-mid) * *est.JobUnits)
		overHigh := roundCents(math.Max(0, p-high) * *est.JobUnits)
		out.EstimatedOverageMid = &overMid
		out.EstimatedOverageHigh = &overHigh
	}

	return out
}

// midpoint returns the stated mid value, or the low/high midpoint when the
// row does not carry one.
func midpoint(r types.BenchmarkRange) float64 {
	if r.UnitMid != nil && *r.UnitMid > 0 {
		return *r.UnitMid
	}
	if r.UnitLow != nil && r.UnitHigh != nil {
		return (*r.UnitLow + *r.UnitHigh) / 2
	}
	return 0
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
