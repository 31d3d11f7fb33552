package types

import "time"

// UnitBasisSquare is the canonical roofing quantity unit (1 square = 100 sq ft).
const UnitBasisSquare = "square"

// RegionUnknown is the generic bucket used when the submission's region
// could not be resolved. Benchmark lookups against it never fall back to a
// broader filter because there is nothing broader.
const RegionUnknown = "unknown"

// PriorAnalysis is the slice of a previously stored analysis that the unit
// normalizer consults to keep re-runs idempotent.
type PriorAnalysis struct {
	UnitBasis          string   `json:"unit_basis,omitempty"`
	NormalizedQuantity *float64 `json:"normalized_quantity,omitempty"`
}

// UnitEstimate is the inferred canonical job quantity for one trade
// (roofing only in this version). Evidence is a human-readable audit trail
// of which extraction rule fired; extraction is heuristic and can silently
// fail, so the trail is required for support diagnosis.
type UnitEstimate struct {
	JobUnits           *float64 `json:"job_units,omitempty"`
	RoofingScopeTotal  float64  `json:"roofing_scope_total"`
	EffectivePerSquare *float64 `json:"effective_per_square,omitempty"`
	Confidence         float64  `json:"confidence"` // 0..1
	Evidence           []string `json:"evidence"`
}

// BenchmarkRange is a market price-per-unit range for one
// (trade, subtrade, region, unit basis). Authoritative external reference
// data; the core only reads it.
type BenchmarkRange struct {
	UnitLow       *float64  `json:"unit_low,omitempty"`
	UnitMid       *float64  `json:"unit_mid,omitempty"`
	UnitHigh      *float64  `json:"unit_high,omitempty"`
	Source        string    `json:"source,omitempty"`
	EffectiveDate time.Time `json:"effective_date,omitempty"`
}

// Pricing position labels, from cheapest to most expensive band.
const (
	PositionBelowMarket       = "Below Market Range (Potential Good Deal)"
	PositionWithinRange       = "Within Expected Range"
	PositionAboveMarket       = "Above Market Range (Review Recommended)"
	PositionSignificantlyOver = "Significantly Above Market (Investigation Recommended)"
)

// PricingClassification positions a quote's effective unit price against a
// benchmark range.
//
// PricingConfidence reflects benchmark data availability, not document
// quality: it is zero whenever any required input is missing, in which case
// PricingPositionLabel holds the neutral "Within Expected Range" text as a
// no-data sentinel rather than an actual classification.
type PricingClassification struct {
	PricingPositionLabel string   `json:"pricing_position_label"`
	PricingConfidence    float64  `json:"pricing_confidence"` // 0..1
	DeltaVsMid           *float64 `json:"delta_vs_mid,omitempty"`
	EstimatedOverageMid  *float64 `json:"estimated_overage_mid,omitempty"`
	EstimatedOverageHigh *float64 `json:"estimated_overage_high,omitempty"`
	PctVsMidpoint        *float64 `json:"pct_vs_midpoint,omitempty"`
}
