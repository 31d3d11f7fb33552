// Package types provides type definitions for structured data used throughout the quoteshield analysis core.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AiResult represents the AI-extracted description of a contractor quote.
// The extraction schema has evolved: current results carry explicit Signals
// and Quality objects, while legacy results require derivation from Scope,
// Costs, RedFlags and Timeline. Pointer fields model presence so the signal
// adapter can distinguish "absent" from "zero".
type AiResult struct {
	// Current schema
	Signals *SignalCounts  `json:"signals,omitempty"`
	Quality *QualityScores `json:"quality,omitempty"`

	// Shared fields
	Findings       []string `json:"findings,omitempty"`
	DepositPercent *float64 `json:"deposit_percent,omitempty"`
	RoofSquares    *float64 `json:"roof_squares,omitempty"`
	TotalAmount    *float64 `json:"total_amount,omitempty"`

	// Legacy schema
	Confidence string          `json:"confidence,omitempty"` // high, medium, low
	Scope      *LegacyScope    `json:"scope,omitempty"`
	Costs      *LegacyCosts    `json:"costs,omitempty"`
	RedFlags   []RedFlag       `json:"red_flags,omitempty"`
	Timeline   *LegacyTimeline `json:"timeline,omitempty"`
}

// SignalCounts holds the explicit signal counts emitted by the current
// extraction schema. Fields are pointers because a well-formed number is
// what marks the object as usable.
type SignalCounts struct {
	PricingOutliers  *float64 `json:"pricing_outliers,omitempty"`
	MissingScope     *float64 `json:"missing_scope,omitempty"`
	WarrantyRedFlags *float64 `json:"warranty_red_flags,omitempty"`
	TimelineRedFlags *float64 `json:"timeline_red_flags,omitempty"`
}

// QualityScores holds the explicit document quality fractions emitted by the
// current extraction schema.
type QualityScores struct {
	DocQuality      *float64 `json:"doc_quality,omitempty"`
	LineItemClarity *float64 `json:"line_item_clarity,omitempty"`
}

// LegacyScope is the legacy-schema scope fragment.
type LegacyScope struct {
	MissingOrUnclear []string `json:"missing_or_unclear,omitempty"`
}

// LegacyCosts is the legacy-schema costs fragment.
type LegacyCosts struct {
	HighCostFlags []string `json:"high_cost_flags,omitempty"`
	Total         *float64 `json:"total,omitempty"`
}

// RedFlag is a legacy-schema red flag with a short title and detail text.
type RedFlag struct {
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// LegacyTimeline is the legacy-schema timeline fragment.
type LegacyTimeline struct {
	Clarity string `json:"clarity,omitempty"` // missing, basic, detailed
}

// HasCurrentSignals reports whether the result carries a usable current-schema
// signals object (at least one well-formed numeric field).
func (r *AiResult) HasCurrentSignals() bool {
	if r == nil || r.Signals == nil {
		return false
	}
	s := r.Signals
	return s.PricingOutliers != nil || s.MissingScope != nil ||
		s.WarrantyRedFlags != nil || s.TimelineRedFlags != nil
}

// HasCurrentQuality reports whether the result carries a usable current-schema
// quality object (at least one well-formed numeric field).
func (r *AiResult) HasCurrentQuality() bool {
	if r == nil || r.Quality == nil {
		return false
	}
	return r.Quality.DocQuality != nil || r.Quality.LineItemClarity != nil
}
