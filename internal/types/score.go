package types

import "math"

// Caps for the four signal counts carried by ScoreInputs.
const (
	MaxMissingScopeSignals   = 10
	MaxPricingOutlierSignals = 10
	MaxWarrantySignals       = 5
	MaxTimelineSignals       = 5
)

// ScoreInputs is the normalized signal bundle consumed by the score engine.
// Built once per analysis run by the signal adapter and immutable thereafter.
type ScoreInputs struct {
	DocQuality            float64 `json:"doc_quality"`       // 0..1
	LineItemClarity       float64 `json:"line_item_clarity"` // 0..1
	MissingScopeSignals   int     `json:"missing_scope_signals"`
	PricingOutlierSignals int     `json:"pricing_outlier_signals"`
	WarrantySignals       int     `json:"warranty_signals"`
	TimelineSignals       int     `json:"timeline_signals"`
}

// Clamped returns a copy with every field forced into its declared range.
func (s ScoreInputs) Clamped() ScoreInputs {
	return ScoreInputs{
		DocQuality:            ClampFraction(s.DocQuality),
		LineItemClarity:       ClampFraction(s.LineItemClarity),
		MissingScopeSignals:   ClampSignal(s.MissingScopeSignals, MaxMissingScopeSignals),
		PricingOutlierSignals: ClampSignal(s.PricingOutlierSignals, MaxPricingOutlierSignals),
		WarrantySignals:       ClampSignal(s.WarrantySignals, MaxWarrantySignals),
		TimelineSignals:       ClampSignal(s.TimelineSignals, MaxTimelineSignals),
	}
}

// ClampFraction forces v into [0,1]. NaN collapses to 0.
func ClampFraction(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampSignal forces a signal count into [0,cap].
func ClampSignal(v, cap int) int {
	if v < 0 {
		return 0
	}
	if v > cap {
		return cap
	}
	return v
}

// Overall rating bands for a score report.
const (
	RatingLowConcern      = "Low Concern"
	RatingModerateConcern = "Moderate Concern"
	RatingHighConcern     = "High Concern"
)

// Per-category risk labels. Same numeric thresholds as the overall rating
// bands but presented as separate product copy; kept distinct on purpose.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Confidence labels derived from document quality, not from signal counts.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// Fixed category names, in report order.
const (
	CategoryLabor     = "Labor"
	CategoryMaterials = "Materials"
	CategoryScope     = "Scope"
	CategoryWarranty  = "Warranty"
	CategoryTimeline  = "Timeline"
)

// CategoryScore is one of the five fixed category rows in a score report.
type CategoryScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"` // 0..100
	Risk  string `json:"risk"`  // Low, Medium, High
}

// ScoreReport is the homeowner-facing quality/risk report. Computed fresh on
// every analysis or re-score request; fully replaces any prior value.
//
// Confidence here reflects document quality only. It is independent of
// PricingClassification.PricingConfidence, which reflects benchmark data
// availability; the two can legitimately disagree.
type ScoreReport struct {
	OverallScore        int             `json:"overall_score"` // 0..100
	OverallRating       string          `json:"overall_rating"`
	Confidence          string          `json:"confidence"`
	Categories          []CategoryScore `json:"categories"`
	PreviewFindings     []string        `json:"preview_findings"`
	LockedFindingsCount int             `json:"locked_findings_count"`
	ScoreBreakdown      ScoreInputs     `json:"score_breakdown"`
}
