package scoring

import (
	"math"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

// Rating and risk thresholds on the 0..100 score scale.
const (
	thresholdLow    = 80
	thresholdMedium = 60
)

// Confidence thresholds on the averaged quality fractions.
const (
	confidenceHighMin   = 0.8
	confidenceMediumMin = 0.55
)

// Finding gate thresholds per signal.
const (
	pricingFindingMin  = 2
	missingFindingMin  = 1
	warrantyFindingMin = 1
	timelineFindingMin = 1
)

// lockedFindingsFloor is the minimum advertised count of additional findings
// behind the paywall.
const lockedFindingsFloor = 3

// Raw finding copy emitted by the engine. The preview classifier assigns
// severities downstream.
const (
	findingPricing   = "Multiple line items are priced above typical market ranges"
	findingScope     = "Scope items appear missing or unclear; confirm exactly what is included"
	findingWarranty  = "Warranty coverage is limited or not clearly stated"
	findingTimeline  = "Project timeline is missing or lacks detail"
	findingNoRedFlag = "No major red flags detected in this quote"
)

// Score computes the full report from normalized inputs. Pure arithmetic over
// clamped values; it cannot fail.
func Score(inputs types.ScoreInputs, w Weights) types.ScoreReport {
	inputs = inputs.Clamped()

	doc := inputs.DocQuality * 100
	clarity := inputs.LineItemClarity * 100

	labor := categoryScore(w.Labor, clarity, doc, inputs.PricingOutlierSignals, w.MaxPenalty)
	materials := categoryScore(w.Materials, clarity, doc, inputs.PricingOutlierSignals, w.MaxPenalty)
	scope := categoryScore(w.Scope, clarity, doc, inputs.MissingScopeSignals, w.MaxPenalty)
	warranty := categoryScore(w.Warranty, clarity, doc, inputs.WarrantySignals, w.MaxPenalty)
	timeline := categoryScore(w.Timeline, clarity, doc, inputs.TimelineSignals, w.MaxPenalty)

	overall := clampScore(int(math.Round(
		w.OverallLabor*float64(labor) +
			w.OverallMaterials*float64(materials) +
			w.OverallScope*float64(scope) +
			w.OverallWarranty*float64(warranty) +
			w.OverallTimeline*float64(timeline) +
			w.OverallDoc*doc +
			w.OverallClarity*clarity)))

	lockedCount := inputs.PricingOutlierSignals + inputs.MissingScopeSignals +
		inputs.WarrantySignals + inputs.TimelineSignals
	if lockedCount < lockedFindingsFloor {
		lockedCount = lockedFindingsFloor
	}

	return types.ScoreReport{
		OverallScore:  overall,
		OverallRating: ratingForScore(overall),
		Confidence:    confidenceForQuality(inputs.DocQuality, inputs.LineItemClarity),
		Categories: []types.CategoryScore{
			{Name: types.CategoryLabor, Score: labor, Risk: riskForScore(labor)},
			{Name: types.CategoryMaterials, Score: materials, Risk: riskForScore(materials)},
			{Name: types.CategoryScope, Score: scope, Risk: riskForScore(scope)},
			{Name: types.CategoryWarranty, Score: warranty, Risk: riskForScore(warranty)},
			{Name: types.CategoryTimeline, Score: timeline, Risk: riskForScore(timeline)},
		},
		PreviewFindings:     rawFindings(inputs),
		LockedFindingsCount: lockedCount,
		ScoreBreakdown:      inputs,
	}
}

// categoryScore evaluates one category's linear formula, clamped to [0,100].
func categoryScore(cw CategoryWeights, clarity, doc float64, signalCount int, maxPenalty float64) int {
	penalty := signalPenalty(signalCount, cw.SignalCap, maxPenalty)
	raw := cw.Base + cw.ClarityWeight*clarity + cw.DocWeight*doc - cw.PenaltyWeight*penalty
	return clampScore(int(math.Round(raw)))
}

// signalPenalty scales a signal count linearly against its cap, saturating at
// maxPenalty.
func signalPenalty(count, cap int, maxPenalty float64) float64 {
	if count <= 0 || cap <= 0 {
		return 0
	}
	ratio := float64(count) / float64(cap)
	if ratio > 1 {
		ratio = 1
	}
	return ratio * maxPenalty
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func ratingForScore(score int) string {
	switch {
	case score >= thresholdLow:
		return types.RatingLowConcern
	case score >= thresholdMedium:
		return types.RatingModerateConcern
	default:
		return types.RatingHighConcern
	}
}

func riskForScore(score int) string {
	switch {
	case score >= thresholdLow:
		return types.RiskLow
	case score >= thresholdMedium:
		return types.RiskMedium
	default:
		return types.RiskHigh
	}
}

// confidenceForQuality maps the average of the two quality fractions to a
// label. Intentionally independent of the signal-driven score.
func confidenceForQuality(doc, clarity float64) string {
	avg := (doc + clarity) / 2
	switch {
	case avg >= confidenceHighMin:
		return types.ConfidenceHigh
	case avg >= confidenceMediumMin:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// rawFindings emits up to four signal-gated finding strings, or the single
// default when nothing fires.
func rawFindings(inputs types.ScoreInputs) []string {
	findings := make([]string, 0, 4)
	if inputs.PricingOutlierSignals >= pricingFindingMin {
		findings = append(findings, findingPricing)
	}
	if inputs.MissingScopeSignals >= missingFindingMin {
		findings = append(findings, findingScope)
	}
	if inputs.WarrantySignals >= warrantyFindingMin {
		findings = append(findings, findingWarranty)
	}
	if inputs.TimelineSignals >= timelineFindingMin {
		findings = append(findings, findingTimeline)
	}
	if len(findings) == 0 {
		findings = append(findings, findingNoRedFlag)
	}
	return findings
}
