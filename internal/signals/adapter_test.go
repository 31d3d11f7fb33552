package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

func fp(v float64) *float64 { return &v }

func TestFromAiResult_CurrentSchema(t *testing.T) {
	res := &types.AiResult{
		Signals: &types.SignalCounts{
			PricingOutliers:  fp(2),
			MissingScope:     fp(3),
			WarrantyRedFlags: fp(1),
			TimelineRedFlags: fp(0),
		},
		Quality: &types.QualityScores{
			DocQuality:      fp(0.72),
			LineItemClarity: fp(0.81),
		},
	}

	inputs := FromAiResult(res, 8)

	assert.Equal(t, 0.72, inputs.DocQuality)
	assert.Equal(t, 0.81, inputs.LineItemClarity)
	assert.Equal(t, 3, inputs.MissingScopeSignals)
	assert.Equal(t, 2, inputs.PricingOutlierSignals)
	assert.Equal(t, 1, inputs.WarrantySignals)
	assert.Equal(t, 0, inputs.TimelineSignals)
}

func TestFromAiResult_CurrentSchemaPartialFields(t *testing.T) {
	// A sibling object being present makes the schema "current"; the absent
	// fields inside it fall back to documented constants.
	res := &types.AiResult{
		Signals: &types.SignalCounts{PricingOutliers: fp(4)},
		Quality: &types.QualityScores{DocQuality: fp(0.9)},
	}

	inputs := FromAiResult(res, 0)

	assert.Equal(t, 0.9, inputs.DocQuality)
	assert.Equal(t, defaultLineItemClarity, inputs.LineItemClarity)
	assert.Equal(t, 4, inputs.PricingOutlierSignals)
	assert.Equal(t, 0, inputs.MissingScopeSignals)
	assert.Equal(t, 0, inputs.WarrantySignals)
	assert.Equal(t, 0, inputs.TimelineSignals)
}

func TestFromAiResult_CurrentSchemaClampsRanges(t *testing.T) {
	res := &types.AiResult{
		Signals: &types.SignalCounts{
			PricingOutliers:  fp(99),
			MissingScope:     fp(-3),
			WarrantyRedFlags: fp(12),
			TimelineRedFlags: fp(7),
		},
		Quality: &types.QualityScores{
			DocQuality:      fp(1.4),
			LineItemClarity: fp(-0.2),
		},
	}

	inputs := FromAiResult(res, 0)

	assert.Equal(t, 1.0, inputs.DocQuality)
	assert.Equal(t, 0.0, inputs.LineItemClarity)
	assert.Equal(t, types.MaxPricingOutlierSignals, inputs.PricingOutlierSignals)
	assert.Equal(t, 0, inputs.MissingScopeSignals)
	assert.Equal(t, types.MaxWarrantySignals, inputs.WarrantySignals)
	assert.Equal(t, types.MaxTimelineSignals, inputs.TimelineSignals)
}

func TestFromAiResult_LegacyConfidenceLevels(t *testing.T) {
	cases := []struct {
		label string
		want  float64
	}{
		{"high", 0.85},
		{"medium", 0.65},
		{"low", 0.45},
		{"", 0.65},
		{"garbage", 0.65},
	}

	for _, tc := range cases {
		inputs := FromAiResult(&types.AiResult{Confidence: tc.label}, 0)
		assert.Equal(t, tc.want, inputs.DocQuality, "label %q", tc.label)
	}
}

func TestFromAiResult_LegacyClarityScalesWithItemCount(t *testing.T) {
	res := &types.AiResult{Confidence: "medium"}

	assert.Equal(t, 0.5, FromAiResult(res, 0).LineItemClarity)
	assert.InDelta(t, 0.65, FromAiResult(res, 3).LineItemClarity, 1e-9)
	assert.InDelta(t, 0.9, FromAiResult(res, 8).LineItemClarity, 1e-9)
	// Capped at 0.9 no matter how many rows.
	assert.InDelta(t, 0.9, FromAiResult(res, 30).LineItemClarity, 1e-9)
}

func TestFromAiResult_LegacySignalDerivation(t *testing.T) {
	res := &types.AiResult{
		Scope: &types.LegacyScope{
			MissingOrUnclear: []string{"tear-off", "permits", "disposal", "flashing", "underlayment", "vents", "gutters"},
		},
		Costs: &types.LegacyCosts{
			HighCostFlags: []string{"labor", "shingles"},
		},
		RedFlags: []types.RedFlag{
			{Title: "Limited warranty", Detail: "only 1 year on workmanship"},
			{Title: "No timeline", Detail: "start date not stated"},
			{Title: "Guarantee excluded", Detail: "manufacturer guarantee void if unregistered"},
		},
		Timeline: &types.LegacyTimeline{Clarity: "basic"},
	}

	inputs := FromAiResult(res, 5)

	assert.Equal(t, 5, inputs.MissingScopeSignals, "missing scope capped at 5")
	assert.Equal(t, 2, inputs.PricingOutlierSignals)
	assert.Equal(t, 2, inputs.WarrantySignals)
	assert.Equal(t, 1, inputs.TimelineSignals)
}

func TestFromAiResult_LegacyTimelineAbsentCountsAsSignal(t *testing.T) {
	inputs := FromAiResult(&types.AiResult{}, 0)
	assert.Equal(t, 1, inputs.TimelineSignals)

	detailed := &types.AiResult{Timeline: &types.LegacyTimeline{Clarity: "detailed"}}
	assert.Equal(t, 0, FromAiResult(detailed, 0).TimelineSignals)
}

func TestFromAiResult_NilResultUsesDefaults(t *testing.T) {
	inputs := FromAiResult(nil, 0)

	assert.Equal(t, defaultDocQuality, inputs.DocQuality)
	assert.Equal(t, defaultLineItemClarity, inputs.LineItemClarity)
	assert.Equal(t, 0, inputs.MissingScopeSignals)
	// Nil result means no timeline fragment either, but the nil guard keeps
	// the whole derivation at defaults rather than probing fragments.
	assert.Equal(t, 0, inputs.TimelineSignals)
}
