package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

func TestScore_RegressionFixture(t *testing.T) {
	inputs := types.ScoreInputs{
		DocQuality:            0.55,
		LineItemClarity:       0.5,
		MissingScopeSignals:   1,
		PricingOutlierSignals: 1,
	}

	report := Score(inputs, DefaultWeights())

	assert.Equal(t, 68, report.OverallScore)
	assert.Equal(t, types.RatingModerateConcern, report.OverallRating)
	assert.Equal(t, types.ConfidenceLow, report.Confidence)

	require.Len(t, report.Categories, 5)
	assert.Equal(t, types.CategoryScore{Name: types.CategoryLabor, Score: 73, Risk: types.RiskMedium}, report.Categories[0])
	assert.Equal(t, types.CategoryScore{Name: types.CategoryMaterials, Score: 67, Risk: types.RiskMedium}, report.Categories[1])
	assert.Equal(t, types.CategoryScore{Name: types.CategoryScope, Score: 58, Risk: types.RiskHigh}, report.Categories[2])
	assert.Equal(t, types.CategoryScore{Name: types.CategoryWarranty, Score: 76, Risk: types.RiskMedium}, report.Categories[3])
	assert.Equal(t, types.CategoryScore{Name: types.CategoryTimeline, Score: 76, Risk: types.RiskMedium}, report.Categories[4])

	// Only the missing-scope gate fires (pricing needs >= 2 signals).
	assert.Equal(t, []string{findingScope}, report.PreviewFindings)
	// Raw sum is 2, floored at 3.
	assert.Equal(t, 3, report.LockedFindingsCount)
	assert.Equal(t, inputs, report.ScoreBreakdown)
}

func TestScore_Deterministic(t *testing.T) {
	inputs := types.ScoreInputs{DocQuality: 0.55, LineItemClarity: 0.5, MissingScopeSignals: 1, PricingOutlierSignals: 1}
	first := Score(inputs, DefaultWeights())
	second := Score(inputs, DefaultWeights())
	assert.Equal(t, first, second)
}

func TestScore_AllScoresInRange(t *testing.T) {
	cases := []types.ScoreInputs{
		{},
		{DocQuality: 1, LineItemClarity: 1},
		{DocQuality: 1, LineItemClarity: 1, MissingScopeSignals: 10, PricingOutlierSignals: 10, WarrantySignals: 5, TimelineSignals: 5},
		{DocQuality: -2, LineItemClarity: 3, MissingScopeSignals: -1, PricingOutlierSignals: 99},
		{DocQuality: 0.33, LineItemClarity: 0.77, WarrantySignals: 2},
	}

	for _, inputs := range cases {
		report := Score(inputs, DefaultWeights())
		assert.GreaterOrEqual(t, report.OverallScore, 0)
		assert.LessOrEqual(t, report.OverallScore, 100)
		for _, cat := range report.Categories {
			assert.GreaterOrEqual(t, cat.Score, 0, "category %s", cat.Name)
			assert.LessOrEqual(t, cat.Score, 100, "category %s", cat.Name)
		}
	}
}

func TestScore_SignalMonotonicity(t *testing.T) {
	base := types.ScoreInputs{DocQuality: 0.7, LineItemClarity: 0.7}
	w := DefaultWeights()

	categoryAt := func(inputs types.ScoreInputs, name string) int {
		report := Score(inputs, w)
		for _, cat := range report.Categories {
			if cat.Name == name {
				return cat.Score
			}
		}
		t.Fatalf("category %s not found", name)
		return 0
	}

	// Increasing any single signal count never increases its category score.
	for n := 0; n < 10; n++ {
		withN := base
		withNext := base

		withN.PricingOutlierSignals = n
		withNext.PricingOutlierSignals = n + 1
		assert.GreaterOrEqual(t, categoryAt(withN, types.CategoryLabor), categoryAt(withNext, types.CategoryLabor))
		assert.GreaterOrEqual(t, categoryAt(withN, types.CategoryMaterials), categoryAt(withNext, types.CategoryMaterials))

		withN, withNext = base, base
		withN.MissingScopeSignals = n
		withNext.MissingScopeSignals = n + 1
		assert.GreaterOrEqual(t, categoryAt(withN, types.CategoryScope), categoryAt(withNext, types.CategoryScope))

		withN, withNext = base, base
		withN.WarrantySignals = n
		withNext.WarrantySignals = n + 1
		assert.GreaterOrEqual(t, categoryAt(withN, types.CategoryWarranty), categoryAt(withNext, types.CategoryWarranty))

		withN, withNext = base, base
		withN.TimelineSignals = n
		withNext.TimelineSignals = n + 1
		assert.GreaterOrEqual(t, categoryAt(withN, types.CategoryTimeline), categoryAt(withNext, types.CategoryTimeline))
	}
}

func TestScore_RatingBands(t *testing.T) {
	assert.Equal(t, types.RatingLowConcern, ratingForScore(80))
	assert.Equal(t, types.RatingModerateConcern, ratingForScore(79))
	assert.Equal(t, types.RatingModerateConcern, ratingForScore(60))
	assert.Equal(t, types.RatingHighConcern, ratingForScore(59))
}

func TestScore_ConfidenceBands(t *testing.T) {
	assert.Equal(t, types.ConfidenceHigh, confidenceForQuality(0.8, 0.8))
	assert.Equal(t, types.ConfidenceMedium, confidenceForQuality(0.9, 0.4))
	assert.Equal(t, types.ConfidenceMedium, confidenceForQuality(0.55, 0.55))
	assert.Equal(t, types.ConfidenceLow, confidenceForQuality(0.5, 0.5))
}

func TestScore_DefaultFindingWhenNoGateFires(t *testing.T) {
	report := Score(types.ScoreInputs{DocQuality: 0.9, LineItemClarity: 0.9}, DefaultWeights())
	assert.Equal(t, []string{findingNoRedFlag}, report.PreviewFindings)
	assert.Equal(t, 3, report.LockedFindingsCount)
}

func TestScore_AllFindingGatesFire(t *testing.T) {
	inputs := types.ScoreInputs{
		DocQuality:            0.6,
		LineItemClarity:       0.6,
		MissingScopeSignals:   2,
		PricingOutlierSignals: 2,
		WarrantySignals:       1,
		TimelineSignals:       1,
	}

	report := Score(inputs, DefaultWeights())

	assert.Equal(t, []string{findingPricing, findingScope, findingWarranty, findingTimeline}, report.PreviewFindings)
	assert.Equal(t, 6, report.LockedFindingsCount)
}

func TestScore_AlternateWeights(t *testing.T) {
	// The weights struct is swappable without touching the algorithm.
	w := DefaultWeights()
	w.Scope.PenaltyWeight = 0

	inputs := types.ScoreInputs{DocQuality: 0.7, LineItemClarity: 0.7, MissingScopeSignals: 5}
	unpenalized := Score(inputs, w)
	penalized := Score(inputs, DefaultWeights())

	assert.Greater(t, unpenalized.Categories[2].Score, penalized.Categories[2].Score)
}
