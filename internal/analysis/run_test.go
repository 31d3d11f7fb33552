package analysis

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/benchmark"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

func fp(v float64) *float64 { return &v }

type stubStore struct {
	rng     *types.BenchmarkRange
	lookups int
}

func (s *stubStore) LatestRange(_ context.Context, _ benchmark.RangeKey) (*types.BenchmarkRange, error) {
	s.lookups++
	return s.rng, nil
}

func TestRun_EndToEnd(t *testing.T) {
	store := &stubStore{rng: &types.BenchmarkRange{UnitLow: fp(350), UnitMid: fp(420), UnitHigh: fp(500)}}

	result, err := Run(context.Background(), RunOptions{
		AiResult: &types.AiResult{
			Quality:        &types.QualityScores{DocQuality: fp(0.55), LineItemClarity: fp(0.5)},
			Signals:        &types.SignalCounts{MissingScope: fp(1), PricingOutliers: fp(1)},
			DepositPercent: fp(45),
			Findings:       []string{"Deposit of 45% requested up front"},
		},
		LineItems: []types.LineItemRow{
			{DescriptionRaw: "Tear off and replace, 22 squares"},
		},
		Trade:        "roofing",
		RegionKey:    "us-tx-dfw",
		ProjectValue: fp(9460),
		RangeStore:   store,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Report)
	assert.Equal(t, 68, result.Report.OverallScore)
	assert.Equal(t, types.RatingModerateConcern, result.Report.OverallRating)

	require.NotEmpty(t, result.PreviewFindings)
	assert.Equal(t, types.SeverityRisk, result.PreviewFindings[0].Severity)

	require.NotNil(t, result.UnitEstimate)
	require.NotNil(t, result.UnitEstimate.JobUnits)
	assert.Equal(t, 22.0, *result.UnitEstimate.JobUnits)
	require.NotNil(t, result.UnitEstimate.EffectivePerSquare)
	assert.InDelta(t, 430.0, *result.UnitEstimate.EffectivePerSquare, 1e-9)

	require.NotNil(t, result.Pricing)
	assert.Equal(t, types.PositionAboveMarket, result.Pricing.PricingPositionLabel)
	require.NotNil(t, result.Pricing.PctVsMidpoint)
	assert.InDelta(t, 2.4, *result.Pricing.PctVsMidpoint, 1e-9)
}

func TestRun_NoRangeStoreSkipsBenchmark(t *testing.T) {
	result, err := Run(context.Background(), RunOptions{
		AiResult: &types.AiResult{},
		LineItems: []types.LineItemRow{
			{DescriptionRaw: "22 squares", LineTotal: fp(9460)},
		},
		Trade:     "roofing",
		RegionKey: "us-tx-dfw",
	})

	require.NoError(t, err)
	require.NotNil(t, result.Pricing)
	assert.Equal(t, 0.0, result.Pricing.PricingConfidence)
	assert.Equal(t, types.PositionWithinRange, result.Pricing.PricingPositionLabel)
}

func TestRun_NoJobUnitsSkipsFetch(t *testing.T) {
	store := &stubStore{rng: &types.BenchmarkRange{UnitLow: fp(350), UnitHigh: fp(500)}}

	result, err := Run(context.Background(), RunOptions{
		AiResult:   &types.AiResult{},
		LineItems:  []types.LineItemRow{{DescriptionRaw: "Full roof replacement"}},
		Trade:      "roofing",
		RegionKey:  "us-tx-dfw",
		RangeStore: store,
	})

	require.NoError(t, err)
	assert.Zero(t, store.lookups)
	assert.Equal(t, 0.0, result.Pricing.PricingConfidence)
}

func TestRun_ProgressEventsEmitted(t *testing.T) {
	var mu sync.Mutex
	var steps []string
	_, err := Run(context.Background(), RunOptions{
		AiResult:  &types.AiResult{},
		Trade:     "roofing",
		RegionKey: "us-tx-dfw",
		OnProgress: func(event ProgressEvent) {
			mu.Lock()
			steps = append(steps, event.Step)
			mu.Unlock()
		},
	})

	require.NoError(t, err)
	assert.Contains(t, steps, StepScoreReport)
	assert.Contains(t, steps, StepBenchmark)
}

func TestMerge_CarriesNormalizerSnapshot(t *testing.T) {
	id := uuid.New()
	units := 22.0
	merged := Merge(id, &Result{
		UnitEstimate: &types.UnitEstimate{JobUnits: &units},
	})

	assert.Equal(t, id, merged.SubmissionID)
	assert.Equal(t, types.UnitBasisSquare, merged.UnitBasis)
	require.NotNil(t, merged.NormalizedQuantity)
	assert.Equal(t, 22.0, *merged.NormalizedQuantity)
}

func TestMerge_NoUnitsLeavesSnapshotEmpty(t *testing.T) {
	merged := Merge(uuid.New(), &Result{UnitEstimate: &types.UnitEstimate{}})
	assert.Empty(t, merged.UnitBasis)
	assert.Nil(t, merged.NormalizedQuantity)
}
