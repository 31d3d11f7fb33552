package benchmark

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

// fakeStore returns canned rows keyed by unit basis and records lookups.
type fakeStore struct {
	rows    map[string]*types.BenchmarkRange
	err     error
	lookups []RangeKey
}

func (s *fakeStore) LatestRange(_ context.Context, key RangeKey) (*types.BenchmarkRange, error) {
	s.lookups = append(s.lookups, key)
	if s.err != nil {
		return nil, s.err
	}
	return s.rows[key.UnitBasis], nil
}

func TestFetchRange_DirectHit(t *testing.T) {
	store := &fakeStore{rows: map[string]*types.BenchmarkRange{
		types.UnitBasisSquare: {UnitLow: fp(350), UnitMid: fp(420), UnitHigh: fp(500)},
	}}
	key := RangeKey{Trade: "roofing", Subtrade: "asphalt_shingle", RegionKey: "us-tx-dfw", UnitBasis: types.UnitBasisSquare}

	r, err := FetchRange(context.Background(), store, key)

	require.NoError(t, err)
	require.NotNil(t, r.UnitLow)
	assert.Equal(t, 350.0, *r.UnitLow)
	assert.Len(t, store.lookups, 1)
}

func TestFetchRange_FallsBackWithoutUnitBasis(t *testing.T) {
	store := &fakeStore{rows: map[string]*types.BenchmarkRange{
		"": {UnitLow: fp(300), UnitHigh: fp(480)},
	}}
	key := RangeKey{Trade: "roofing", RegionKey: "us-tx-dfw", UnitBasis: types.UnitBasisSquare}

	r, err := FetchRange(context.Background(), store, key)

	require.NoError(t, err)
	require.NotNil(t, r.UnitLow)
	assert.Equal(t, 300.0, *r.UnitLow)
	require.Len(t, store.lookups, 2)
	assert.Equal(t, types.UnitBasisSquare, store.lookups[0].UnitBasis)
	assert.Equal(t, "", store.lookups[1].UnitBasis)
}

func TestFetchRange_NoFallbackForUnknownRegion(t *testing.T) {
	store := &fakeStore{}
	key := RangeKey{Trade: "roofing", RegionKey: types.RegionUnknown, UnitBasis: types.UnitBasisSquare}

	r, err := FetchRange(context.Background(), store, key)

	require.NoError(t, err)
	assert.Nil(t, r.UnitLow)
	assert.Nil(t, r.UnitHigh)
	assert.Len(t, store.lookups, 1)
}

func TestFetchRange_AbsentRangeIsEmptyNotError(t *testing.T) {
	store := &fakeStore{}
	key := RangeKey{Trade: "roofing", RegionKey: "us-tx-dfw", UnitBasis: types.UnitBasisSquare}

	r, err := FetchRange(context.Background(), store, key)

	require.NoError(t, err)
	assert.Nil(t, r.UnitLow)

	// No-data ranges always classify with zero confidence.
	out := Classify(estimate(430, 22), r)
	assert.Equal(t, 0.0, out.PricingConfidence)
	assert.Equal(t, types.PositionWithinRange, out.PricingPositionLabel)
}

func TestFetchRange_MalformedKeyIsContractViolation(t *testing.T) {
	store := &fakeStore{}

	_, err := FetchRange(context.Background(), store, RangeKey{RegionKey: "us-tx-dfw"})
	assert.Error(t, err)

	_, err = FetchRange(context.Background(), store, RangeKey{Trade: "roofing"})
	assert.Error(t, err)

	assert.Empty(t, store.lookups)
}

func TestFetchRange_StoreErrorPropagates(t *testing.T) {
	store := &fakeStore{err: errors.New("connection reset")}
	key := RangeKey{Trade: "roofing", RegionKey: "us-tx-dfw", UnitBasis: types.UnitBasisSquare}

	_, err := FetchRange(context.Background(), store, key)

	assert.ErrorContains(t, err, "benchmark lookup failed")
}
