// Package benchmark positions a quote's effective unit price against
// regional market price ranges.
//
// The range fetch is the only I/O in the analysis core: a single read-only
// lookup with an optional one-shot broader retry. Fetching and classifying
// both degrade to a no-data sentinel instead of failing; the only errors
// that propagate are contract violations such as a malformed key.
package benchmark

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

// RangeKey identifies one benchmark range row. An empty UnitBasis matches
// any basis and is how the broadened fallback lookup is expressed.
type RangeKey struct {
	Trade     string
	Subtrade  string
	RegionKey string
	UnitBasis string
}

// RangeStore is the read-only benchmark data source. Implementations return
// the most recent matching row, or nil when none exists; nil is not an error.
type RangeStore interface {
	LatestRange(ctx context.Context, key RangeKey) (*types.BenchmarkRange, error)
}

// FetchRange looks up the benchmark range for key. When no row matches and
// the region is not the generic unknown bucket, it retries once without the
// unit-basis filter. A still-absent range comes back as an empty (all-nil)
// range rather than an error.
func FetchRange(ctx context.Context, store RangeStore, key RangeKey) (types.BenchmarkRange, error) {
	if err := validateKey(key); err != nil {
		return types.BenchmarkRange{}, err
	}

	r, err := store.LatestRange(ctx, key)
	if err != nil {
		return types.BenchmarkRange{}, fmt.Errorf("benchmark lookup failed: %w", err)
	}

	if r == nil && key.RegionKey != types.RegionUnknown {
		broadened := key
		broadened.UnitBasis = ""
		r, err = store.LatestRange(ctx, broadened)
		if err != nil {
			return types.BenchmarkRange{}, fmt.Errorf("benchmark fallback lookup failed: %w", err)
		}
	}

	if r == nil {
		return types.BenchmarkRange{}, nil
	}
	return *r, nil
}

// validateKey rejects keys that indicate a programming error rather than a
// normal degraded-data condition.
func validateKey(key RangeKey) error {
	if strings.TrimSpace(key.Trade) == "" {
		return fmt.Errorf("benchmark range key is missing a trade")
	}
	if strings.TrimSpace(key.RegionKey) == "" {
		return fmt.Errorf("benchmark range key is missing a region")
	}
	return nil
}
