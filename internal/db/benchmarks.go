package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/benchmark"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

// LatestRange retrieves the most recent benchmark range row matching the key,
// or nil when none exists. An empty UnitBasis matches any basis; the
// benchmark package uses that for its broadened fallback lookup.
// Implements benchmark.RangeStore.
func (db *DB) LatestRange(ctx context.Context, key benchmark.RangeKey) (*types.BenchmarkRange, error) {
	query := `SELECT unit_low, unit_mid, unit_high, COALESCE(source, ''), effective_date
		FROM benchmark_ranges
		WHERE trade = $1 AND region_key = $2`
	args := []any{key.Trade, key.RegionKey}
	argNum := 3

	if key.Subtrade != "" {
		query += fmt.Sprintf(" AND subtrade = $%d", argNum)
		args = append(args, key.Subtrade)
		argNum++
	}
	if key.UnitBasis != "" {
		query += fmt.Sprintf(" AND unit_basis = $%d", argNum)
		args = append(args, key.UnitBasis)
	}

	query += " ORDER BY effective_date DESC LIMIT 1"

	var r types.BenchmarkRange
	err := db.pool.QueryRow(ctx, query, args...).
		Scan(&r.UnitLow, &r.UnitMid, &r.UnitHigh, &r.Source, &r.EffectiveDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get benchmark range: %w", err)
	}
	return &r, nil
}
