package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

// SaveAnalysis stores one analysis run, replacing any prior analysis for the
// submission. A re-score fully overwrites; there is no incremental update.
func (db *DB) SaveAnalysis(ctx context.Context, analysis *types.Analysis) (uuid.UUID, error) {
	reportJSON, err := json.Marshal(analysis.Report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal score report: %w", err)
	}
	findingsJSON, err := json.Marshal(analysis.PreviewFindings)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal preview findings: %w", err)
	}
	pricingJSON, err := json.Marshal(analysis.Pricing)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal pricing classification: %w", err)
	}
	estimateJSON, err := json.Marshal(analysis.UnitEstimate)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal unit estimate: %w", err)
	}
	benchmarkJSON, err := json.Marshal(analysis.Benchmark)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal benchmark range: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO analyses
		   (submission_id, report, preview_findings, pricing, unit_estimate, benchmark, unit_basis, normalized_quantity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (submission_id) DO UPDATE SET
		   report = $2, preview_findings = $3, pricing = $4, unit_estimate = $5,
		   benchmark = $6, unit_basis = $7, normalized_quantity = $8, created_at = NOW()
		 RETURNING id`,
		analysis.SubmissionID, reportJSON, findingsJSON, pricingJSON, estimateJSON, benchmarkJSON,
		analysis.UnitBasis, analysis.NormalizedQuantity,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return id, nil
}

// GetAnalysis retrieves the stored analysis for a submission. Returns nil
// when the submission has not been analyzed yet.
func (db *DB) GetAnalysis(ctx context.Context, submissionID uuid.UUID) (*types.Analysis, error) {
	var analysis types.Analysis
	var reportJSON, findingsJSON, pricingJSON, estimateJSON, benchmarkJSON []byte
	var unitBasis *string

	err := db.pool.QueryRow(ctx,
		`SELECT id, submission_id, report, preview_findings, pricing, unit_estimate, benchmark,
		        unit_basis, normalized_quantity, created_at
		 FROM analyses WHERE submission_id = $1`,
		submissionID,
	).Scan(&analysis.ID, &analysis.SubmissionID, &reportJSON, &findingsJSON, &pricingJSON,
		&estimateJSON, &benchmarkJSON, &unitBasis, &analysis.NormalizedQuantity, &analysis.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if unitBasis != nil {
		analysis.UnitBasis = *unitBasis
	}
	if len(reportJSON) > 0 {
		_ = json.Unmarshal(reportJSON, &analysis.Report)
	}
	if len(findingsJSON) > 0 {
		_ = json.Unmarshal(findingsJSON, &analysis.PreviewFindings)
	}
	if len(pricingJSON) > 0 {
		_ = json.Unmarshal(pricingJSON, &analysis.Pricing)
	}
	if len(estimateJSON) > 0 {
		_ = json.Unmarshal(estimateJSON, &analysis.UnitEstimate)
	}
	if len(benchmarkJSON) > 0 {
		_ = json.Unmarshal(benchmarkJSON, &analysis.Benchmark)
	}

	return &analysis, nil
}

// GetPriorAnalysis retrieves just the normalizer snapshot of a stored
// analysis, which keeps re-scoring idempotent. Returns nil when absent.
func (db *DB) GetPriorAnalysis(ctx context.Context, submissionID uuid.UUID) (*types.PriorAnalysis, error) {
	var prior types.PriorAnalysis
	var unitBasis *string
	err := db.pool.QueryRow(ctx,
		`SELECT unit_basis, normalized_quantity FROM analyses WHERE submission_id = $1`,
		submissionID,
	).Scan(&unitBasis, &prior.NormalizedQuantity)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prior analysis: %w", err)
	}
	if unitBasis != nil {
		prior.UnitBasis = *unitBasis
	}
	return &prior, nil
}

// AnalysisFilters holds optional filters for listing analyses
type AnalysisFilters struct {
	Trade     string
	RegionKey string
	Limit     int
}

// AnalysisSummary is a lightweight view of a stored analysis for listing
type AnalysisSummary struct {
	ID           uuid.UUID `json:"id"`
	SubmissionID uuid.UUID `json:"submission_id"`
	Trade        string    `json:"trade"`
	RegionKey    string    `json:"region_key"`
	CreatedAt    string    `json:"created_at"`
}

// ListAnalyses retrieves recent analyses with optional filters
func (db *DB) ListAnalyses(ctx context.Context, filters AnalysisFilters) ([]AnalysisSummary, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT a.id, a.submission_id, s.trade, s.region_key, a.created_at
		FROM analyses a JOIN submissions s ON s.id = a.submission_id WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Trade != "" {
		query += fmt.Sprintf(" AND s.trade = $%d", argNum)
		args = append(args, filters.Trade)
		argNum++
	}
	if filters.RegionKey != "" {
		query += fmt.Sprintf(" AND s.region_key = $%d", argNum)
		args = append(args, filters.RegionKey)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var summaries []AnalysisSummary
	for rows.Next() {
		var s AnalysisSummary
		var createdAt any
		if err := rows.Scan(&s.ID, &s.SubmissionID, &s.Trade, &s.RegionKey, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		if t, ok := createdAt.(interface{ String() string }); ok {
			s.CreatedAt = t.String()
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
