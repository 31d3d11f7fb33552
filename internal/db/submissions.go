package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

// CreateSubmission creates a new quote submission record and returns its ID
func (db *DB) CreateSubmission(ctx context.Context, sub types.Submission) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO submissions (trade, subtrade, region_key, project_value)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		sub.Trade, sub.Subtrade, sub.RegionKey, sub.ProjectValue,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create submission: %w", err)
	}
	return id, nil
}

// GetSubmission retrieves a submission by ID. Returns nil when not found.
func (db *DB) GetSubmission(ctx context.Context, id uuid.UUID) (*types.Submission, error) {
	var sub types.Submission
	err := db.pool.QueryRow(ctx,
		`SELECT id, trade, COALESCE(subtrade, ''), region_key, project_value, created_at
		 FROM submissions WHERE id = $1`,
		id,
	).Scan(&sub.ID, &sub.Trade, &sub.Subtrade, &sub.RegionKey, &sub.ProjectValue, &sub.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &sub, nil
}

// SaveAiResult stores the raw extraction payload alongside a submission so a
// later rescore can replay it without re-uploading
func (db *DB) SaveAiResult(ctx context.Context, submissionID uuid.UUID, raw []byte) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE submissions SET ai_result = $2 WHERE id = $1`,
		submissionID, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save AI result: %w", err)
	}
	return nil
}

// GetAiResult retrieves the stored extraction payload for a submission.
// Returns nil when the submission has no stored payload.
func (db *DB) GetAiResult(ctx context.Context, submissionID uuid.UUID) ([]byte, error) {
	var raw []byte
	err := db.pool.QueryRow(ctx,
		`SELECT ai_result FROM submissions WHERE id = $1`,
		submissionID,
	).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get AI result: %w", err)
	}
	return raw, nil
}

// SaveLineItems replaces the stored line items for a submission
func (db *DB) SaveLineItems(ctx context.Context, submissionID uuid.UUID, items []types.LineItemRow) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM line_items WHERE submission_id = $1`, submissionID); err != nil {
		return fmt.Errorf("failed to clear line items: %w", err)
	}

	for i, item := range items {
		sortOrder := item.SortOrder
		if sortOrder == 0 {
			sortOrder = i
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO line_items
			   (submission_id, description_raw, description_normalized, quantity, unit, unit_price, line_total, category, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			submissionID, item.DescriptionRaw, item.DescriptionNormalized,
			item.Quantity, item.Unit, item.UnitPrice, item.LineTotal, item.Category, sortOrder,
		)
		if err != nil {
			return fmt.Errorf("failed to insert line item %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit line items: %w", err)
	}
	return nil
}

// ListLineItems retrieves the stored line items for a submission in sort order
func (db *DB) ListLineItems(ctx context.Context, submissionID uuid.UUID) ([]types.LineItemRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT COALESCE(description_raw, ''), COALESCE(description_normalized, ''),
		        quantity, COALESCE(unit, ''), unit_price, line_total, COALESCE(category, ''), sort_order
		 FROM line_items WHERE submission_id = $1 ORDER BY sort_order ASC`,
		submissionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	defer rows.Close()

	var items []types.LineItemRow
	for rows.Next() {
		var item types.LineItemRow
		if err := rows.Scan(&item.DescriptionRaw, &item.DescriptionNormalized,
			&item.Quantity, &item.Unit, &item.UnitPrice, &item.LineTotal,
			&item.Category, &item.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}
