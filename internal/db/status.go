package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StageStatus is the completion marker written after a pipeline stage
// finishes. The orchestrator consults it instead of inferring completion
// from collection emptiness, which is ambiguous after a partial run.
type StageStatus struct {
	Stage       string    `json:"stage"`
	RunID       uuid.UUID `json:"run_id"`
	ItemCount   int       `json:"item_count"`
	CompletedAt time.Time `json:"completed_at"`
}

// MarkStageComplete upserts the completion marker for a stage.
func (db *DB) MarkStageComplete(ctx context.Context, stage string, runID uuid.UUID, itemCount int) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO stage_status (stage, run_id, item_count, completed_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (stage) DO UPDATE SET run_id = $2, item_count = $3, completed_at = NOW()`,
		stage, runID, itemCount)
	if err != nil {
		return fmt.Errorf("failed to mark stage %s complete: %w", stage, err)
	}
	return nil
}

// GetStageStatus returns the completion marker for a stage, or nil when the
// stage has never completed.
func (db *DB) GetStageStatus(ctx context.Context, stage string) (*StageStatus, error) {
	var s StageStatus
	err := db.pool.QueryRow(ctx,
		`SELECT stage, run_id, item_count, completed_at FROM stage_status WHERE stage = $1`,
		stage,
	).Scan(&s.Stage, &s.RunID, &s.ItemCount, &s.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stage status: %w", err)
	}
	return &s, nil
}

// ListStageStatus returns all completion markers ordered by completion time.
func (db *DB) ListStageStatus(ctx context.Context) ([]StageStatus, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT stage, run_id, item_count, completed_at FROM stage_status ORDER BY completed_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stage status: %w", err)
	}
	defer rows.Close()

	var statuses []StageStatus
	for rows.Next() {
		var s StageStatus
		if err := rows.Scan(&s.Stage, &s.RunID, &s.ItemCount, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stage status: %w", err)
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}
