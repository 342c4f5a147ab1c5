package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"creator_forecast/pkg/core/scenario"
	"creator_forecast/pkg/models"
)

// RunArchive is the persisted shape of one forecast run.
type RunArchive struct {
	RunID       string                        `json:"run_id"`
	Label       string                        `json:"label"`
	Revenue     []models.MonthlyRevenueRecord `json:"revenue"`
	Cash        []models.MonthlyCashRecord    `json:"cash"`
	Summary     models.CashSummary            `json:"summary"`
	Statements  *models.AnnualStatementSet    `json:"statements"`
	Comparisons []scenario.Comparison         `json:"comparisons,omitempty"`
}

// RunRepository abstracts run persistence so the pipeline can be tested
// without a database.
type RunRepository interface {
	Save(ctx context.Context, archive *RunArchive) error
	Load(ctx context.Context, runID string) (*RunArchive, error)
}

// RunRepo stores runs as a single JSONB blob keyed by run ID.
type RunRepo struct{}

// NewRunRepo creates a new repository instance.
func NewRunRepo() *RunRepo {
	return &RunRepo{}
}

// Save upserts the archive by run ID.
//
// Schema assumption (managed elsewhere, e.g. migrations):
//
//	CREATE TABLE IF NOT EXISTS forecast_runs (
//	  run_id TEXT PRIMARY KEY,
//	  label TEXT,
//	  run_json JSONB,
//	  updated_at TIMESTAMPTZ
//	);
func (r *RunRepo) Save(ctx context.Context, archive *RunArchive) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(archive)
	if err != nil {
		return fmt.Errorf("failed to marshal run archive: %w", err)
	}

	query := `
		INSERT INTO forecast_runs (run_id, label, run_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (run_id)
		DO UPDATE SET
			label = EXCLUDED.label,
			run_json = EXCLUDED.run_json,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := pool.Exec(ctx, query, archive.RunID, archive.Label, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// Load retrieves a run archive by ID.
func (r *RunRepo) Load(ctx context.Context, runID string) (*RunArchive, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT run_json FROM forecast_runs WHERE run_id = $1`

	var jsonData []byte
	if err := pool.QueryRow(ctx, query, runID).Scan(&jsonData); err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no run found for id %s", runID)
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	var archive RunArchive
	if err := json.Unmarshal(jsonData, &archive); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run archive: %w", err)
	}
	return &archive, nil
}
