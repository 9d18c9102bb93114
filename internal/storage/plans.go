package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/repquest/repquest/internal/models"
)

// GetPlan retrieves a user's workout plan. Returns (nil, nil) when the
// user has never saved one.
func (db *DB) GetPlan(ctx context.Context, userID int) (models.Plan, error) {
	var raw []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT plan FROM plans WHERE user_id = $1`, userID).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	var plan models.Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	return plan, nil
}

// UpsertPlan stores a user's plan as a single JSON blob, replacing any
// prior version.
func (db *DB) UpsertPlan(ctx context.Context, userID int, plan models.Plan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO plans (user_id, plan, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET plan = $2, updated_at = NOW()
	`, userID, raw)
	if err != nil {
		return fmt.Errorf("upserting plan: %w", err)
	}
	return nil
}
