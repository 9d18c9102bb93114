package storage

import (
	"context"
	"fmt"

	"github.com/repquest/repquest/internal/models"
)

// UpsertBodyMetric stores a dated measurement. The conflict key is
// (user, date): a second save for the same date overwrites the first entry
// rather than creating a duplicate.
func (db *DB) UpsertBodyMetric(ctx context.Context, userID int, m models.BodyMetric) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO body_metrics (user_id, metric_date, weight, waist, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, metric_date)
			DO UPDATE SET weight = $3, waist = $4, updated_at = NOW()
	`, userID, m.Date, m.Weight, m.Waist)
	if err != nil {
		return fmt.Errorf("upserting body metric: %w", err)
	}
	return nil
}

// QueryBodyMetrics retrieves a user's measurements, most recent first.
func (db *DB) QueryBodyMetrics(ctx context.Context, userID int) ([]models.BodyMetric, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT to_char(metric_date, 'YYYY-MM-DD'), weight, waist
		FROM body_metrics
		WHERE user_id = $1
		ORDER BY metric_date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying body metrics: %w", err)
	}
	defer rows.Close()

	var result []models.BodyMetric
	for rows.Next() {
		var m models.BodyMetric
		if err := rows.Scan(&m.Date, &m.Weight, &m.Waist); err != nil {
			return nil, fmt.Errorf("scanning body metric: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// DeleteBodyMetric removes the measurement for a date. Returns false when
// no entry existed.
func (db *DB) DeleteBodyMetric(ctx context.Context, userID int, date string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM body_metrics WHERE user_id = $1 AND metric_date = $2`, userID, date)
	if err != nil {
		return false, fmt.Errorf("deleting body metric: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
