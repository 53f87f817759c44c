package repository

import (
	"context"
	"fmt"
	"time"

	"finpulse/models"
	"finpulse/observability"

	"github.com/jackc/pgx/v5"
)

// GetAlertPreferences returns a user's alert settings, falling back to the
// defaults when the user has never saved any.
func (r *Repository) GetAlertPreferences(ctx context.Context, userID string) (*models.AlertPreferences, error) {
	metrics := observability.GetMetrics()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "alert_preferences", time.Since(start)) }()

	var p models.AlertPreferences
	err := r.db.QueryRow(ctx, `
		SELECT user_id, price_alerts, big_move_alerts, big_move_threshold, updated_at
		FROM alert_preferences WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.PriceAlerts, &p.BigMoveAlerts, &p.BigMoveThreshold, &p.UpdatedAt)

	if err == pgx.ErrNoRows {
		return models.DefaultAlertPreferences(userID), nil
	}
	if err != nil {
		metrics.RecordDBError("select", "alert_preferences")
		return nil, fmt.Errorf("failed to query alert preferences: %w", err)
	}

	return &p, nil
}

// SetAlertPreferences upserts a user's alert settings
func (r *Repository) SetAlertPreferences(ctx context.Context, p *models.AlertPreferences) error {
	metrics := observability.GetMetrics()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", "alert_preferences", time.Since(start)) }()

	_, err := r.db.Exec(ctx, `
		INSERT INTO alert_preferences (user_id, price_alerts, big_move_alerts, big_move_threshold, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET price_alerts = EXCLUDED.price_alerts,
		              big_move_alerts = EXCLUDED.big_move_alerts,
		              big_move_threshold = EXCLUDED.big_move_threshold,
		              updated_at = NOW()
	`, p.UserID, p.PriceAlerts, p.BigMoveAlerts, p.BigMoveThreshold)

	if err != nil {
		metrics.RecordDBError("upsert", "alert_preferences")
		return fmt.Errorf("failed to set alert preferences: %w", err)
	}
	return nil
}
