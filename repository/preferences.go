package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"finpulse/observability"
)

// GetPreference returns the raw JSON value stored under (userID, key), or
// nil when nothing is stored.
func (r *Repository) GetPreference(ctx context.Context, userID, key string) (json.RawMessage, error) {
	metrics := observability.GetMetrics()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "user_preferences", time.Since(start)) }()

	var value []byte
	err := r.db.QueryRow(ctx, `
		SELECT value FROM user_preferences
		WHERE user_id = $1 AND key = $2
	`, userID, key).Scan(&value)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		metrics.RecordDBError("select", "user_preferences")
		return nil, fmt.Errorf("failed to query preference: %w", err)
	}

	return value, nil
}

// SetPreference upserts a JSON value under (userID, key)
func (r *Repository) SetPreference(ctx context.Context, userID, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("preference value for %q is not valid JSON", key)
	}

	metrics := observability.GetMetrics()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", "user_preferences", time.Since(start)) }()

	_, err := r.db.Exec(ctx, `
		INSERT INTO user_preferences (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, userID, key, []byte(value))

	if err != nil {
		metrics.RecordDBError("upsert", "user_preferences")
		return fmt.Errorf("failed to set preference: %w", err)
	}
	return nil
}

// DeletePreference removes the value stored under (userID, key). Deleting a
// missing key is not an error.
func (r *Repository) DeletePreference(ctx context.Context, userID, key string) error {
	metrics := observability.GetMetrics()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("delete", "user_preferences", time.Since(start)) }()

	_, err := r.db.Exec(ctx, `
		DELETE FROM user_preferences WHERE user_id = $1 AND key = $2
	`, userID, key)

	if err != nil {
		metrics.RecordDBError("delete", "user_preferences")
		return fmt.Errorf("failed to delete preference: %w", err)
	}
	return nil
}

// ListPreferenceKeys returns every key a user has stored
func (r *Repository) ListPreferenceKeys(ctx context.Context, userID string) ([]string, error) {
	metrics := observability.GetMetrics()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "user_preferences", time.Since(start)) }()

	rows, err := r.db.Query(ctx, `
		SELECT key FROM user_preferences WHERE user_id = $1 ORDER BY key
	`, userID)
	if err != nil {
		metrics.RecordDBError("select", "user_preferences")
		return nil, fmt.Errorf("failed to list preference keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			metrics.RecordDBError("select", "user_preferences")
			return nil, fmt.Errorf("failed to scan preference key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, nil
}
