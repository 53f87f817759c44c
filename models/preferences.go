package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedArticle is a news article a user bookmarked for later
type SavedArticle struct {
	ID      uuid.UUID `json:"id"`
	UserID  string    `json:"user_id"`
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	Symbol  string    `json:"symbol,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

// AlertPreferences controls which feed alerts a user wants surfaced. One row
// per user; absent row means the defaults below.
type AlertPreferences struct {
	UserID           string    `json:"user_id"`
	PriceAlerts      bool      `json:"price_alerts"`
	BigMoveAlerts    bool      `json:"big_move_alerts"`
	BigMoveThreshold float64   `json:"big_move_threshold"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DefaultAlertPreferences is returned when a user has never saved any
func DefaultAlertPreferences(userID string) *AlertPreferences {
	return &AlertPreferences{
		UserID:           userID,
		PriceAlerts:      true,
		BigMoveAlerts:    true,
		BigMoveThreshold: 5.0,
	}
}
