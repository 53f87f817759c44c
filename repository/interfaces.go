package repository

import (
	"context"
	"encoding/json"

	"finpulse/models"

	"github.com/google/uuid"
)

// PreferencesStore defines every repository operation the API layer uses
type PreferencesStore interface {
	// Health and lifecycle
	Close()
	Health(ctx context.Context) error

	// Opaque key-value preferences
	GetPreference(ctx context.Context, userID, key string) (json.RawMessage, error)
	SetPreference(ctx context.Context, userID, key string, value json.RawMessage) error
	DeletePreference(ctx context.Context, userID, key string) error
	ListPreferenceKeys(ctx context.Context, userID string) ([]string, error)

	// Saved articles
	GetSavedArticles(ctx context.Context, userID string, limit int) ([]models.SavedArticle, error)
	SaveArticle(ctx context.Context, article *models.SavedArticle) error
	DeleteSavedArticle(ctx context.Context, userID string, id uuid.UUID) error

	// Alert preferences
	GetAlertPreferences(ctx context.Context, userID string) (*models.AlertPreferences, error)
	SetAlertPreferences(ctx context.Context, p *models.AlertPreferences) error
}

// Compile-time interface verification
var _ PreferencesStore = (*Repository)(nil)
