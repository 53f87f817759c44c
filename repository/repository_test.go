package repository

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"finpulse/models"

	"github.com/google/uuid"
)

// getTestDB returns a repository connected to the test database.
// If DATABASE_URL is not set, the test is skipped.
func getTestDB(t *testing.T) *Repository {
	t.Helper()

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	repo, err := NewRepository(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	return repo
}

func cleanupUser(t *testing.T, repo *Repository, userID string) {
	t.Helper()
	ctx := context.Background()
	repo.pool.Exec(ctx, "DELETE FROM user_preferences WHERE user_id = $1", userID)
	repo.pool.Exec(ctx, "DELETE FROM saved_articles WHERE user_id = $1", userID)
	repo.pool.Exec(ctx, "DELETE FROM alert_preferences WHERE user_id = $1", userID)
}

func TestPreferences_SetGetDelete(t *testing.T) {
	repo := getTestDB(t)
	defer repo.Close()

	userID := "test-user-" + uuid.NewString()
	cleanupUser(t, repo, userID)
	defer cleanupUser(t, repo, userID)

	ctx := context.Background()

	// Missing key reads as nil, not an error
	got, err := repo.GetPreference(ctx, userID, "theme")
	if err != nil {
		t.Fatalf("GetPreference on missing key: %v", err)
	}
	if got != nil {
		t.Errorf("missing preference = %s, want nil", got)
	}

	if err := repo.SetPreference(ctx, userID, "theme", json.RawMessage(`{"mode":"dark"}`)); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}

	got, err = repo.GetPreference(ctx, userID, "theme")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	var theme struct {
		Mode string `json:"mode"`
	}
	if err := json.Unmarshal(got, &theme); err != nil {
		t.Fatalf("stored preference is not valid JSON: %v", err)
	}
	if theme.Mode != "dark" {
		t.Errorf("theme.mode = %q, want %q", theme.Mode, "dark")
	}

	// Upsert replaces the value
	if err := repo.SetPreference(ctx, userID, "theme", json.RawMessage(`{"mode":"light"}`)); err != nil {
		t.Fatalf("SetPreference upsert: %v", err)
	}
	got, _ = repo.GetPreference(ctx, userID, "theme")
	if err := json.Unmarshal(got, &theme); err != nil || theme.Mode != "light" {
		t.Errorf("after upsert theme.mode = %q, want %q", theme.Mode, "light")
	}

	if err := repo.DeletePreference(ctx, userID, "theme"); err != nil {
		t.Fatalf("DeletePreference: %v", err)
	}
	got, _ = repo.GetPreference(ctx, userID, "theme")
	if got != nil {
		t.Errorf("preference survived delete: %s", got)
	}
}

func TestPreferences_RejectsInvalidJSON(t *testing.T) {
	repo := getTestDB(t)
	defer repo.Close()

	userID := "test-user-" + uuid.NewString()
	defer cleanupUser(t, repo, userID)

	err := repo.SetPreference(context.Background(), userID, "broken", json.RawMessage(`{not json`))
	if err == nil {
		t.Error("SetPreference accepted invalid JSON")
	}
}

func TestPreferences_ListKeys(t *testing.T) {
	repo := getTestDB(t)
	defer repo.Close()

	userID := "test-user-" + uuid.NewString()
	defer cleanupUser(t, repo, userID)

	ctx := context.Background()
	for _, key := range []string{"watchlist", "theme", "session"} {
		if err := repo.SetPreference(ctx, userID, key, json.RawMessage(`true`)); err != nil {
			t.Fatalf("SetPreference(%q): %v", key, err)
		}
	}

	keys, err := repo.ListPreferenceKeys(ctx, userID)
	if err != nil {
		t.Fatalf("ListPreferenceKeys: %v", err)
	}
	if len(keys) != 3 {
		t.Errorf("keys = %v, want 3 entries", keys)
	}
}

func TestSavedArticles_RoundTrip(t *testing.T) {
	repo := getTestDB(t)
	defer repo.Close()

	userID := "test-user-" + uuid.NewString()
	defer cleanupUser(t, repo, userID)

	ctx := context.Background()
	article := &models.SavedArticle{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   "Markets end mixed",
		URL:     "https://example.com/markets-end-mixed",
		Symbol:  "AAPL",
		SavedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	if err := repo.SaveArticle(ctx, article); err != nil {
		t.Fatalf("SaveArticle: %v", err)
	}

	articles, err := repo.GetSavedArticles(ctx, userID, 10)
	if err != nil {
		t.Fatalf("GetSavedArticles: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("articles = %d, want 1", len(articles))
	}
	if articles[0].Title != article.Title || articles[0].Symbol != "AAPL" {
		t.Errorf("round-tripped article = %+v", articles[0])
	}

	if err := repo.DeleteSavedArticle(ctx, userID, article.ID); err != nil {
		t.Fatalf("DeleteSavedArticle: %v", err)
	}
	articles, _ = repo.GetSavedArticles(ctx, userID, 10)
	if len(articles) != 0 {
		t.Errorf("article survived delete")
	}
}

func TestAlertPreferences_DefaultsAndUpsert(t *testing.T) {
	repo := getTestDB(t)
	defer repo.Close()

	userID := "test-user-" + uuid.NewString()
	defer cleanupUser(t, repo, userID)

	ctx := context.Background()

	// No row yet yields the defaults
	prefs, err := repo.GetAlertPreferences(ctx, userID)
	if err != nil {
		t.Fatalf("GetAlertPreferences: %v", err)
	}
	if !prefs.PriceAlerts || prefs.BigMoveThreshold != 5.0 {
		t.Errorf("defaults = %+v", prefs)
	}

	prefs.PriceAlerts = false
	prefs.BigMoveThreshold = 8.0
	if err := repo.SetAlertPreferences(ctx, prefs); err != nil {
		t.Fatalf("SetAlertPreferences: %v", err)
	}

	stored, err := repo.GetAlertPreferences(ctx, userID)
	if err != nil {
		t.Fatalf("GetAlertPreferences after set: %v", err)
	}
	if stored.PriceAlerts || stored.BigMoveThreshold != 8.0 {
		t.Errorf("stored prefs = %+v", stored)
	}
}
