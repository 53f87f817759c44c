package repository

import (
	"context"
	"fmt"
	"time"

	"finpulse/models"
	"finpulse/observability"

	"github.com/google/uuid"
)

// GetSavedArticles returns a user's bookmarked articles, newest first
func (r *Repository) GetSavedArticles(ctx context.Context, userID string, limit int) ([]models.SavedArticle, error) {
	metrics := observability.GetMetrics()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "saved_articles", time.Since(start)) }()

	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, url, symbol, saved_at
		FROM saved_articles
		WHERE user_id = $1
		ORDER BY saved_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		metrics.RecordDBError("select", "saved_articles")
		return nil, fmt.Errorf("failed to query saved articles: %w", err)
	}
	defer rows.Close()

	var articles []models.SavedArticle
	for rows.Next() {
		var a models.SavedArticle
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.URL, &a.Symbol, &a.SavedAt); err != nil {
			metrics.RecordDBError("select", "saved_articles")
			return nil, fmt.Errorf("failed to scan saved article: %w", err)
		}
		articles = append(articles, a)
	}

	return articles, nil
}

// SaveArticle bookmarks an article for a user
func (r *Repository) SaveArticle(ctx context.Context, article *models.SavedArticle) error {
	metrics := observability.GetMetrics()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "saved_articles", time.Since(start)) }()

	_, err := r.db.Exec(ctx, `
		INSERT INTO saved_articles (id, user_id, title, url, symbol, saved_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, article.ID, article.UserID, article.Title, article.URL, article.Symbol, article.SavedAt)

	if err != nil {
		metrics.RecordDBError("insert", "saved_articles")
		return fmt.Errorf("failed to save article: %w", err)
	}
	return nil
}

// DeleteSavedArticle removes a bookmark. Only the owning user's row matches.
func (r *Repository) DeleteSavedArticle(ctx context.Context, userID string, id uuid.UUID) error {
	metrics := observability.GetMetrics()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("delete", "saved_articles", time.Since(start)) }()

	_, err := r.db.Exec(ctx, `
		DELETE FROM saved_articles WHERE id = $1 AND user_id = $2
	`, id, userID)

	if err != nil {
		metrics.RecordDBError("delete", "saved_articles")
		return fmt.Errorf("failed to delete saved article: %w", err)
	}
	return nil
}
