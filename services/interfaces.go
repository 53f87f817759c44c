package services

import (
	"context"

	"finpulse/models"
)

// QuoteSource provides current quotes for a set of symbols. Implementations
// are the REST quote API, Alpaca market data, and the synthetic generator.
type QuoteSource interface {
	// Name identifies the source in logs and metrics
	Name() string

	// Quotes returns one tick per requested symbol. Implementations may
	// return fewer ticks than symbols when a symbol is unknown.
	Quotes(ctx context.Context, symbols []string) ([]models.StockPriceTick, error)
}

// RecommendationSource supplies stock recommendations for the chatbot's
// investment-advice replies, filtered by risk tolerance.
type RecommendationSource interface {
	// Name identifies the source in logs and metrics
	Name() string

	Recommendations(ctx context.Context, risk models.RiskTolerance, limit int) ([]models.StockRecommendation, error)
}
