package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"finpulse/models"
	"finpulse/observability"

	"github.com/shopspring/decimal"
)

// QuoteAPIService fetches live quotes from a Financial Modeling Prep style
// REST API. It backs the feed's polling fallback when a live source is
// configured.
type QuoteAPIService struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewQuoteAPIService creates a new QuoteAPIService instance
func NewQuoteAPIService(apiKey, baseURL string) *QuoteAPIService {
	return &QuoteAPIService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}
}

// quoteResponse represents a single quote from the /quote endpoint
type quoteResponse struct {
	Symbol            string  `json:"symbol"`
	Price             float64 `json:"price"`
	Change            float64 `json:"change"`
	ChangesPercentage float64 `json:"changesPercentage"`
	Volume            int64   `json:"volume"`
}

// Name implements QuoteSource
func (s *QuoteAPIService) Name() string {
	return BreakerQuotes
}

// Quotes returns current ticks for the given symbols in a single batched call
func (s *QuoteAPIService) Quotes(ctx context.Context, symbols []string) ([]models.StockPriceTick, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	return WithCircuitBreaker(ctx, BreakerQuotes, func() ([]models.StockPriceTick, error) {
		var ticks []models.StockPriceTick

		err := WithRetry(ctx, DefaultRetryConfig, func() error {
			start := time.Now()

			params := url.Values{}
			params.Set("apikey", s.apiKey)
			reqURL := s.baseURL + "/quote/" + url.PathEscape(strings.Join(symbols, ",")) + "?" + params.Encode()

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return fmt.Errorf("failed to create quote request: %w", err)
			}

			resp, err := s.httpClient.Do(req)
			if err != nil {
				observability.GetMetrics().RecordExternalAPIError(BreakerQuotes, "quotes", "transport")
				return fmt.Errorf("quote request failed: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				observability.GetMetrics().RecordExternalAPIError(BreakerQuotes, "quotes", fmt.Sprintf("http_%d", resp.StatusCode))
				return fmt.Errorf("quote API returned status %d", resp.StatusCode)
			}

			var quotes []quoteResponse
			if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
				observability.GetMetrics().RecordExternalAPIError(BreakerQuotes, "quotes", "decode")
				return fmt.Errorf("failed to decode quote response: %w", err)
			}

			now := time.Now()
			ticks = make([]models.StockPriceTick, 0, len(quotes))
			for _, q := range quotes {
				ticks = append(ticks, models.StockPriceTick{
					Symbol:        q.Symbol,
					Price:         decimal.NewFromFloat(q.Price),
					Change:        decimal.NewFromFloat(q.Change),
					ChangePercent: q.ChangesPercentage,
					Volume:        q.Volume,
					Timestamp:     now,
				})
			}

			observability.GetMetrics().RecordExternalAPIRequest(BreakerQuotes, "quotes", time.Since(start))
			return nil
		})
		if err != nil {
			return nil, err
		}

		return ticks, nil
	})
}
