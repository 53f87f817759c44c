package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"finpulse/models"
	"finpulse/observability"
)

// staticRecommendations is the in-memory recommendation table. It mirrors
// the curated list the advice generator has always returned; the remote
// source below is the live alternative.
var staticRecommendations = []models.StockRecommendation{
	{Symbol: "VTI", CompanyName: "Vanguard Total Stock Market ETF", Reason: "Broad market exposure with a very low expense ratio", RiskLevel: models.RiskToleranceLow},
	{Symbol: "JNJ", CompanyName: "Johnson & Johnson", Reason: "Defensive healthcare name with decades of dividend growth", RiskLevel: models.RiskToleranceLow},
	{Symbol: "PG", CompanyName: "Procter & Gamble", Reason: "Stable consumer staples cash flows", RiskLevel: models.RiskToleranceLow},
	{Symbol: "KO", CompanyName: "Coca-Cola Company", Reason: "Durable brand with a reliable dividend", RiskLevel: models.RiskToleranceLow},
	{Symbol: "BND", CompanyName: "Vanguard Total Bond Market ETF", Reason: "Core bond exposure to dampen volatility", RiskLevel: models.RiskToleranceLow},
	{Symbol: "VOO", CompanyName: "Vanguard S&P 500 ETF", Reason: "Low-cost core holding tracking the S&P 500", RiskLevel: models.RiskToleranceMedium},
	{Symbol: "AAPL", CompanyName: "Apple Inc.", Reason: "Strong balance sheet and an entrenched ecosystem", RiskLevel: models.RiskToleranceMedium},
	{Symbol: "MSFT", CompanyName: "Microsoft Corporation", Reason: "Diversified software and cloud franchise", RiskLevel: models.RiskToleranceMedium},
	{Symbol: "JPM", CompanyName: "JPMorgan Chase & Co.", Reason: "Best-in-class bank trading near book value", RiskLevel: models.RiskToleranceMedium},
	{Symbol: "COST", CompanyName: "Costco Wholesale", Reason: "Membership model with consistent comparable sales growth", RiskLevel: models.RiskToleranceMedium},
	{Symbol: "NVDA", CompanyName: "NVIDIA Corporation", Reason: "Dominant position in AI accelerators", RiskLevel: models.RiskToleranceHigh},
	{Symbol: "TSLA", CompanyName: "Tesla Inc.", Reason: "High-growth EV and energy storage bet", RiskLevel: models.RiskToleranceHigh},
	{Symbol: "AMD", CompanyName: "Advanced Micro Devices", Reason: "Share gains in data center CPUs and GPUs", RiskLevel: models.RiskToleranceHigh},
	{Symbol: "SHOP", CompanyName: "Shopify Inc.", Reason: "Commerce platform with a long growth runway", RiskLevel: models.RiskToleranceHigh},
	{Symbol: "ARKK", CompanyName: "ARK Innovation ETF", Reason: "Concentrated exposure to disruptive growth themes", RiskLevel: models.RiskToleranceHigh},
}

// StaticRecommendationSource serves recommendations from the fixed table
type StaticRecommendationSource struct{}

// NewStaticRecommendationSource creates a table-backed recommendation source
func NewStaticRecommendationSource() *StaticRecommendationSource {
	return &StaticRecommendationSource{}
}

// Name implements RecommendationSource
func (s *StaticRecommendationSource) Name() string {
	return "static"
}

// Recommendations returns up to limit entries matching the given risk level
func (s *StaticRecommendationSource) Recommendations(ctx context.Context, risk models.RiskTolerance, limit int) ([]models.StockRecommendation, error) {
	out := make([]models.StockRecommendation, 0, limit)
	for _, rec := range staticRecommendations {
		if rec.RiskLevel != risk {
			continue
		}
		out = append(out, rec)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// recommendationQuery is the GraphQL query used by the remote source
const recommendationQuery = `query AIRecommendations($riskLevel: String!, $limit: Int!) {
  aiRecommendations(riskLevel: $riskLevel, limit: $limit) {
    symbol
    companyName
    reason
    riskLevel
  }
}`

// RemoteRecommendationSource queries a GraphQL recommendation endpoint.
// Selected with CHATBOT_RECOMMENDATION_SOURCE=remote.
type RemoteRecommendationSource struct {
	endpoint   string
	httpClient *http.Client
}

// NewRemoteRecommendationSource creates a GraphQL-backed recommendation source
func NewRemoteRecommendationSource(endpoint string) *RemoteRecommendationSource {
	return &RemoteRecommendationSource{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name implements RecommendationSource
func (s *RemoteRecommendationSource) Name() string {
	return BreakerRecommendations
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type recommendationResponse struct {
	Data struct {
		AIRecommendations []struct {
			Symbol      string `json:"symbol"`
			CompanyName string `json:"companyName"`
			Reason      string `json:"reason"`
			RiskLevel   string `json:"riskLevel"`
		} `json:"aiRecommendations"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Recommendations fetches risk-filtered recommendations from the endpoint
func (s *RemoteRecommendationSource) Recommendations(ctx context.Context, risk models.RiskTolerance, limit int) ([]models.StockRecommendation, error) {
	return WithCircuitBreaker(ctx, BreakerRecommendations, func() ([]models.StockRecommendation, error) {
		var recs []models.StockRecommendation

		err := WithRetry(ctx, DefaultRetryConfig, func() error {
			start := time.Now()

			body, err := json.Marshal(graphqlRequest{
				Query: recommendationQuery,
				Variables: map[string]any{
					"riskLevel": string(risk),
					"limit":     limit,
				},
			})
			if err != nil {
				return fmt.Errorf("failed to marshal recommendation query: %w", err)
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("failed to create recommendation request: %w", err)
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := s.httpClient.Do(req)
			if err != nil {
				observability.GetMetrics().RecordExternalAPIError(BreakerRecommendations, "recommendations", "transport")
				return fmt.Errorf("recommendation request failed: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				observability.GetMetrics().RecordExternalAPIError(BreakerRecommendations, "recommendations", fmt.Sprintf("http_%d", resp.StatusCode))
				return fmt.Errorf("recommendation endpoint returned status %d", resp.StatusCode)
			}

			var parsed recommendationResponse
			if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
				observability.GetMetrics().RecordExternalAPIError(BreakerRecommendations, "recommendations", "decode")
				return fmt.Errorf("failed to decode recommendation response: %w", err)
			}
			if len(parsed.Errors) > 0 {
				return fmt.Errorf("recommendation query failed: %s", parsed.Errors[0].Message)
			}

			recs = make([]models.StockRecommendation, 0, len(parsed.Data.AIRecommendations))
			for _, r := range parsed.Data.AIRecommendations {
				recs = append(recs, models.StockRecommendation{
					Symbol:      r.Symbol,
					CompanyName: r.CompanyName,
					Reason:      r.Reason,
					RiskLevel:   models.RiskTolerance(r.RiskLevel),
				})
			}

			observability.GetMetrics().RecordExternalAPIRequest(BreakerRecommendations, "recommendations", time.Since(start))
			return nil
		})
		if err != nil {
			return nil, err
		}

		return recs, nil
	})
}
