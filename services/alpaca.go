package services

import (
	"context"
	"fmt"
	"time"

	"finpulse/models"
	"finpulse/observability"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// AlpacaQuoteService provides quotes from Alpaca market data. It is an
// alternative live source for the feed's polling fallback.
type AlpacaQuoteService struct {
	dataClient *marketdata.Client
}

// NewAlpacaQuoteService creates a new AlpacaQuoteService instance
func NewAlpacaQuoteService(apiKey, apiSecret string) *AlpacaQuoteService {
	dataClient := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return &AlpacaQuoteService{dataClient: dataClient}
}

// Name implements QuoteSource
func (s *AlpacaQuoteService) Name() string {
	return BreakerAlpaca
}

// Quotes returns one tick per symbol from the latest trade and daily bar
func (s *AlpacaQuoteService) Quotes(ctx context.Context, symbols []string) ([]models.StockPriceTick, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	return WithCircuitBreaker(ctx, BreakerAlpaca, func() ([]models.StockPriceTick, error) {
		start := time.Now()

		trades, err := s.dataClient.GetLatestTrades(symbols, marketdata.GetLatestTradeRequest{})
		if err != nil {
			observability.GetMetrics().RecordExternalAPIError(BreakerAlpaca, "latest_trades", "transport")
			return nil, fmt.Errorf("failed to get latest trades: %w", err)
		}

		// Daily bars supply the previous close needed for change figures.
		// Missing bars degrade to zero change rather than failing the batch.
		bars, err := s.dataClient.GetSnapshots(symbols, marketdata.GetSnapshotRequest{})
		if err != nil {
			observability.WithError(err).Debug("alpaca snapshots unavailable, omitting change figures")
			bars = nil
		}

		now := time.Now()
		ticks := make([]models.StockPriceTick, 0, len(trades))
		for symbol, trade := range trades {
			tick := models.StockPriceTick{
				Symbol:    symbol,
				Price:     decimal.NewFromFloat(trade.Price),
				Volume:    int64(trade.Size),
				Timestamp: now,
			}

			if snap, ok := bars[symbol]; ok && snap != nil && snap.PrevDailyBar != nil && snap.PrevDailyBar.Close > 0 {
				prevClose := decimal.NewFromFloat(snap.PrevDailyBar.Close)
				tick.Change = tick.Price.Sub(prevClose)
				pct, _ := tick.Change.Div(prevClose).Mul(decimal.NewFromInt(100)).Float64()
				tick.ChangePercent = pct
			}
			if snap, ok := bars[symbol]; ok && snap != nil && snap.DailyBar != nil {
				tick.Volume = int64(snap.DailyBar.Volume)
			}

			ticks = append(ticks, tick)
		}

		observability.GetMetrics().RecordExternalAPIRequest(BreakerAlpaca, "latest_trades", time.Since(start))
		return ticks, nil
	})
}
