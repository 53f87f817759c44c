package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"finpulse/models"

	"github.com/shopspring/decimal"
)

// basePrices anchors synthetic ticks to plausible levels for well-known
// symbols. Unknown symbols start at defaultBasePrice.
var basePrices = map[string]float64{
	"AAPL":  234.07,
	"GOOGL": 240.80,
	"MSFT":  509.90,
	"AMZN":  228.15,
	"NVDA":  875.28,
	"META":  485.12,
	"TSLA":  395.94,
	"NFLX":  1188.44,
	"AMD":   158.57,
	"INTC":  24.08,
	"CRM":   242.76,
	"ADBE":  349.36,
	"JPM":   178.45,
	"BAC":   34.56,
	"WFC":   45.78,
}

const defaultBasePrice = 100.0

// SyntheticQuoteSource generates pseudo-random ticks so the UI always has
// data even when every live source is down. Prices follow a bounded random
// walk from a fixed base-price table.
type SyntheticQuoteSource struct {
	mu      sync.Mutex
	rng     *rand.Rand
	last    map[string]float64
	nowFunc func() time.Time
}

// NewSyntheticQuoteSource creates a source seeded from the current time
func NewSyntheticQuoteSource() *SyntheticQuoteSource {
	return NewSyntheticQuoteSourceWithSeed(time.Now().UnixNano())
}

// NewSyntheticQuoteSourceWithSeed creates a deterministic source for tests
func NewSyntheticQuoteSourceWithSeed(seed int64) *SyntheticQuoteSource {
	return &SyntheticQuoteSource{
		rng:     rand.New(rand.NewSource(seed)),
		last:    make(map[string]float64),
		nowFunc: time.Now,
	}
}

// Name implements QuoteSource
func (s *SyntheticQuoteSource) Name() string {
	return "synthetic"
}

// Quotes always succeeds and returns exactly one tick per requested symbol
func (s *SyntheticQuoteSource) Quotes(ctx context.Context, symbols []string) ([]models.StockPriceTick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	ticks := make([]models.StockPriceTick, 0, len(symbols))
	for _, symbol := range symbols {
		base, ok := basePrices[symbol]
		if !ok {
			base = defaultBasePrice
		}

		prev, ok := s.last[symbol]
		if !ok {
			prev = base
		}

		// Walk up to ±1% per tick, clamped to ±10% of the base price
		price := prev * (1 + (s.rng.Float64()-0.5)*0.02)
		if price < base*0.9 {
			price = base * 0.9
		}
		if price > base*1.1 {
			price = base * 1.1
		}
		s.last[symbol] = price

		change := price - base
		ticks = append(ticks, models.StockPriceTick{
			Symbol:        symbol,
			Price:         decimal.NewFromFloat(price).Round(2),
			Change:        decimal.NewFromFloat(change).Round(2),
			ChangePercent: change / base * 100,
			Volume:        int64(s.rng.Intn(9_000_000) + 1_000_000),
			Timestamp:     now,
		})
	}

	return ticks, nil
}
