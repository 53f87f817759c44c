package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketStatus reports whether the exchange is currently trading
type MarketStatus string

const (
	MarketStatusOpen      MarketStatus = "open"
	MarketStatusClosed    MarketStatus = "closed"
	MarketStatusPreMarket MarketStatus = "pre_market"
	MarketStatusAfterHrs  MarketStatus = "after_hours"
)

// StockPriceTick represents a single real-time price update for one symbol.
// Ticks are immutable once emitted and are not persisted.
type StockPriceTick struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent float64         `json:"change_percent"`
	Volume        int64           `json:"volume"`
	Timestamp     time.Time       `json:"timestamp"`
}

// PriceAlert is emitted when a watched symbol crosses a configured threshold
type PriceAlert struct {
	Symbol       string          `json:"symbol"`
	Price        decimal.Decimal `json:"price"`
	TargetPrice  decimal.Decimal `json:"target_price"`
	Direction    string          `json:"direction"` // above or below
	Message      string          `json:"message"`
	TriggeredAt  time.Time       `json:"triggered_at"`
}
