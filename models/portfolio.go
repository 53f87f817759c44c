package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is one position inside a portfolio snapshot
type Holding struct {
	Symbol        string          `json:"symbol"`
	CompanyName   string          `json:"company_name"`
	Shares        decimal.Decimal `json:"shares"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	TotalValue    decimal.Decimal `json:"total_value"`
	CostBasis     decimal.Decimal `json:"cost_basis"`
	ReturnAmount  decimal.Decimal `json:"return_amount"`
	ReturnPercent float64         `json:"return_percent"`
	Sector        string          `json:"sector"`
}

// PortfolioSnapshot is a point-in-time view of the whole portfolio.
// Each update replaces the previous snapshot wholesale; there is no
// partial merge of holdings.
type PortfolioSnapshot struct {
	TotalValue         decimal.Decimal `json:"total_value"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalReturn        decimal.Decimal `json:"total_return"`
	TotalReturnPercent float64         `json:"total_return_percent"`
	Holdings           []Holding       `json:"holdings"`
	Timestamp          time.Time       `json:"timestamp"`
	MarketStatus       MarketStatus    `json:"market_status"`
}
