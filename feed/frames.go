package feed

import (
	"finpulse/models"
)

// Channel identifies one logical websocket stream
type Channel string

const (
	ChannelStockPrices Channel = "stock-prices"
	ChannelDiscussions Channel = "discussions"
	ChannelPortfolio   Channel = "portfolio"
)

// AllChannels lists every channel the client maintains
func AllChannels() []Channel {
	return []Channel{ChannelStockPrices, ChannelDiscussions, ChannelPortfolio}
}

// Outbound frame types
const (
	frameTypeAuthenticate       = "authenticate"
	frameTypeSubscribeStocks    = "subscribe_stocks"
	frameTypeSubscribePortfolio = "subscribe_portfolio"
	frameTypeWatchlistPrices    = "get_watchlist_prices"
	frameTypePing               = "ping"
)

// Inbound frame types
const (
	frameTypeInitialPrices    = "initial_prices"
	frameTypeStockPrices      = "stock_prices"
	frameTypePriceUpdate      = "price_update"
	frameTypePriceAlert       = "price_alert"
	frameTypeNewDiscussion    = "new_discussion"
	frameTypeNewComment       = "new_comment"
	frameTypeDiscussionUpdate = "discussion_update"
	frameTypePortfolioUpdate  = "portfolio_update"
	frameTypePong             = "pong"
)

// outboundFrame is the envelope for every frame the client sends
type outboundFrame struct {
	Type    string   `json:"type"`
	Token   string   `json:"token,omitempty"`
	Symbols []string `json:"symbols,omitempty"`
}

// stockFrame is the envelope for frames on the stock-prices channel
type stockFrame struct {
	Type   string                  `json:"type"`
	Prices []models.StockPriceTick `json:"prices,omitempty"`
	Price  *models.StockPriceTick  `json:"price,omitempty"`
	Alert  *models.PriceAlert      `json:"alert,omitempty"`
}

// discussionFrame is the envelope for frames on the discussions channel
type discussionFrame struct {
	Type       string             `json:"type"`
	Discussion *models.Discussion `json:"discussion,omitempty"`
	Comment    *models.Comment    `json:"comment,omitempty"`
}

// portfolioFrame is the envelope for frames on the portfolio channel
type portfolioFrame struct {
	Type      string                    `json:"type"`
	Portfolio *models.PortfolioSnapshot `json:"portfolio,omitempty"`
}
