package feed

import (
	"context"
	"math"
	"time"

	"finpulse/models"
	"finpulse/observability"
	"finpulse/services"
)

// bigDayThreshold is the absolute change percentage beyond which a polled
// tick also raises a price alert
const bigDayThreshold = 5.0

// pollLoop fetches watch-list quotes on a fixed cadence, independent of
// socket state. Poll-sourced ticks flow through the same callback path as
// socket-sourced ones, so consumers cannot tell them apart.
func (c *Client) pollLoop(ctx context.Context) {
	// First poll runs immediately so the UI has data before any
	// handshake completes.
	c.pollOnce(ctx)

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.pollOnce(ctx)
		}
	}
}

func (c *Client) pollOnce(ctx context.Context) {
	start := time.Now()
	ticks, source := c.quotes.QuotesWithSource(ctx, c.cfg.Watchlist)
	if ctx.Err() != nil {
		return
	}
	observability.GetMetrics().RecordFeedPoll(source, time.Since(start))

	cb := c.getCallbacks()
	for _, tick := range ticks {
		if cb.OnStockPriceUpdate != nil {
			cb.OnStockPriceUpdate(tick)
		}
		if cb.OnPriceAlert != nil && source == services.TickSourceLive && math.Abs(tick.ChangePercent) >= bigDayThreshold {
			cb.OnPriceAlert(bigDayAlert(tick))
		}
	}
}

// bigDayAlert builds the supplementary alert for an outsized daily move
func bigDayAlert(tick models.StockPriceTick) models.PriceAlert {
	direction := "up"
	if tick.ChangePercent < 0 {
		direction = "down"
	}
	return models.PriceAlert{
		Symbol:      tick.Symbol,
		Price:       tick.Price,
		Direction:   direction,
		Message:     tick.Symbol + " is having a big day, moving more than 5% from the previous close",
		TriggeredAt: tick.Timestamp,
	}
}
