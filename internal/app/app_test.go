package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"finpulse/chatbot"
	"finpulse/config"
	"finpulse/feed"
	"finpulse/models"
	"finpulse/services"

	"github.com/shopspring/decimal"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := config.NewTestConfig()
	quotes := services.NewFallbackQuoteSource(nil, services.NewSyntheticQuoteSourceWithSeed(1))
	feedClient := feed.NewClient(cfg.Feed, quotes)
	bot := chatbot.NewService(cfg.Chatbot, nil)
	return New(cfg, nil, feedClient, bot, quotes)
}

func TestLatestTicks_LastUpdateWins(t *testing.T) {
	a := newTestApp(t)

	a.storeTick(models.StockPriceTick{Symbol: "AAPL", Price: decimal.NewFromFloat(230.00)})
	a.storeTick(models.StockPriceTick{Symbol: "MSFT", Price: decimal.NewFromFloat(500.00)})
	a.storeTick(models.StockPriceTick{Symbol: "AAPL", Price: decimal.NewFromFloat(231.50)})

	ticks := a.LatestTicks()
	if len(ticks) != 2 {
		t.Fatalf("ticks = %d, want 2", len(ticks))
	}
	// Sorted by symbol, and AAPL holds its latest price
	if ticks[0].Symbol != "AAPL" || !ticks[0].Price.Equal(decimal.NewFromFloat(231.50)) {
		t.Errorf("ticks[0] = %+v, want latest AAPL tick", ticks[0])
	}
}

func TestPortfolio_WholesaleReplacement(t *testing.T) {
	a := newTestApp(t)

	if a.Portfolio() != nil {
		t.Fatal("portfolio should be nil before any snapshot")
	}

	a.storePortfolio(models.PortfolioSnapshot{
		Holdings:  []models.Holding{{Symbol: "AAPL"}, {Symbol: "MSFT"}},
		Timestamp: time.Now(),
	})
	a.storePortfolio(models.PortfolioSnapshot{
		Holdings:  []models.Holding{{Symbol: "NVDA"}},
		Timestamp: time.Now(),
	})

	snapshot := a.Portfolio()
	if snapshot == nil || len(snapshot.Holdings) != 1 || snapshot.Holdings[0].Symbol != "NVDA" {
		t.Errorf("snapshot = %+v, want the second snapshot only", snapshot)
	}
}

func TestChat_AlwaysResponds(t *testing.T) {
	a := newTestApp(t)
	if got := a.Chat(context.Background(), "what is an etf?"); got == "" {
		t.Error("Chat returned an empty response")
	}
}

func TestPreferences_ErrorWithoutRepo(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	if _, err := a.GetPreference(ctx, "u", "k"); err == nil || !strings.Contains(err.Error(), "database") {
		t.Errorf("GetPreference without repo: err = %v, want database error", err)
	}
	if err := a.SetPreference(ctx, "u", "k", []byte(`true`)); err == nil {
		t.Error("SetPreference without repo: want error")
	}
	if _, err := a.GetAlertPreferences(ctx, "u"); err == nil {
		t.Error("GetAlertPreferences without repo: want error")
	}
}

func TestQuotes_NeverFails(t *testing.T) {
	a := newTestApp(t)
	ticks, source := a.Quotes(context.Background(), []string{"AAPL", "ZZZZ"})
	if source != services.TickSourceSynthetic {
		t.Errorf("source = %q, want synthetic", source)
	}
	if len(ticks) != 2 {
		t.Errorf("ticks = %d, want one per symbol", len(ticks))
	}
}
