package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"finpulse/config"
	"finpulse/models"
	"finpulse/services"

	"github.com/shopspring/decimal"
)

// failingQuoteSource always errors, forcing the synthetic fallback
type failingQuoteSource struct{}

func (failingQuoteSource) Name() string { return "failing" }

func (failingQuoteSource) Quotes(ctx context.Context, symbols []string) ([]models.StockPriceTick, error) {
	return nil, errors.New("quote provider down")
}

func TestPollOnce_SyntheticFallbackCoversWatchlist(t *testing.T) {
	cfg := config.NewTestConfig().Feed
	cfg.Watchlist = []string{"AAPL", "GOOGL", "MSFT", "TSLA"}

	quotes := services.NewFallbackQuoteSource(failingQuoteSource{}, services.NewSyntheticQuoteSourceWithSeed(1))
	client := NewClient(cfg, quotes)

	var mu sync.Mutex
	seen := make(map[string]int)
	client.SetCallbacks(Callbacks{
		OnStockPriceUpdate: func(tick models.StockPriceTick) {
			mu.Lock()
			seen[tick.Symbol]++
			mu.Unlock()
		},
	})

	client.pollOnce(context.Background())

	mu.Lock()
	defer mu.Unlock()
	for _, symbol := range cfg.Watchlist {
		if seen[symbol] != 1 {
			t.Errorf("symbol %v received %d ticks, want 1", symbol, seen[symbol])
		}
	}
}

// scriptedQuoteSource returns a fixed batch of ticks
type scriptedQuoteSource struct {
	ticks []models.StockPriceTick
}

func (s scriptedQuoteSource) Name() string { return "scripted" }

func (s scriptedQuoteSource) Quotes(ctx context.Context, symbols []string) ([]models.StockPriceTick, error) {
	return s.ticks, nil
}

func TestPollOnce_BigDayMovementRaisesAlert(t *testing.T) {
	cfg := config.NewTestConfig().Feed
	cfg.Watchlist = []string{"NVDA", "KO"}

	live := scriptedQuoteSource{ticks: []models.StockPriceTick{
		{Symbol: "NVDA", Price: decimal.NewFromFloat(875.28), ChangePercent: 7.4, Timestamp: time.Now()},
		{Symbol: "KO", Price: decimal.NewFromFloat(61.10), ChangePercent: 0.3, Timestamp: time.Now()},
	}}
	client := NewClient(cfg, services.NewFallbackQuoteSource(live, services.NewSyntheticQuoteSourceWithSeed(1)))

	var alerts []models.PriceAlert
	var ticks int
	client.SetCallbacks(Callbacks{
		OnStockPriceUpdate: func(models.StockPriceTick) { ticks++ },
		OnPriceAlert:       func(alert models.PriceAlert) { alerts = append(alerts, alert) },
	})

	client.pollOnce(context.Background())

	if ticks != 2 {
		t.Errorf("tick callbacks = %d, want 2", ticks)
	}
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1 (only the outsized move)", len(alerts))
	}
	if alerts[0].Symbol != "NVDA" || alerts[0].Direction != "up" {
		t.Errorf("unexpected alert: %+v", alerts[0])
	}
}

func TestPollOnce_NoAlertsFromSyntheticTicks(t *testing.T) {
	cfg := config.NewTestConfig().Feed
	cfg.Watchlist = []string{"AAPL"}

	client := NewClient(cfg, services.NewFallbackQuoteSource(failingQuoteSource{}, services.NewSyntheticQuoteSourceWithSeed(1)))

	var alerts int
	client.SetCallbacks(Callbacks{
		OnPriceAlert: func(models.PriceAlert) { alerts++ },
	})

	for i := 0; i < 50; i++ {
		client.pollOnce(context.Background())
	}

	if alerts != 0 {
		t.Errorf("synthetic ticks raised %d alerts, want 0", alerts)
	}
}

func TestPollLoop_RunsOnCadence(t *testing.T) {
	cfg := config.NewTestConfig().Feed
	cfg.Watchlist = []string{"AAPL"}
	cfg.PollInterval = 20 * time.Millisecond

	client := NewClient(cfg, services.NewFallbackQuoteSource(nil, services.NewSyntheticQuoteSourceWithSeed(1)))

	var mu sync.Mutex
	count := 0
	client.SetCallbacks(Callbacks{
		OnStockPriceUpdate: func(models.StockPriceTick) {
			mu.Lock()
			count++
			mu.Unlock()
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		client.pollLoop(ctx)
		close(done)
	}()

	time.Sleep(110 * time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	// Immediate poll plus several ticker polls; exact count depends on timing
	if count < 3 {
		t.Errorf("poll callbacks = %d, want at least 3 over five intervals", count)
	}
}
