package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"finpulse/chatbot"
	"finpulse/config"
	"finpulse/feed"
	"finpulse/models"
	"finpulse/observability"
	"finpulse/services"

	"github.com/google/uuid"
)

// RepositoryInterface defines the repository operations needed by App
type RepositoryInterface interface {
	Close()
	Health(ctx context.Context) error
	GetPreference(ctx context.Context, userID, key string) (json.RawMessage, error)
	SetPreference(ctx context.Context, userID, key string, value json.RawMessage) error
	DeletePreference(ctx context.Context, userID, key string) error
	ListPreferenceKeys(ctx context.Context, userID string) ([]string, error)
	GetSavedArticles(ctx context.Context, userID string, limit int) ([]models.SavedArticle, error)
	SaveArticle(ctx context.Context, article *models.SavedArticle) error
	DeleteSavedArticle(ctx context.Context, userID string, id uuid.UUID) error
	GetAlertPreferences(ctx context.Context, userID string) (*models.AlertPreferences, error)
	SetAlertPreferences(ctx context.Context, p *models.AlertPreferences) error
}

// App owns the feed client and chatbot and caches the feed's latest state
// for the HTTP surface. The repository is optional; without one the
// preference operations return an error and everything else keeps working.
type App struct {
	cfg    *config.Config
	repo   RepositoryInterface
	feed   *feed.Client
	bot    *chatbot.Service
	quotes *services.FallbackQuoteSource

	mu        sync.RWMutex
	ticks     map[string]models.StockPriceTick
	portfolio *models.PortfolioSnapshot
	connected bool
}

// New creates the App. Call Start to register feed callbacks and connect.
func New(cfg *config.Config, repo RepositoryInterface, feedClient *feed.Client, bot *chatbot.Service, quotes *services.FallbackQuoteSource) *App {
	return &App{
		cfg:    cfg,
		repo:   repo,
		feed:   feedClient,
		bot:    bot,
		quotes: quotes,
		ticks:  make(map[string]models.StockPriceTick),
	}
}

// Start wires the app into the feed and opens the channels. Ticks from the
// socket and the poller land in the same cache; last update wins.
func (a *App) Start() {
	a.feed.SetCallbacks(feed.Callbacks{
		OnStockPriceUpdate: a.storeTick,
		OnPortfolioUpdate:  a.storePortfolio,
		OnPriceAlert: func(alert models.PriceAlert) {
			observability.WithSymbol(alert.Symbol).Info("price alert",
				"direction", alert.Direction,
				"message", alert.Message)
		},
		OnConnectionStatusChange: func(up bool) {
			a.mu.Lock()
			a.connected = up
			a.mu.Unlock()
			observability.Info("feed connection status changed", "connected", up)
		},
	})
	a.feed.Connect()
}

// Shutdown tears down the feed and the repository
func (a *App) Shutdown(ctx context.Context) {
	a.feed.Disconnect()
	if a.repo != nil {
		a.repo.Close()
	}
}

// Repo returns the repository, nil when the app runs without a database
func (a *App) Repo() RepositoryInterface {
	return a.repo
}

func (a *App) storeTick(tick models.StockPriceTick) {
	a.mu.Lock()
	a.ticks[tick.Symbol] = tick
	a.mu.Unlock()
}

func (a *App) storePortfolio(snapshot models.PortfolioSnapshot) {
	a.mu.Lock()
	a.portfolio = &snapshot
	a.mu.Unlock()
}

// Chat routes a message through the chatbot. Always returns a response.
func (a *App) Chat(ctx context.Context, input string) string {
	return a.bot.ProcessUserInput(ctx, input)
}

// FeedStatus reports per-channel connection state and the aggregate flag
func (a *App) FeedStatus() (map[string]string, bool) {
	status := make(map[string]string)
	for channel, state := range a.feed.Status() {
		status[string(channel)] = string(state)
	}

	a.mu.RLock()
	connected := a.connected
	a.mu.RUnlock()
	return status, connected
}

// LatestTicks returns the most recent tick per symbol, sorted by symbol
func (a *App) LatestTicks() []models.StockPriceTick {
	a.mu.RLock()
	ticks := make([]models.StockPriceTick, 0, len(a.ticks))
	for _, tick := range a.ticks {
		ticks = append(ticks, tick)
	}
	a.mu.RUnlock()

	sort.Slice(ticks, func(i, j int) bool { return ticks[i].Symbol < ticks[j].Symbol })
	return ticks
}

// Portfolio returns the last snapshot seen on the portfolio channel, nil
// before the first one arrives
func (a *App) Portfolio() *models.PortfolioSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.portfolio
}

// Quotes fetches on-demand quotes for explicit symbols, bypassing the tick
// cache. Degrades to synthetic data rather than failing.
func (a *App) Quotes(ctx context.Context, symbols []string) ([]models.StockPriceTick, string) {
	return a.quotes.QuotesWithSource(ctx, symbols)
}

// SubscribeToStocks forwards a watch-list change to the feed
func (a *App) SubscribeToStocks(symbols []string) {
	a.feed.SubscribeToStocks(symbols)
}

// GetPreference reads a stored preference value
func (a *App) GetPreference(ctx context.Context, userID, key string) (json.RawMessage, error) {
	if a.repo == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return a.repo.GetPreference(ctx, userID, key)
}

// SetPreference stores a preference value
func (a *App) SetPreference(ctx context.Context, userID, key string, value json.RawMessage) error {
	if a.repo == nil {
		return fmt.Errorf("database not initialized")
	}
	return a.repo.SetPreference(ctx, userID, key, value)
}

// DeletePreference removes a stored preference value
func (a *App) DeletePreference(ctx context.Context, userID, key string) error {
	if a.repo == nil {
		return fmt.Errorf("database not initialized")
	}
	return a.repo.DeletePreference(ctx, userID, key)
}

// ListPreferenceKeys lists a user's stored preference keys
func (a *App) ListPreferenceKeys(ctx context.Context, userID string) ([]string, error) {
	if a.repo == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return a.repo.ListPreferenceKeys(ctx, userID)
}

// GetSavedArticles returns a user's bookmarked articles
func (a *App) GetSavedArticles(ctx context.Context, userID string, limit int) ([]models.SavedArticle, error) {
	if a.repo == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return a.repo.GetSavedArticles(ctx, userID, limit)
}

// SaveArticle bookmarks an article
func (a *App) SaveArticle(ctx context.Context, article *models.SavedArticle) error {
	if a.repo == nil {
		return fmt.Errorf("database not initialized")
	}
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	if article.SavedAt.IsZero() {
		article.SavedAt = time.Now()
	}
	return a.repo.SaveArticle(ctx, article)
}

// DeleteSavedArticle removes a bookmark
func (a *App) DeleteSavedArticle(ctx context.Context, userID string, id uuid.UUID) error {
	if a.repo == nil {
		return fmt.Errorf("database not initialized")
	}
	return a.repo.DeleteSavedArticle(ctx, userID, id)
}

// GetAlertPreferences returns a user's alert settings
func (a *App) GetAlertPreferences(ctx context.Context, userID string) (*models.AlertPreferences, error) {
	if a.repo == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return a.repo.GetAlertPreferences(ctx, userID)
}

// SetAlertPreferences stores a user's alert settings
func (a *App) SetAlertPreferences(ctx context.Context, p *models.AlertPreferences) error {
	if a.repo == nil {
		return fmt.Errorf("database not initialized")
	}
	return a.repo.SetAlertPreferences(ctx, p)
}
