package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Realtime feed configuration
	Feed FeedConfig

	// Quote provider configurations
	Quotes QuotesConfig
	Alpaca AlpacaConfig

	// Chatbot configuration
	Chatbot ChatbotConfig

	// HTTP configuration
	HTTP HTTPConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// FeedConfig holds realtime feed client configuration
type FeedConfig struct {
	BaseURL              string        // ws:// or wss:// base for the three channels
	AuthToken            string        // sent in the authenticate frame after dial
	Watchlist            []string      // symbols polled by the fallback poller
	PollInterval         time.Duration // polling fallback cadence
	ReconnectInitialWait time.Duration // first reconnect delay
	ReconnectMaxWait     time.Duration // reconnect delay ceiling
	ReconnectMaxAttempts int           // per-channel attempt cap
}

// QuotesConfig holds REST quote provider configuration
type QuotesConfig struct {
	APIKey  string
	BaseURL string
}

// AlpacaConfig holds Alpaca market data configuration
type AlpacaConfig struct {
	APIKey    string
	APISecret string
}

// ChatbotConfig holds financial chatbot configuration
type ChatbotConfig struct {
	RecommendationSource string // static or remote
	RecommendationURL    string // GraphQL endpoint for the remote source
	MaxRecommendations   int
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Addr               string
	CORSAllowedOrigins string
	TimeoutSeconds     int
}

// DefaultWatchlist is polled when FEED_WATCHLIST is not set
var DefaultWatchlist = []string{"AAPL", "GOOGL", "MSFT", "AMZN", "NVDA", "META", "TSLA", "NFLX", "AMD", "INTC"}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Feed: FeedConfig{
			BaseURL:              getEnvString("FEED_BASE_URL", "ws://localhost:8001"),
			AuthToken:            os.Getenv("FEED_AUTH_TOKEN"),
			Watchlist:            getEnvStringSlice("FEED_WATCHLIST", DefaultWatchlist),
			PollInterval:         getEnvDuration("FEED_POLL_INTERVAL", 30*time.Second),
			ReconnectInitialWait: getEnvDuration("FEED_RECONNECT_INITIAL_WAIT", time.Second),
			ReconnectMaxWait:     getEnvDuration("FEED_RECONNECT_MAX_WAIT", 30*time.Second),
			ReconnectMaxAttempts: getEnvInt("FEED_RECONNECT_MAX_ATTEMPTS", 5),
		},
		Quotes: QuotesConfig{
			APIKey:  os.Getenv("QUOTE_API_KEY"),
			BaseURL: getEnvString("QUOTE_API_BASE_URL", "https://financialmodelingprep.com/api/v3"),
		},
		Alpaca: AlpacaConfig{
			APIKey:    os.Getenv("ALPACA_API_KEY"),
			APISecret: os.Getenv("ALPACA_API_SECRET"),
		},
		Chatbot: ChatbotConfig{
			RecommendationSource: getEnvString("CHATBOT_RECOMMENDATION_SOURCE", "static"),
			RecommendationURL:    os.Getenv("CHATBOT_RECOMMENDATION_URL"),
			MaxRecommendations:   getEnvInt("CHATBOT_MAX_RECOMMENDATIONS", 5),
		},
		HTTP: HTTPConfig{
			Addr:               getEnvString("HTTP_ADDR", ":8080"),
			CORSAllowedOrigins: getEnvString("CORS_ALLOWED_ORIGINS", "*"),
			TimeoutSeconds:     getEnvInt("HTTP_TIMEOUT_SECONDS", 60),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Feed.BaseURL, "ws://") && !strings.HasPrefix(c.Feed.BaseURL, "wss://") {
		return fmt.Errorf("FEED_BASE_URL must start with ws:// or wss://, got %q", c.Feed.BaseURL)
	}
	if c.Feed.PollInterval <= 0 {
		return fmt.Errorf("FEED_POLL_INTERVAL must be positive, got %s", c.Feed.PollInterval)
	}
	if c.Feed.ReconnectInitialWait <= 0 {
		return fmt.Errorf("FEED_RECONNECT_INITIAL_WAIT must be positive, got %s", c.Feed.ReconnectInitialWait)
	}
	if c.Feed.ReconnectMaxWait < c.Feed.ReconnectInitialWait {
		return fmt.Errorf("FEED_RECONNECT_MAX_WAIT must be >= FEED_RECONNECT_INITIAL_WAIT, got %s", c.Feed.ReconnectMaxWait)
	}
	if c.Feed.ReconnectMaxAttempts <= 0 {
		return fmt.Errorf("FEED_RECONNECT_MAX_ATTEMPTS must be positive, got %d", c.Feed.ReconnectMaxAttempts)
	}
	if len(c.Feed.Watchlist) == 0 {
		return fmt.Errorf("FEED_WATCHLIST must contain at least one symbol")
	}

	switch c.Chatbot.RecommendationSource {
	case "static", "remote":
	default:
		return fmt.Errorf("CHATBOT_RECOMMENDATION_SOURCE must be static or remote, got %q", c.Chatbot.RecommendationSource)
	}
	if c.Chatbot.RecommendationSource == "remote" && c.Chatbot.RecommendationURL == "" {
		return fmt.Errorf("CHATBOT_RECOMMENDATION_URL is required when CHATBOT_RECOMMENDATION_SOURCE=remote")
	}
	if c.Chatbot.MaxRecommendations <= 0 {
		return fmt.Errorf("CHATBOT_MAX_RECOMMENDATIONS must be positive, got %d", c.Chatbot.MaxRecommendations)
	}

	return nil
}

// HasDatabase returns true if database configuration is available
func (c *Config) HasDatabase() bool {
	return c.Database.URL != ""
}

// HasQuoteAPI returns true if the REST quote provider is configured
func (c *Config) HasQuoteAPI() bool {
	return c.Quotes.APIKey != ""
}

// HasAlpaca returns true if Alpaca market data is configured
func (c *Config) HasAlpaca() bool {
	return c.Alpaca.APIKey != "" && c.Alpaca.APISecret != ""
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(strings.ToUpper(p)); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			URL: "",
		},
		Feed: FeedConfig{
			BaseURL:              "ws://localhost:8001",
			AuthToken:            "",
			Watchlist:            DefaultWatchlist,
			PollInterval:         30 * time.Second,
			ReconnectInitialWait: time.Second,
			ReconnectMaxWait:     30 * time.Second,
			ReconnectMaxAttempts: 5,
		},
		Quotes: QuotesConfig{
			APIKey:  "",
			BaseURL: "https://financialmodelingprep.com/api/v3",
		},
		Alpaca: AlpacaConfig{
			APIKey:    "",
			APISecret: "",
		},
		Chatbot: ChatbotConfig{
			RecommendationSource: "static",
			RecommendationURL:    "",
			MaxRecommendations:   5,
		},
		HTTP: HTTPConfig{
			Addr:               ":8080",
			CORSAllowedOrigins: "*",
			TimeoutSeconds:     60,
		},
	}
}
