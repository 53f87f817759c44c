package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finpulse/chatbot"
	"finpulse/config"
	"finpulse/feed"
	"finpulse/internal/api"
	"finpulse/internal/app"
	"finpulse/observability"
	"finpulse/repository"
	"finpulse/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		observability.Fatal("invalid configuration", "error", err)
	}

	observability.InitLogger(os.Getenv("ENV") == "production")
	observability.InitMetrics()

	ctx := context.Background()

	// Database is optional: without one the preference endpoints return 503
	// and everything else runs normally.
	var repo *repository.Repository
	if cfg.HasDatabase() {
		repo, err = repository.NewRepository(ctx, cfg.Database.URL)
		if err != nil {
			observability.Warn("database unavailable, preference endpoints disabled", "error", err)
			repo = nil
		}
	} else {
		observability.Info("no database configured, preference endpoints disabled")
	}

	// Pick a live quote provider if one is configured; the synthetic source
	// covers the gap either way.
	var primary services.QuoteSource
	switch {
	case cfg.HasQuoteAPI():
		primary = services.NewQuoteAPIService(cfg.Quotes.APIKey, cfg.Quotes.BaseURL)
	case cfg.HasAlpaca():
		primary = services.NewAlpacaQuoteService(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret)
	default:
		observability.Info("no live quote provider configured, serving synthetic data")
	}
	quotes := services.NewFallbackQuoteSource(primary, services.NewSyntheticQuoteSource())

	var recommendations services.RecommendationSource
	if cfg.Chatbot.RecommendationSource == "remote" {
		recommendations = services.NewRemoteRecommendationSource(cfg.Chatbot.RecommendationURL)
	} else {
		recommendations = services.NewStaticRecommendationSource()
	}

	feedClient := feed.NewClient(cfg.Feed, quotes)
	bot := chatbot.NewService(cfg.Chatbot, recommendations)

	application := app.New(cfg, repoOrNil(repo), feedClient, bot, quotes)
	application.Start()

	router := api.NewRouter(api.NewHandler(application, cfg), cfg)
	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.TimeoutSeconds+5) * time.Second,
	}

	go func() {
		observability.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Fatal("http server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	observability.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		observability.Error("http server shutdown failed", "error", err)
	}
	application.Shutdown(shutdownCtx)
}

// repoOrNil converts a nil *Repository into a nil interface so App's nil
// checks work.
func repoOrNil(repo *repository.Repository) app.RepositoryInterface {
	if repo == nil {
		return nil
	}
	return repo
}
