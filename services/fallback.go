package services

import (
	"context"

	"finpulse/models"
	"finpulse/observability"
)

// Tick sources reported by FallbackQuoteSource
const (
	TickSourceLive      = "live"
	TickSourceSynthetic = "synthetic"
)

// FallbackQuoteSource is the "always show something" policy: try the primary
// live source, and degrade to synthetic ticks on any failure so downstream
// consumers never stall. A nil primary skips straight to synthetic.
type FallbackQuoteSource struct {
	primary   QuoteSource
	synthetic *SyntheticQuoteSource
}

// NewFallbackQuoteSource creates a fallback policy over the given primary.
// primary may be nil when no live source is configured.
func NewFallbackQuoteSource(primary QuoteSource, synthetic *SyntheticQuoteSource) *FallbackQuoteSource {
	if synthetic == nil {
		synthetic = NewSyntheticQuoteSource()
	}
	return &FallbackQuoteSource{primary: primary, synthetic: synthetic}
}

// Name implements QuoteSource
func (f *FallbackQuoteSource) Name() string {
	if f.primary != nil {
		return f.primary.Name()
	}
	return f.synthetic.Name()
}

// Quotes implements QuoteSource and never returns an error
func (f *FallbackQuoteSource) Quotes(ctx context.Context, symbols []string) ([]models.StockPriceTick, error) {
	ticks, _ := f.QuotesWithSource(ctx, symbols)
	return ticks, nil
}

// QuotesWithSource returns ticks plus which source produced them. Live-source
// failures are logged and absorbed, not surfaced.
func (f *FallbackQuoteSource) QuotesWithSource(ctx context.Context, symbols []string) ([]models.StockPriceTick, string) {
	if f.primary != nil {
		ticks, err := f.primary.Quotes(ctx, symbols)
		if err == nil && len(ticks) > 0 {
			return ticks, TickSourceLive
		}
		if err != nil {
			observability.WithError(err).Warn("live quote source failed, falling back to synthetic ticks",
				"source", f.primary.Name())
		}
	}

	ticks, _ := f.synthetic.Quotes(ctx, symbols)
	return ticks, TickSourceSynthetic
}
