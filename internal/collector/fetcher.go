package collector

import (
	"context"
	"errors"

	"FxSentinel/internal/model"
)

// ErrUnknownPair is returned when a fetcher has no data for a pair.
var ErrUnknownPair = errors.New("unknown currency pair")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchBars returns bars for pair, oldest first.
	FetchBars(ctx context.Context, pair, timeframe string, limit int) ([]model.Bar, error)
	FetchQuote(ctx context.Context, pair string) (model.Quote, error)
	Name() string
}

// Ticker is implemented by fetchers that advance their own prices.
type Ticker interface {
	Tick()
}
