package collector

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"FxSentinel/internal/model"
	"FxSentinel/internal/strategy"
)

// DefaultLimit is the number of bars requested per analysis.
const DefaultLimit = 100

// Collector orchestrates data fetching and analysis for one pair at a time.
type Collector struct {
	Fetcher   Fetcher
	Analyzer  *strategy.Analyzer
	Timeframe string
	Limit     int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, analyzer *strategy.Analyzer, timeframe string, limit int) *Collector {
	if analyzer == nil {
		analyzer = strategy.NewAnalyzer()
	}
	if _, ok := model.Timeframes[timeframe]; !ok {
		timeframe = model.DefaultTimeframe
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Collector{Fetcher: fetcher, Analyzer: analyzer, Timeframe: timeframe, Limit: limit}
}

// Collect fetches bars and a quote for pair and runs the analysis. A series
// shorter than strategy.MinBars is not an error; the result simply carries
// no indicators or signals.
func (c *Collector) Collect(ctx context.Context, pair string) (*model.MarketAnalysis, error) {
	bars, err := c.Fetcher.FetchBars(ctx, pair, c.Timeframe, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("fetch bars for %s: %w", pair, err)
	}
	if err := ValidateBars(bars); err != nil {
		return nil, fmt.Errorf("%s: %w", pair, err)
	}

	analysis := c.Analyzer.Analyze(pair, bars)
	analysis.Timeframe = c.Timeframe

	quote, err := c.Fetcher.FetchQuote(ctx, pair)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn().Err(err).Str("pair", pair).Msg("quote fetch failed, using last close")
		quote = model.Quote{Pair: pair, Bid: analysis.Price, Ask: analysis.Price}
		if len(bars) > 0 {
			quote.Time = bars[len(bars)-1].Time
		}
	}
	analysis.Quote = quote

	if len(bars) < strategy.MinBars {
		log.Debug().
			Str("pair", pair).
			Int("bars", len(bars)).
			Int("need", strategy.MinBars).
			Msg("insufficient data for indicators")
	}
	return analysis, nil
}
