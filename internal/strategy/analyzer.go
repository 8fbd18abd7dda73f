// Package strategy turns a bar series into an indicator snapshot and a
// directional trading signal.
package strategy

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"FxSentinel/internal/calculator"
	"FxSentinel/internal/model"
)

// MinBars is the history needed before any indicator or signal is produced.
const MinBars = 50

const (
	shortSMAPeriod = 20
	longSMAPeriod  = 50
)

// Analyzer builds indicator snapshots and trading signals. It holds no
// per-series state and is safe for concurrent use.
type Analyzer struct {
	now   func() time.Time
	newID func() string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// WithIDGenerator overrides how signal IDs are generated.
func WithIDGenerator(gen func() string) Option {
	return func(a *Analyzer) { a.newID = gen }
}

// NewAnalyzer creates an Analyzer using the wall clock and random UUIDs.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var defaultAnalyzer = NewAnalyzer()

// TechnicalIndicators returns the indicator snapshot for bars using the default Analyzer.
func TechnicalIndicators(pair string, bars []model.Bar) []model.TechnicalIndicator {
	return defaultAnalyzer.TechnicalIndicators(pair, bars)
}

// GenerateSignals returns zero or one trading signal for bars using the default Analyzer.
func GenerateSignals(pair string, bars []model.Bar) []model.TradingSignal {
	return defaultAnalyzer.GenerateSignals(pair, bars)
}

// TechnicalIndicators returns RSI, MACD, SMA Cross and Price vs SMA20 in that
// order. It returns nil when there are fewer than MinBars bars.
func (a *Analyzer) TechnicalIndicators(pair string, bars []model.Bar) []model.TechnicalIndicator {
	r := a.read(pair, bars)
	if r == nil {
		return nil
	}
	return buildIndicators(r, a.now())
}

// GenerateSignals evaluates all detectors and returns at most one signal.
// It returns nil when there are fewer than MinBars bars, when no detector
// fires, or when bullish and bearish votes tie.
func (a *Analyzer) GenerateSignals(pair string, bars []model.Bar) []model.TradingSignal {
	r := a.read(pair, bars)
	if r == nil {
		return nil
	}
	sig := a.synthesize(pair, r, evaluateDetectors(r), a.now())
	if sig == nil {
		return nil
	}
	return []model.TradingSignal{*sig}
}

// Analyze computes the indicator snapshot and signals in one pass, sharing
// one generation timestamp.
func (a *Analyzer) Analyze(pair string, bars []model.Bar) *model.MarketAnalysis {
	at := a.now()
	analysis := &model.MarketAnalysis{
		Pair:        pair,
		BarCount:    len(bars),
		GeneratedAt: at,
	}
	if len(bars) == 0 {
		return analysis
	}

	analysis.Price = bars[len(bars)-1].Close
	if high, low, err := calculator.Range(bars, 0); err == nil {
		analysis.High = high
		analysis.Low = low
		if pos, err := calculator.RangePosition(analysis.Price, high, low); err == nil {
			analysis.Position = pos
		}
	}

	r := a.read(pair, bars)
	if r == nil {
		return analysis
	}
	analysis.Indicators = buildIndicators(r, at)
	if sig := a.synthesize(pair, r, evaluateDetectors(r), at); sig != nil {
		analysis.Signals = []model.TradingSignal{*sig}
	}
	return analysis
}

// readings holds every series the snapshot and detectors look at.
type readings struct {
	price float64
	last  int // bar index of the final bar
	rsi   calculator.Series
	macd  calculator.MACDResult
	bands calculator.Bands
	sma20 calculator.Series
	sma50 calculator.Series
}

func (a *Analyzer) read(pair string, bars []model.Bar) *readings {
	if len(bars) < MinBars {
		return nil
	}
	r, err := compute(bars)
	if err != nil {
		// Periods are fixed, so this only fires on a programming error.
		log.Error().Err(err).Str("pair", pair).Msg("indicator computation failed")
		return nil
	}
	return r
}

func compute(bars []model.Bar) (*readings, error) {
	r := &readings{
		price: bars[len(bars)-1].Close,
		last:  len(bars) - 1,
	}
	var err error
	if r.rsi, err = calculator.RSI(bars, calculator.DefaultRSIPeriod); err != nil {
		return nil, err
	}
	if r.macd, err = calculator.MACD(bars); err != nil {
		return nil, err
	}
	if r.bands, err = calculator.BollingerBands(bars, calculator.DefaultBandPeriod, calculator.DefaultBandMultiplier); err != nil {
		return nil, err
	}
	if r.sma20, err = calculator.SMA(bars, shortSMAPeriod); err != nil {
		return nil, err
	}
	if r.sma50, err = calculator.SMA(bars, longSMAPeriod); err != nil {
		return nil, err
	}
	return r, nil
}
