package model

import "time"

// Classification is the per-indicator reading shown next to its value.
type Classification string

const (
	ClassBuy     Classification = "BUY"
	ClassSell    Classification = "SELL"
	ClassNeutral Classification = "NEUTRAL"
)

// TechnicalIndicator is the latest value of one indicator with its reading.
type TechnicalIndicator struct {
	Name   string
	Value  float64
	Signal Classification
	Time   time.Time
}

// MarketAnalysis bundles everything computed for one pair in one run.
type MarketAnalysis struct {
	Pair        string
	Timeframe   string
	BarCount    int
	Quote       Quote
	Price       float64 // final close of the series
	High        float64 // highest high over the analysed window
	Low         float64 // lowest low over the analysed window
	Position    float64 // 0.0 ~ 1.0 within [Low, High]
	Indicators  []TechnicalIndicator
	Signals     []TradingSignal
	GeneratedAt time.Time
}

// Indicator returns the indicator with the given name, if present.
func (a *MarketAnalysis) Indicator(name string) (TechnicalIndicator, bool) {
	for _, ind := range a.Indicators {
		if ind.Name == name {
			return ind, true
		}
	}
	return TechnicalIndicator{}, false
}
