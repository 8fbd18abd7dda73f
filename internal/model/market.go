package model

import "time"

// Bar represents a single OHLCV candlestick bar.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Quote is a live two-sided price for a currency pair.
type Quote struct {
	Pair          string
	Bid           float64
	Ask           float64
	Spread        float64
	Change        float64
	ChangePercent float64
	Time          time.Time
}

// DefaultTimeframe is used when a timeframe is empty or unknown.
const DefaultTimeframe = "1H"

// Timeframes maps supported bar timeframes to their duration.
var Timeframes = map[string]time.Duration{
	"1M":  time.Minute,
	"5M":  5 * time.Minute,
	"15M": 15 * time.Minute,
	"30M": 30 * time.Minute,
	"1H":  time.Hour,
	"4H":  4 * time.Hour,
	"1D":  24 * time.Hour,
}

// TimeframeDuration returns the bar duration for tf, falling back to 1H.
func TimeframeDuration(tf string) time.Duration {
	if d, ok := Timeframes[tf]; ok {
		return d
	}
	return Timeframes[DefaultTimeframe]
}
