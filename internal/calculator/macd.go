package calculator

import (
	"fmt"

	"FxSentinel/internal/model"
)

// Standard MACD periods.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// MACDResult holds the three MACD series, each aligned to the input bars.
type MACDResult struct {
	MACD      Series
	Signal    Series
	Histogram Series
}

// MACD computes MACD(12, 26, 9) over closing prices.
func MACD(bars []model.Bar) (MACDResult, error) {
	return MACDWithPeriods(bars, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
}

// MACDWithPeriods computes the MACD line (fast EMA minus slow EMA), its
// signal line (EMA of the MACD line) and the histogram (MACD minus signal).
func MACDWithPeriods(bars []model.Bar, fast, slow, signal int) (MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return MACDResult{}, fmt.Errorf("macd: %w (fast=%d slow=%d signal=%d)", ErrInvalidPeriod, fast, slow, signal)
	}
	if fast >= slow {
		return MACDResult{}, fmt.Errorf("macd: %w (fast %d must be below slow %d)", ErrInvalidPeriod, fast, slow)
	}

	fastEMA, err := EMA(bars, fast)
	if err != nil {
		return MACDResult{}, err
	}
	slowEMA, err := EMA(bars, slow)
	if err != nil {
		return MACDResult{}, err
	}

	// The slow EMA starts later, so it decides which bars carry a MACD value.
	line := Series{Start: slowEMA.Start, Values: make([]float64, 0, slowEMA.Len())}
	for i, slowVal := range slowEMA.Values {
		fastVal, ok := fastEMA.At(slowEMA.Start + i)
		if !ok {
			continue
		}
		line.Values = append(line.Values, fastVal-slowVal)
	}

	// Feed the MACD line back through the EMA engine as flat synthetic bars.
	synthetic := make([]model.Bar, line.Len())
	for i, v := range line.Values {
		synthetic[i] = model.Bar{
			Time:  bars[line.Start+i].Time,
			Open:  v,
			High:  v,
			Low:   v,
			Close: v,
		}
	}
	sig, err := EMA(synthetic, signal)
	if err != nil {
		return MACDResult{}, err
	}
	sig.Start += line.Start

	hist := Series{Start: sig.Start, Values: make([]float64, 0, sig.Len())}
	for i, s := range sig.Values {
		m, _ := line.At(sig.Start + i)
		hist.Values = append(hist.Values, m-s)
	}

	return MACDResult{MACD: line, Signal: sig, Histogram: hist}, nil
}
