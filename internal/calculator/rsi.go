package calculator

import (
	"fmt"

	"FxSentinel/internal/model"
)

// DefaultRSIPeriod is the conventional RSI look-back.
const DefaultRSIPeriod = 14

// RSI computes the Relative Strength Index over every window of period
// price changes. Gains and losses are plain window means, not Wilder
// smoothing. A window with no losses yields 100.
//
// The value at index k belongs to bar period+k, so the series is empty
// unless there are at least period+1 bars.
func RSI(bars []model.Bar, period int) (Series, error) {
	if period <= 0 {
		return Series{}, fmt.Errorf("rsi: %w (got %d)", ErrInvalidPeriod, period)
	}
	if len(bars) < period+1 {
		return Series{Start: period}, nil
	}

	closes := extractCloses(bars)
	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	values := make([]float64, 0, len(gains)-period+1)
	for i := period - 1; i < len(gains); i++ {
		var gainSum, lossSum float64
		for j := i - period + 1; j <= i; j++ {
			gainSum += gains[j]
			lossSum += losses[j]
		}
		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)

		if avgLoss == 0 {
			values = append(values, 100.0)
			continue
		}
		rs := avgGain / avgLoss
		values = append(values, 100.0-100.0/(1.0+rs))
	}
	return Series{Start: period, Values: values}, nil
}
