package calculator

import (
	"fmt"

	"FxSentinel/internal/model"
)

// SMA computes the simple moving average of closing prices for every window
// of period bars. The result starts at bar index period-1 and is empty when
// there are fewer than period bars.
func SMA(bars []model.Bar, period int) (Series, error) {
	if period <= 0 {
		return Series{}, fmt.Errorf("sma: %w (got %d)", ErrInvalidPeriod, period)
	}
	return smaOf(extractCloses(bars), period), nil
}

// EMA computes the exponential moving average of closing prices, seeded with
// the SMA of the first period closes and weighted by 2/(period+1).
func EMA(bars []model.Bar, period int) (Series, error) {
	if period <= 0 {
		return Series{}, fmt.Errorf("ema: %w (got %d)", ErrInvalidPeriod, period)
	}
	closes := extractCloses(bars)
	if len(closes) < period {
		return Series{Start: period - 1}, nil
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += closes[i]
	}

	multiplier := 2.0 / float64(period+1)
	values := make([]float64, 0, len(closes)-period+1)
	ema := sum / float64(period)
	values = append(values, ema)
	for i := period; i < len(closes); i++ {
		ema = closes[i]*multiplier + ema*(1-multiplier)
		values = append(values, ema)
	}
	return Series{Start: period - 1, Values: values}, nil
}

func smaOf(prices []float64, period int) Series {
	if len(prices) < period {
		return Series{Start: period - 1}
	}
	values := make([]float64, 0, len(prices)-period+1)
	for i := period - 1; i < len(prices); i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += prices[j]
		}
		values = append(values, sum/float64(period))
	}
	return Series{Start: period - 1, Values: values}
}
