package calculator

import (
	"fmt"
	"math"

	"FxSentinel/internal/model"
)

// Bollinger Band defaults.
const (
	DefaultBandPeriod     = 20
	DefaultBandMultiplier = 2.0
)

// Bands holds the upper, middle and lower Bollinger Bands. All three share
// the same alignment.
type Bands struct {
	Upper  Series
	Middle Series
	Lower  Series
}

// BollingerBands computes SMA(period) ± multiplier × population standard
// deviation of each window.
func BollingerBands(bars []model.Bar, period int, multiplier float64) (Bands, error) {
	if multiplier < 0 {
		return Bands{}, fmt.Errorf("bollinger: %w (got %g)", ErrInvalidMultiplier, multiplier)
	}
	middle, err := SMA(bars, period)
	if err != nil {
		return Bands{}, err
	}

	closes := extractCloses(bars)
	upper := Series{Start: middle.Start, Values: make([]float64, 0, middle.Len())}
	lower := Series{Start: middle.Start, Values: make([]float64, 0, middle.Len())}
	for i, mean := range middle.Values {
		end := middle.Start + i
		var variance float64
		for j := end - period + 1; j <= end; j++ {
			d := closes[j] - mean
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(period))

		upper.Values = append(upper.Values, mean+multiplier*sd)
		lower.Values = append(lower.Values, mean-multiplier*sd)
	}

	return Bands{Upper: upper, Middle: middle, Lower: lower}, nil
}
