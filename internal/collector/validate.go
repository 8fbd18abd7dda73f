package collector

import (
	"errors"
	"fmt"
	"math"

	"FxSentinel/internal/model"
)

// ErrInvalidBars is returned when a bar series breaks the input contract of
// the analysis engines.
var ErrInvalidBars = errors.New("invalid bar series")

// ValidateBars checks ordering, positive prices, the OHLC envelope and
// non-negative volume. The engines themselves do not validate.
func ValidateBars(bars []model.Bar) error {
	for i, b := range bars {
		if i > 0 && b.Time.Before(bars[i-1].Time) {
			return fmt.Errorf("%w: bar %d at %s is earlier than bar %d", ErrInvalidBars, i, b.Time, i-1)
		}
		for _, p := range []float64{b.Open, b.High, b.Low, b.Close} {
			if p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
				return fmt.Errorf("%w: bar %d has non-positive or non-finite price %v", ErrInvalidBars, i, p)
			}
		}
		if b.Low > math.Min(b.Open, b.Close) || math.Max(b.Open, b.Close) > b.High {
			return fmt.Errorf("%w: bar %d breaks low <= open,close <= high", ErrInvalidBars, i)
		}
		if b.Volume < 0 {
			return fmt.Errorf("%w: bar %d has negative volume", ErrInvalidBars, i)
		}
	}
	return nil
}
