package calculator

import (
	"errors"

	"FxSentinel/internal/model"
)

var (
	// ErrInvalidPeriod is returned when a period is not positive (or fast >= slow for MACD).
	ErrInvalidPeriod = errors.New("period must be positive")
	// ErrInvalidMultiplier is returned for a negative band multiplier.
	ErrInvalidMultiplier = errors.New("multiplier must not be negative")
)

// Series is an indicator value series aligned to a bar series.
// Values[0] belongs to the bar at index Start; an empty Series means the
// input was too short for the computation.
type Series struct {
	Start  int
	Values []float64
}

// Len returns the number of values.
func (s Series) Len() int { return len(s.Values) }

// Empty reports whether the series holds no values.
func (s Series) Empty() bool { return len(s.Values) == 0 }

// At returns the value aligned to the given bar index.
func (s Series) At(barIndex int) (float64, bool) {
	i := barIndex - s.Start
	if i < 0 || i >= len(s.Values) {
		return 0, false
	}
	return s.Values[i], true
}

// Last returns the most recent value.
func (s Series) Last() (float64, bool) {
	if len(s.Values) == 0 {
		return 0, false
	}
	return s.Values[len(s.Values)-1], true
}

// Prev returns the value before the most recent one.
func (s Series) Prev() (float64, bool) {
	if len(s.Values) < 2 {
		return 0, false
	}
	return s.Values[len(s.Values)-2], true
}

// LastIndex returns the bar index of the most recent value, or -1 when empty.
func (s Series) LastIndex() int {
	if len(s.Values) == 0 {
		return -1
	}
	return s.Start + len(s.Values) - 1
}

func extractCloses(bars []model.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
