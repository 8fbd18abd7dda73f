package calculator

import (
	"math"
	"time"

	"FxSentinel/internal/model"
)

const tolerance = 1e-9

func barsFromCloses(closes ...float64) []model.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func constantBars(n int, c float64) []model.Bar {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = c
	}
	return barsFromCloses(closes...)
}

func linearBars(n int, start, step float64) []model.Bar {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)*step
	}
	return barsFromCloses(closes...)
}

// wavyBars produces a deterministic series with both gains and losses.
func wavyBars(n int) []model.Bar {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 1.1 + 0.01*math.Sin(float64(i)/3) + 0.004*math.Cos(float64(i)*1.7)
	}
	return barsFromCloses(closes...)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}
