package strategy

import (
	"time"

	"FxSentinel/internal/model"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testAnalyzer() *Analyzer {
	return NewAnalyzer(
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string { return "sig-1" }),
	)
}

func barsFromCloses(closes []float64) []model.Bar {
	start := fixedTime.Add(-time.Duration(len(closes)) * time.Hour)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 500000,
		}
	}
	return bars
}

// flatThen returns n-1 bars closing at 1.0 followed by one bar closing at last.
// 1.0 keeps every moving average exact, so crossings are deterministic.
func flatThen(n int, last float64) []model.Bar {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 1.0
	}
	closes[n-1] = last
	return barsFromCloses(closes)
}

func risingBars(n int) []model.Bar {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 1.0 + float64(i)*0.001
	}
	return barsFromCloses(closes)
}
