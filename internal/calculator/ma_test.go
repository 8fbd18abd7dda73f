package calculator

import (
	"errors"
	"testing"
)

func TestSMA_Values(t *testing.T) {
	bars := barsFromCloses(1, 2, 3, 4, 5)
	sma, err := SMA(bars, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{2, 3, 4}
	if sma.Len() != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), sma.Len())
	}
	if sma.Start != 2 {
		t.Errorf("expected start 2, got %d", sma.Start)
	}
	for i, w := range want {
		if !almostEqual(sma.Values[i], w) {
			t.Errorf("sma[%d] = %v, want %v", i, sma.Values[i], w)
		}
	}
}

func TestSMA_ConstantSeries(t *testing.T) {
	sma, err := SMA(constantBars(30, 1.25), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sma.Len() != 21 {
		t.Fatalf("expected 21 values, got %d", sma.Len())
	}
	for i, v := range sma.Values {
		if v != 1.25 {
			t.Errorf("sma[%d] = %v, want 1.25", i, v)
		}
	}
}

func TestMovingAverages_InsufficientData(t *testing.T) {
	for period := 1; period <= 30; period++ {
		bars := constantBars(period-1, 1.1)
		sma, err := SMA(bars, period)
		if err != nil {
			t.Fatalf("sma period %d: %v", period, err)
		}
		if !sma.Empty() {
			t.Errorf("sma period %d on %d bars: expected empty, got %d values", period, len(bars), sma.Len())
		}
		ema, err := EMA(bars, period)
		if err != nil {
			t.Fatalf("ema period %d: %v", period, err)
		}
		if !ema.Empty() {
			t.Errorf("ema period %d on %d bars: expected empty, got %d values", period, len(bars), ema.Len())
		}
	}
}

func TestMovingAverages_InvalidPeriod(t *testing.T) {
	bars := constantBars(10, 1)
	for _, period := range []int{0, -1} {
		if _, err := SMA(bars, period); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("SMA(%d): expected ErrInvalidPeriod, got %v", period, err)
		}
		if _, err := EMA(bars, period); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("EMA(%d): expected ErrInvalidPeriod, got %v", period, err)
		}
	}
}

func TestEMA_SeedAndRecursion(t *testing.T) {
	bars := barsFromCloses(2, 4, 6, 8, 10)
	ema, err := EMA(bars, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// seed = (2+4+6)/3 = 4, k = 0.5
	want := []float64{4, 6, 8}
	if ema.Len() != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), ema.Len())
	}
	for i, w := range want {
		if !almostEqual(ema.Values[i], w) {
			t.Errorf("ema[%d] = %v, want %v", i, ema.Values[i], w)
		}
	}
	if ema.Start != 2 {
		t.Errorf("expected start 2, got %d", ema.Start)
	}
}

func TestEMA_ConvergesTowardStep(t *testing.T) {
	closes := make([]float64, 0, 60)
	for i := 0; i < 30; i++ {
		closes = append(closes, 1.0)
	}
	for i := 0; i < 30; i++ {
		closes = append(closes, 2.0)
	}
	ema, err := EMA(barsFromCloses(closes...), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev, _ := ema.At(29)
	if prev != 1.0 {
		t.Fatalf("expected EMA 1.0 before the step, got %v", prev)
	}
	for i := 30; i < 60; i++ {
		v, ok := ema.At(i)
		if !ok {
			t.Fatalf("missing EMA value at bar %d", i)
		}
		if v <= prev {
			t.Errorf("bar %d: EMA %v did not move toward 2.0 (prev %v)", i, v, prev)
		}
		if v >= 2.0 {
			t.Errorf("bar %d: EMA %v reached the step value", i, v)
		}
		prev = v
	}
}
