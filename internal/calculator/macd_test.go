package calculator

import (
	"errors"
	"math"
	"testing"
)

func TestMACD_Alignment(t *testing.T) {
	bars := wavyBars(60)
	res, err := MACD(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.MACD.Start != DefaultMACDSlow-1 {
		t.Errorf("expected MACD start %d, got %d", DefaultMACDSlow-1, res.MACD.Start)
	}
	if res.MACD.Len() != 60-DefaultMACDSlow+1 {
		t.Errorf("expected %d MACD values, got %d", 60-DefaultMACDSlow+1, res.MACD.Len())
	}
	if res.Signal.Start != res.MACD.Start+DefaultMACDSignal-1 {
		t.Errorf("expected signal start %d, got %d", res.MACD.Start+DefaultMACDSignal-1, res.Signal.Start)
	}
	if res.Signal.LastIndex() != len(bars)-1 || res.MACD.LastIndex() != len(bars)-1 {
		t.Errorf("expected all series to end on the last bar")
	}

	// Each MACD value must equal EMA12 - EMA26 on the same bar.
	fast, _ := EMA(bars, DefaultMACDFast)
	slow, _ := EMA(bars, DefaultMACDSlow)
	for i := res.MACD.Start; i < len(bars); i++ {
		m, _ := res.MACD.At(i)
		f, _ := fast.At(i)
		s, _ := slow.At(i)
		if !almostEqual(m, f-s) {
			t.Fatalf("bar %d: macd %v != ema12-ema26 %v", i, m, f-s)
		}
	}
}

func TestMACD_HistogramIsMACDMinusSignal(t *testing.T) {
	res, err := MACD(wavyBars(120))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Histogram.Len() != res.Signal.Len() || res.Histogram.Start != res.Signal.Start {
		t.Fatalf("histogram not aligned with signal")
	}
	for i, h := range res.Histogram.Values {
		bar := res.Histogram.Start + i
		m, ok := res.MACD.At(bar)
		if !ok {
			t.Fatalf("no MACD value on bar %d", bar)
		}
		s, _ := res.Signal.At(bar)
		if math.Abs(h-(m-s)) > tolerance {
			t.Errorf("bar %d: histogram %v != macd-signal %v", bar, h, m-s)
		}
	}
}

func TestMACD_MinimumBars(t *testing.T) {
	tests := []struct {
		bars       int
		wantMACD   int
		wantSignal int
	}{
		{25, 0, 0},
		{26, 1, 0},
		{33, 8, 0},
		{34, 9, 1},
		{35, 10, 2},
	}
	for _, tt := range tests {
		res, err := MACD(wavyBars(tt.bars))
		if err != nil {
			t.Fatalf("%d bars: unexpected error: %v", tt.bars, err)
		}
		if res.MACD.Len() != tt.wantMACD {
			t.Errorf("%d bars: expected %d MACD values, got %d", tt.bars, tt.wantMACD, res.MACD.Len())
		}
		if res.Signal.Len() != tt.wantSignal || res.Histogram.Len() != tt.wantSignal {
			t.Errorf("%d bars: expected %d signal values, got %d/%d", tt.bars, tt.wantSignal, res.Signal.Len(), res.Histogram.Len())
		}
	}
}

func TestMACD_FlatSeriesIsZero(t *testing.T) {
	res, err := MACD(constantBars(60, 1.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range res.MACD.Values {
		if v != 0 {
			t.Errorf("macd[%d] = %v, want 0", i, v)
		}
	}
	for i, v := range res.Signal.Values {
		if v != 0 {
			t.Errorf("signal[%d] = %v, want 0", i, v)
		}
	}
}

func TestMACD_InvalidPeriods(t *testing.T) {
	bars := wavyBars(60)
	if _, err := MACDWithPeriods(bars, 26, 12, 9); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("fast >= slow: expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := MACDWithPeriods(bars, 12, 26, 0); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("zero signal: expected ErrInvalidPeriod, got %v", err)
	}
}
