package calculator

import (
	"errors"
	"testing"
)

func TestRSI_LengthAndAlignment(t *testing.T) {
	bars := wavyBars(40)
	rsi, err := RSI(bars, DefaultRSIPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi.Len() != 40-DefaultRSIPeriod {
		t.Errorf("expected %d values, got %d", 40-DefaultRSIPeriod, rsi.Len())
	}
	if rsi.Start != DefaultRSIPeriod {
		t.Errorf("expected start %d, got %d", DefaultRSIPeriod, rsi.Start)
	}
	if rsi.LastIndex() != len(bars)-1 {
		t.Errorf("expected last value on bar %d, got %d", len(bars)-1, rsi.LastIndex())
	}
}

func TestRSI_InsufficientData(t *testing.T) {
	rsi, err := RSI(constantBars(14, 1), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rsi.Empty() {
		t.Errorf("expected empty series, got %d values", rsi.Len())
	}

	rsi, err = RSI(constantBars(15, 1), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi.Len() != 1 {
		t.Errorf("expected exactly one value, got %d", rsi.Len())
	}
}

func TestRSI_Bounded(t *testing.T) {
	rsi, err := RSI(wavyBars(200), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range rsi.Values {
		if v < 0 || v > 100 {
			t.Errorf("rsi[%d] = %v out of [0, 100]", i, v)
		}
	}
}

func TestRSI_ZeroLoss(t *testing.T) {
	tests := []struct {
		name string
		rsi  func() (Series, error)
	}{
		{"flat", func() (Series, error) { return RSI(constantBars(30, 1.085), 14) }},
		{"rising", func() (Series, error) { return RSI(linearBars(30, 1.0, 0.001), 14) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rsi, err := tt.rsi()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for i, v := range rsi.Values {
				if v != 100 {
					t.Errorf("rsi[%d] = %v, want 100", i, v)
				}
			}
		})
	}
}

func TestRSI_AllLosses(t *testing.T) {
	rsi, err := RSI(linearBars(20, 2.0, -0.01), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range rsi.Values {
		if v != 0 {
			t.Errorf("rsi[%d] = %v, want 0", i, v)
		}
	}
}

func TestRSI_SimpleAverageWindow(t *testing.T) {
	// Changes: +1, -1, +2, -2; period 2 windows: (+1,-1) (-1,+2) (+2,-2)
	rsi, err := RSI(barsFromCloses(10, 11, 10, 12, 10), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{50, 100 - 100/(1+2.0), 50}
	if rsi.Len() != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), rsi.Len())
	}
	for i, w := range want {
		if !almostEqual(rsi.Values[i], w) {
			t.Errorf("rsi[%d] = %v, want %v", i, rsi.Values[i], w)
		}
	}
}

func TestRSI_InvalidPeriod(t *testing.T) {
	if _, err := RSI(constantBars(10, 1), 0); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}
