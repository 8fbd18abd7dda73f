package calculator

import (
	"testing"
	"time"

	"FxSentinel/internal/model"
)

func TestRange(t *testing.T) {
	now := time.Now()
	bars := []model.Bar{
		{Time: now, High: 1.10, Low: 1.05, Close: 1.08},
		{Time: now.Add(time.Hour), High: 1.20, Low: 1.07, Close: 1.15},
		{Time: now.Add(2 * time.Hour), High: 1.12, Low: 1.09, Close: 1.10},
	}

	high, low, err := Range(bars, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 1.20 || low != 1.05 {
		t.Errorf("full range = %v/%v, want 1.20/1.05", high, low)
	}

	high, low, err = Range(bars, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 1.12 || low != 1.09 {
		t.Errorf("lookback 1 = %v/%v, want 1.12/1.09", high, low)
	}

	if _, _, err := Range(nil, 10); err == nil {
		t.Error("expected error for empty bars")
	}
}

func TestRangePosition(t *testing.T) {
	tests := []struct {
		current, high, low float64
		want               float64
	}{
		{1.5, 2, 1, 0.5},
		{3, 2, 1, 1},
		{0, 2, 1, 0},
		{1, 1, 1, 0.5},
	}
	for _, tt := range tests {
		got, err := RangePosition(tt.current, tt.high, tt.low)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !almostEqual(got, tt.want) {
			t.Errorf("RangePosition(%v, %v, %v) = %v, want %v", tt.current, tt.high, tt.low, got, tt.want)
		}
	}
	if _, err := RangePosition(1, 1, 2); err == nil {
		t.Error("expected error when high < low")
	}
}
