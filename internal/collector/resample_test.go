package collector

import (
	"testing"
	"time"

	"FxSentinel/internal/model"
)

func TestResampleFourHour(t *testing.T) {
	var hourly []model.Bar
	for i := 0; i < 8; i++ {
		p := 1.0 + float64(i)*0.01
		hourly = append(hourly, model.Bar{
			Time:   baseTime.Add(time.Duration(i) * time.Hour),
			Open:   p,
			High:   p + 0.005,
			Low:    p - 0.005,
			Close:  p + 0.002,
			Volume: 10,
		})
	}

	got := Resample(hourly, 4*time.Hour)
	if len(got) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(got))
	}

	first := got[0]
	if !first.Time.Equal(baseTime) {
		t.Errorf("first bucket at %s, want %s", first.Time, baseTime)
	}
	if first.Open != hourly[0].Open {
		t.Errorf("open = %v, want %v", first.Open, hourly[0].Open)
	}
	if first.Close != hourly[3].Close {
		t.Errorf("close = %v, want %v", first.Close, hourly[3].Close)
	}
	if first.High != hourly[3].High {
		t.Errorf("high = %v, want %v", first.High, hourly[3].High)
	}
	if first.Low != hourly[0].Low {
		t.Errorf("low = %v, want %v", first.Low, hourly[0].Low)
	}
	if first.Volume != 40 {
		t.Errorf("volume = %v, want 40", first.Volume)
	}
	if !got[1].Time.Equal(baseTime.Add(4 * time.Hour)) {
		t.Errorf("second bucket at %s", got[1].Time)
	}
}

func TestResamplePartialBucket(t *testing.T) {
	// 02:00 and 03:00 belong to the 00:00 bucket, 04:00 starts the next.
	bars := []model.Bar{
		{Time: baseTime.Add(2 * time.Hour), Open: 1, High: 1, Low: 1, Close: 1},
		{Time: baseTime.Add(3 * time.Hour), Open: 1, High: 2, Low: 1, Close: 2},
		{Time: baseTime.Add(4 * time.Hour), Open: 2, High: 2, Low: 2, Close: 2},
	}
	got := Resample(bars, 4*time.Hour)
	if len(got) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(got))
	}
	if !got[0].Time.Equal(baseTime) || got[0].High != 2 {
		t.Errorf("unexpected first bucket: %+v", got[0])
	}
}

func TestResampleEmpty(t *testing.T) {
	if got := Resample(nil, time.Hour); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
