package collector

import (
	"time"

	"FxSentinel/internal/model"
)

// Resample merges consecutive bars into buckets of the given width, aligned
// with time.Truncate. Input must be oldest first.
func Resample(bars []model.Bar, width time.Duration) []model.Bar {
	if len(bars) == 0 || width <= 0 {
		return nil
	}
	var out []model.Bar
	var cur model.Bar
	var curKey time.Time
	started := false

	for _, b := range bars {
		key := b.Time.Truncate(width)
		if !started || !key.Equal(curKey) {
			if started {
				out = append(out, cur)
			}
			cur = model.Bar{Time: key, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume}
			curKey = key
			started = true
			continue
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
	}
	if started {
		out = append(out, cur)
	}
	return out
}
