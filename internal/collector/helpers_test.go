package collector

import (
	"context"
	"errors"
	"time"

	"FxSentinel/internal/model"
)

var baseTime = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

// stubFetcher returns fixed data for testing.
type stubFetcher struct {
	bars     []model.Bar
	quote    model.Quote
	barsErr  error
	quoteErr error
	calls    int
}

func (s *stubFetcher) Name() string { return "stub" }

func (s *stubFetcher) FetchBars(_ context.Context, _, _ string, _ int) ([]model.Bar, error) {
	s.calls++
	if s.barsErr != nil {
		return nil, s.barsErr
	}
	return s.bars, nil
}

func (s *stubFetcher) FetchQuote(_ context.Context, pair string) (model.Quote, error) {
	if s.quoteErr != nil {
		return model.Quote{}, s.quoteErr
	}
	q := s.quote
	q.Pair = pair
	return q, nil
}

var errStub = errors.New("stub failure")

func flatBars(n int, price float64) []model.Bar {
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = model.Bar{
			Time:   baseTime.Add(time.Duration(i) * time.Hour),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: 100,
		}
	}
	return bars
}
