package collector

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"FxSentinel/internal/model"
)

const (
	spreadRatio     = 0.0002 // 2 pips
	quoteVolatility = 0.0005
	barVolatility   = 0.002
)

// DefaultPairs lists the majors the simulator quotes, with their base prices.
var DefaultPairs = []struct {
	Pair  string
	Price float64
}{
	{"EUR/USD", 1.0850},
	{"GBP/USD", 1.2650},
	{"USD/JPY", 149.50},
	{"USD/CHF", 0.8750},
	{"AUD/USD", 0.6550},
	{"USD/CAD", 1.3450},
	{"NZD/USD", 0.5950},
}

// Simulator is a random-walk price feed for development and demos.
type Simulator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	quotes map[string]model.Quote
	pairs  []string
	now    func() time.Time
}

// NewSimulator creates a simulator seeded with seed. The same seed always
// produces the same sequence of quotes and bars.
func NewSimulator(seed int64) *Simulator {
	s := &Simulator{
		rng:    rand.New(rand.NewSource(seed)),
		quotes: make(map[string]model.Quote, len(DefaultPairs)),
		now:    time.Now,
	}
	ts := s.now()
	for _, p := range DefaultPairs {
		spread := p.Price * spreadRatio
		s.quotes[p.Pair] = model.Quote{
			Pair:          p.Pair,
			Bid:           p.Price - spread/2,
			Ask:           p.Price + spread/2,
			Spread:        spread,
			Change:        (s.rng.Float64() - 0.5) * 0.01,
			ChangePercent: s.rng.Float64() - 0.5,
			Time:          ts,
		}
		s.pairs = append(s.pairs, p.Pair)
	}
	return s
}

func (s *Simulator) Name() string { return "simulator" }

// Pairs returns the quoted pairs in a stable order.
func (s *Simulator) Pairs() []string {
	out := make([]string, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Tick moves every quote by a small random step.
func (s *Simulator) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	for _, pair := range s.pairs {
		q := s.quotes[pair]
		change := (s.rng.Float64() - 0.5) * quoteVolatility
		bid := math.Max(0.001, q.Bid+change)
		s.quotes[pair] = model.Quote{
			Pair:          pair,
			Bid:           bid,
			Ask:           bid + q.Spread,
			Spread:        q.Spread,
			Change:        change,
			ChangePercent: change / q.Bid * 100,
			Time:          ts,
		}
	}
}

func (s *Simulator) FetchQuote(_ context.Context, pair string) (model.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotes[pair]
	if !ok {
		return model.Quote{}, fmt.Errorf("%w: %s", ErrUnknownPair, pair)
	}
	return q, nil
}

// FetchBars generates limit+1 random-walk bars ending at the current time,
// starting from the current bid.
func (s *Simulator) FetchBars(_ context.Context, pair, timeframe string, limit int) ([]model.Bar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotes[pair]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPair, pair)
	}
	if limit < 0 {
		limit = 0
	}

	step := model.TimeframeDuration(timeframe)
	now := s.now()
	price := q.Bid
	bars := make([]model.Bar, 0, limit+1)
	for i := limit; i >= 0; i-- {
		volatility := price * barVolatility
		change := (s.rng.Float64() - 0.5) * volatility
		open := price
		closePrice := price + change
		bars = append(bars, model.Bar{
			Time:   now.Add(-time.Duration(i) * step),
			Open:   open,
			High:   math.Max(open, closePrice) + s.rng.Float64()*volatility*0.5,
			Low:    math.Min(open, closePrice) - s.rng.Float64()*volatility*0.5,
			Close:  closePrice,
			Volume: s.rng.Float64() * 1000000,
		})
		price = closePrice
	}
	return bars, nil
}
