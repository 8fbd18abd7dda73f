// Package tracker remembers the last signal sent per pair so repeated
// analyses of an unchanged market do not spam the chat.
package tracker

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"FxSentinel/internal/model"
)

// Manager decides whether a signal is worth notifying, with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
	cooldown time.Duration
	now      func() time.Time
}

// NewManager creates a Manager, loading state from disk. An empty filePath
// keeps the state in memory only.
func NewManager(filePath string, cooldown time.Duration) (*Manager, error) {
	state := &State{Pairs: map[string]PairState{}}
	if filePath != "" {
		var err error
		if state, err = LoadState(filePath); err != nil {
			return nil, err
		}
	}
	return &Manager{state: state, filePath: filePath, cooldown: cooldown, now: time.Now}, nil
}

// ShouldNotify reports whether sig differs from the last notified signal of
// its pair in direction or strength, or the cooldown has elapsed since then.
func (m *Manager) ShouldNotify(sig *model.TradingSignal) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, ok := m.state.Pairs[sig.Pair]
	if !ok {
		return true
	}
	if prev.Direction != sig.Direction || prev.Strength != sig.Strength {
		return true
	}
	return m.cooldown > 0 && m.now().Sub(prev.NotifiedAt) >= m.cooldown
}

// MarkNotified records sig as the last notified signal of its pair.
func (m *Manager) MarkNotified(sig *model.TradingSignal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.state.Pairs[sig.Pair]
	m.state.Pairs[sig.Pair] = PairState{
		SignalID:   sig.ID,
		Direction:  sig.Direction,
		Strength:   sig.Strength,
		Price:      sig.Price,
		NotifiedAt: m.now(),
		Count:      prev.Count + 1,
	}

	if err := m.save(); err != nil {
		log.Error().Err(err).Str("pair", sig.Pair).Msg("failed to save tracker state")
	}
}

// Get returns the last notified state for pair.
func (m *Manager) Get(pair string) (PairState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ps, ok := m.state.Pairs[pair]
	return ps, ok
}

// Reset forgets pair so its next signal is always notified.
func (m *Manager) Reset(pair string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.state.Pairs, pair)
	if err := m.save(); err != nil {
		log.Error().Err(err).Str("pair", pair).Msg("failed to save tracker state after reset")
	}
}

func (m *Manager) save() error {
	if m.filePath == "" {
		return nil
	}
	return SaveState(m.filePath, m.state)
}
