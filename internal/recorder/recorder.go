package recorder

import "FxSentinel/internal/model"

// Recorder persists analyses and signals for later review.
type Recorder interface {
	RecordAnalysis(a *model.MarketAnalysis) error
	RecordSignal(sig *model.TradingSignal) error
	// RecentSignals returns up to limit signals for pair, newest first.
	RecentSignals(pair string, limit int) ([]model.TradingSignal, error)
	Close() error
}
