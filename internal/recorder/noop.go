package recorder

import "FxSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAnalysis(_ *model.MarketAnalysis) error { return nil }
func (n *NoopRecorder) RecordSignal(_ *model.TradingSignal) error    { return nil }
func (n *NoopRecorder) Close() error                                 { return nil }

func (n *NoopRecorder) RecentSignals(_ string, _ int) ([]model.TradingSignal, error) {
	return nil, nil
}
