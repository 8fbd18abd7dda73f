// Package metrics exposes Prometheus counters for analysis runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"FxSentinel/internal/model"
)

// Metrics holds all Prometheus metrics for the bot. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	AnalysesTotal    *prometheus.CounterVec // labels: pair
	SignalsTotal     *prometheus.CounterVec // labels: pair, direction, strength
	InsufficientData *prometheus.CounterVec // labels: pair
	FetchErrors      *prometheus.CounterVec // labels: pair
	Notifications    *prometheus.CounterVec // labels: result=sent|suppressed|failed
	AnalysisDur      prometheus.Histogram
	LastConfidence   *prometheus.GaugeVec // labels: pair
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxsentinel_analyses_total",
			Help: "Completed analysis runs",
		}, []string{"pair"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxsentinel_signals_total",
			Help: "Trading signals generated",
		}, []string{"pair", "direction", "strength"}),
		InsufficientData: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxsentinel_insufficient_data_total",
			Help: "Analyses skipped for lack of history",
		}, []string{"pair"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxsentinel_fetch_errors_total",
			Help: "Failed data fetches",
		}, []string{"pair"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxsentinel_notifications_total",
			Help: "Signal notifications by outcome",
		}, []string{"result"}),
		AnalysisDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fxsentinel_analysis_duration_seconds",
			Help:    "Fetch plus analysis latency per pair",
			Buckets: prometheus.DefBuckets,
		}),
		LastConfidence: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fxsentinel_last_signal_confidence",
			Help: "Confidence of the latest signal per pair",
		}, []string{"pair"}),
	}

	reg.MustRegister(
		m.AnalysesTotal,
		m.SignalsTotal,
		m.InsufficientData,
		m.FetchErrors,
		m.Notifications,
		m.AnalysisDur,
		m.LastConfidence,
	)
	return m
}

// ObserveAnalysis counts one finished analysis and its signals.
func (m *Metrics) ObserveAnalysis(a *model.MarketAnalysis, took time.Duration) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(a.Pair).Inc()
	m.AnalysisDur.Observe(took.Seconds())
	if len(a.Indicators) == 0 {
		m.InsufficientData.WithLabelValues(a.Pair).Inc()
	}
	for _, s := range a.Signals {
		m.SignalsTotal.WithLabelValues(a.Pair, string(s.Direction), string(s.Strength)).Inc()
		m.LastConfidence.WithLabelValues(a.Pair).Set(s.Confidence)
	}
}

// FetchFailed counts a failed fetch for pair.
func (m *Metrics) FetchFailed(pair string) {
	if m == nil {
		return
	}
	m.FetchErrors.WithLabelValues(pair).Inc()
}

// Notified counts a notification outcome.
func (m *Metrics) Notified(result string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(result).Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
