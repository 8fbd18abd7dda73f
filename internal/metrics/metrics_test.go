package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"FxSentinel/internal/model"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(body)
}

func TestObserveAnalysis(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveAnalysis(&model.MarketAnalysis{
		Pair:       "EUR/USD",
		Indicators: []model.TechnicalIndicator{{Name: "RSI (14)"}},
		Signals: []model.TradingSignal{
			{Direction: model.DirectionBuy, Strength: model.StrengthStrong, Confidence: 75},
		},
	}, 20*time.Millisecond)
	m.ObserveAnalysis(&model.MarketAnalysis{Pair: "USD/JPY"}, time.Millisecond)
	m.FetchFailed("GBP/USD")
	m.Notified("sent")

	body := scrape(t, reg)
	for _, want := range []string{
		`fxsentinel_analyses_total{pair="EUR/USD"} 1`,
		`fxsentinel_analyses_total{pair="USD/JPY"} 1`,
		`fxsentinel_signals_total{direction="BUY",pair="EUR/USD",strength="STRONG"} 1`,
		`fxsentinel_insufficient_data_total{pair="USD/JPY"} 1`,
		`fxsentinel_fetch_errors_total{pair="GBP/USD"} 1`,
		`fxsentinel_notifications_total{result="sent"} 1`,
		`fxsentinel_last_signal_confidence{pair="EUR/USD"} 75`,
		`fxsentinel_analysis_duration_seconds_count 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(body, `fxsentinel_insufficient_data_total{pair="EUR/USD"}`) {
		t.Error("EUR/USD had indicators and must not count as insufficient")
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveAnalysis(&model.MarketAnalysis{Pair: "EUR/USD"}, time.Second)
	m.FetchFailed("EUR/USD")
	m.Notified("failed")
}
