package scheduler

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"FxSentinel/internal/collector"
	"FxSentinel/internal/metrics"
	"FxSentinel/internal/model"
	"FxSentinel/internal/notifier"
	"FxSentinel/internal/recorder"
	"FxSentinel/internal/tracker"
)

const (
	sendRetries    = 3
	historyLimit   = 10
	analyzeTimeout = 2 * time.Minute
)

// Scheduler manages all cron tasks and answers chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Tracker   *tracker.Manager
	Notifier  notifier.Sender
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	Pairs     []string
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, tr *tracker.Manager, sender notifier.Sender,
	rec recorder.Recorder, m *metrics.Metrics, pairs []string) *Scheduler {
	l := cronLogger{}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		Collector: col,
		Tracker:   tr,
		Notifier:  sender,
		Recorder:  rec,
		Metrics:   m,
		Pairs:     pairs,
		Ctx:       ctx,
	}
}

// RegisterAll registers the analysis task, and the quote tick task when
// the fetcher moves its own prices.
func (s *Scheduler) RegisterAll(analysisCron, quoteCron string) error {
	if _, err := s.Cron.AddFunc(analysisCron, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	if _, ok := s.Collector.Fetcher.(collector.Ticker); ok {
		if _, err := s.Cron.AddFunc(quoteCron, s.quoteTask); err != nil {
			return fmt.Errorf("register quote task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("pairs", len(s.Pairs)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunAnalysisNow executes the analysis task immediately.
func (s *Scheduler) RunAnalysisNow() {
	s.analysisTask()
}

func (s *Scheduler) quoteTask() {
	if t, ok := s.Collector.Fetcher.(collector.Ticker); ok {
		t.Tick()
	}
}

func (s *Scheduler) analysisTask() {
	log.Info().Int("pairs", len(s.Pairs)).Msg("running analysis task")
	failed := 0
	for _, pair := range s.Pairs {
		if s.Ctx.Err() != nil {
			return
		}
		if _, err := s.analyze(pair); err != nil {
			failed++
			log.Error().Err(err).Str("pair", pair).Msg("analysis failed")
		}
	}
	if failed > 0 && failed == len(s.Pairs) {
		s.trySend(fmt.Sprintf("❌ Analysis failed for all %d pairs, check the data source", failed))
	}
}

// analyze collects one pair, records the result and notifies new signals.
func (s *Scheduler) analyze(pair string) (*model.MarketAnalysis, error) {
	ctx, cancel := context.WithTimeout(s.Ctx, analyzeTimeout)
	defer cancel()

	start := time.Now()
	a, err := s.Collector.Collect(ctx, pair)
	if err != nil {
		s.Metrics.FetchFailed(pair)
		return nil, err
	}
	s.Metrics.ObserveAnalysis(a, time.Since(start))

	if err := s.Recorder.RecordAnalysis(a); err != nil {
		log.Error().Err(err).Str("pair", pair).Msg("record analysis")
	}
	for i := range a.Signals {
		sig := &a.Signals[i]
		if err := s.Recorder.RecordSignal(sig); err != nil {
			log.Error().Err(err).Str("pair", pair).Msg("record signal")
		}
		s.notify(sig)
	}
	return a, nil
}

func (s *Scheduler) notify(sig *model.TradingSignal) {
	if !s.Tracker.ShouldNotify(sig) {
		s.Metrics.Notified("suppressed")
		log.Debug().
			Str("pair", sig.Pair).
			Str("direction", string(sig.Direction)).
			Str("strength", string(sig.Strength)).
			Msg("signal unchanged, not notifying")
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, notifier.FormatSignal(sig), sendRetries); err != nil {
		s.Metrics.Notified("failed")
		log.Error().Err(err).Str("pair", sig.Pair).Msg("send signal")
		return
	}
	s.Tracker.MarkNotified(sig)
	s.Metrics.Notified("sent")
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// "/analyze@FxSentinelBot" in group chats
	cmd := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])
	arg := ""
	if len(fields) > 1 {
		arg = normalizePair(fields[1])
	}

	switch cmd {
	case "/analyze":
		if arg == "" {
			return "Usage: /analyze EUR/USD"
		}
		a, err := s.Collector.Collect(ctx, arg)
		if err != nil {
			log.Error().Err(err).Str("pair", arg).Msg("command analysis failed")
			return fmt.Sprintf("❌ Analysis failed for %s: %s", html.EscapeString(arg), html.EscapeString(err.Error()))
		}
		return notifier.FormatAnalysis(a)
	case "/signals":
		if arg == "" {
			return "Usage: /signals EUR/USD"
		}
		sigs, err := s.Recorder.RecentSignals(arg, historyLimit)
		if err != nil {
			log.Error().Err(err).Str("pair", arg).Msg("load signal history")
			return fmt.Sprintf("❌ Could not load signals for %s", html.EscapeString(arg))
		}
		return notifier.FormatSignalHistory(arg, sigs)
	case "/quotes":
		quotes := make([]model.Quote, 0, len(s.Pairs))
		for _, pair := range s.Pairs {
			q, err := s.Collector.Fetcher.FetchQuote(ctx, pair)
			if err != nil {
				log.Warn().Err(err).Str("pair", pair).Msg("fetch quote")
				continue
			}
			quotes = append(quotes, q)
		}
		return notifier.FormatQuotes(quotes)
	case "/pairs":
		return notifier.FormatPairs(s.Pairs)
	case "/reset":
		if arg == "" {
			return "Usage: /reset EUR/USD"
		}
		if _, ok := s.Tracker.Get(arg); !ok {
			return fmt.Sprintf("No notified signal for %s", html.EscapeString(arg))
		}
		s.Tracker.Reset(arg)
		log.Info().Str("pair", arg).Msg("tracker state reset by command")
		return fmt.Sprintf("🔄 %s reset, the next signal will be sent", html.EscapeString(arg))
	default:
		return notifier.FormatHelp()
	}
}

// normalizePair turns "eurusd" or "eur/usd" into "EUR/USD".
func normalizePair(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) == 6 && !strings.Contains(s, "/") {
		return s[:3] + "/" + s[3:]
	}
	return s
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
