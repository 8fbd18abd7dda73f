package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"FxSentinel/internal/collector"
	"FxSentinel/internal/config"
	"FxSentinel/internal/logging"
	"FxSentinel/internal/metrics"
	"FxSentinel/internal/notifier"
	"FxSentinel/internal/recorder"
	"FxSentinel/internal/scheduler"
	"FxSentinel/internal/strategy"
	"FxSentinel/internal/tracker"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Pretty)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().
		Str("provider", cfg.DataSource.Provider).
		Str("timeframe", cfg.DataSource.Timeframe).
		Int("limit", cfg.DataSource.Limit).
		Strs("pairs", cfg.Pairs).
		Msg("FxSentinel starting")

	fetcher := newFetcher(cfg)
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	col := collector.NewCollector(fetcher, strategy.NewAnalyzer(), cfg.DataSource.Timeframe, cfg.DataSource.Limit)

	// Init tracker
	if err := os.MkdirAll(filepath.Dir(cfg.Notify.StateFile), 0755); err != nil {
		log.Fatal().Err(err).Msg("create state directory")
	}
	tr, err := tracker.NewManager(cfg.Notify.StateFile, cfg.Notify.Cooldown)
	if err != nil {
		log.Fatal().Err(err).Msg("init tracker")
	}

	// Init recorder
	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0755); err != nil {
			log.Warn().Err(err).Msg("create database directory")
		}
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		} else {
			rec = sr
			defer sr.Close()
		}
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Init notifier
	var sender notifier.Sender = notifier.LogNotifier{}
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	} else {
		log.Warn().Msg("telegram.bot_token not set, notifications go to the log")
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, tr, sender, rec, m, cfg.Pairs)
	if err := sched.RegisterAll(cfg.Schedule.AnalysisCron, cfg.Schedule.QuoteCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	var srv *http.Server
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		srv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server")
			}
		}()
		log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics server started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, running analysis now")
		go sched.RunAnalysisNow()
	}

	log.Info().Msg("FxSentinel is running. Press Ctrl+C to stop.")
	<-ctx.Done()

	log.Info().Msg("shutdown signal received, stopping...")
	if srv != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("metrics server shutdown")
		}
	}
	log.Info().Msg("FxSentinel stopped")
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	ds := cfg.DataSource
	switch ds.Provider {
	case config.ProviderREST:
		return collector.NewRESTFetcher(ds.BaseURL, ds.APIKey, cfg.Proxy, ds.RequestsPerSec)
	case config.ProviderYahoo:
		return collector.NewYahooFetcher(cfg.Proxy, ds.RequestsPerSec)
	default:
		seed := ds.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return collector.NewSimulator(seed)
	}
}
