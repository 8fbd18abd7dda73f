package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"FxSentinel/internal/model"
	"FxSentinel/internal/strategy"
)

// Supported data providers.
const (
	ProviderSimulator = "simulator"
	ProviderYahoo     = "yahoo"
	ProviderREST      = "rest"
)

// EnvFile is the optional dotenv file loaded before environment overrides.
var EnvFile = ".env"

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider       string `yaml:"provider"`
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		Timeframe      string `yaml:"timeframe"`
		Limit          int    `yaml:"limit"`
		RequestsPerSec int    `yaml:"requests_per_sec"`
		Seed           int64  `yaml:"seed"`
	} `yaml:"data_source"`
	Pairs    []string `yaml:"pairs"`
	Schedule struct {
		AnalysisCron string `yaml:"analysis_cron"`
		QuoteCron    string `yaml:"quote_cron"`
	} `yaml:"schedule"`
	Notify struct {
		Cooldown  time.Duration `yaml:"cooldown"`
		StateFile string        `yaml:"state_file"`
	} `yaml:"notify"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// DefaultPairs are watched when no pairs are configured.
var DefaultPairs = []string{"EUR/USD", "GBP/USD", "USD/JPY", "USD/CHF", "AUD/USD", "USD/CAD", "NZD/USD"}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file is allowed.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Log.Pretty = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Variables already in the environment win over .env.
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", EnvFile, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"TELEGRAM_BOT_TOKEN": &c.Telegram.BotToken,
		"TELEGRAM_CHAT_ID":   &c.Telegram.ChatID,
		"DATA_PROVIDER":      &c.DataSource.Provider,
		"DATA_BASE_URL":      &c.DataSource.BaseURL,
		"DATA_API_KEY":       &c.DataSource.APIKey,
		"TIMEFRAME":          &c.DataSource.Timeframe,
		"CRON_ANALYSIS":      &c.Schedule.AnalysisCron,
		"CRON_QUOTES":        &c.Schedule.QuoteCron,
		"SQLITE_PATH":        &c.Database.SQLitePath,
		"STATE_FILE":         &c.Notify.StateFile,
		"METRICS_ADDR":       &c.Metrics.Addr,
		"LOG_LEVEL":          &c.Log.Level,
		"HTTPS_PROXY":        &c.Proxy,
	}
	for key, dst := range str {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("PAIRS"); v != "" {
		c.Pairs = nil
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				c.Pairs = append(c.Pairs, strings.ToUpper(p))
			}
		}
	}
	if v := os.Getenv("DATA_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DATA_LIMIT: %w", err)
		}
		c.DataSource.Limit = n
	}
	if v := os.Getenv("DATA_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("DATA_SEED: %w", err)
		}
		c.DataSource.Seed = n
	}
	if v := os.Getenv("NOTIFY_COOLDOWN"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("NOTIFY_COOLDOWN: %w", err)
		}
		c.Notify.Cooldown = d
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LOG_PRETTY: %w", err)
		}
		c.Log.Pretty = b
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = ProviderSimulator
	}
	if c.DataSource.Timeframe == "" {
		c.DataSource.Timeframe = model.DefaultTimeframe
	}
	if c.DataSource.Limit == 0 {
		c.DataSource.Limit = 100
	}
	if c.DataSource.RequestsPerSec == 0 {
		c.DataSource.RequestsPerSec = 5
	}
	if len(c.Pairs) == 0 {
		c.Pairs = append([]string(nil), DefaultPairs...)
	}
	if c.Schedule.AnalysisCron == "" {
		c.Schedule.AnalysisCron = "0 0 * * * *"
	}
	if c.Schedule.QuoteCron == "" {
		c.Schedule.QuoteCron = "*/5 * * * * *"
	}
	if c.Notify.Cooldown == 0 {
		c.Notify.Cooldown = 4 * time.Hour
	}
	if c.Notify.StateFile == "" {
		c.Notify.StateFile = "data/signal_state.json"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/fx_sentinel.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	switch c.DataSource.Provider {
	case ProviderSimulator, ProviderYahoo:
	case ProviderREST:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if _, ok := model.Timeframes[c.DataSource.Timeframe]; !ok {
		return fmt.Errorf("data_source.timeframe %q is not supported", c.DataSource.Timeframe)
	}
	if c.DataSource.Limit < strategy.MinBars {
		return fmt.Errorf("data_source.limit must be at least %d", strategy.MinBars)
	}
	if c.DataSource.RequestsPerSec < 0 {
		return fmt.Errorf("data_source.requests_per_sec must not be negative")
	}
	if len(c.Pairs) == 0 {
		return fmt.Errorf("pairs must not be empty")
	}
	for _, p := range c.Pairs {
		if parts := strings.Split(p, "/"); len(parts) != 2 || len(parts[0]) != 3 || len(parts[1]) != 3 {
			return fmt.Errorf("pair %q must look like EUR/USD", p)
		}
	}
	if c.Notify.Cooldown < 0 {
		return fmt.Errorf("notify.cooldown must not be negative")
	}
	return nil
}
