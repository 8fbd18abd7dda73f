package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"FxSentinel/internal/model"
	"FxSentinel/internal/strategy"
)

// SQLiteRecorder persists analyses and signals to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			pair           TEXT NOT NULL,
			timeframe      TEXT,
			bar_count      INTEGER,
			price          REAL,
			bid            REAL,
			ask            REAL,
			range_high     REAL,
			range_low      REAL,
			range_position REAL,
			rsi            REAL,
			macd           REAL,
			sma_cross      REAL,
			price_vs_sma20 REAL,
			direction      TEXT,
			strength       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_pair_ts ON analyses(pair, timestamp)`,

		`CREATE TABLE IF NOT EXISTS signals (
			id         TEXT PRIMARY KEY,
			timestamp  INTEGER NOT NULL,
			pair       TEXT NOT NULL,
			direction  TEXT NOT NULL,
			strength   TEXT NOT NULL,
			price      REAL,
			confidence REAL,
			reasons    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_pair_ts ON signals(pair, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// indicatorValue returns the named indicator value, or nil so the column
// stores NULL when the snapshot is empty.
func indicatorValue(a *model.MarketAnalysis, name string) interface{} {
	if ind, ok := a.Indicator(name); ok {
		return ind.Value
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(a *model.MarketAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var direction, strength interface{}
	if len(a.Signals) > 0 {
		direction = string(a.Signals[0].Direction)
		strength = string(a.Signals[0].Strength)
	}

	_, err := r.db.Exec(`INSERT INTO analyses
		(timestamp, pair, timeframe, bar_count, price, bid, ask,
		 range_high, range_low, range_position,
		 rsi, macd, sma_cross, price_vs_sma20, direction, strength)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.GeneratedAt.UnixMilli(), a.Pair, a.Timeframe, a.BarCount,
		a.Price, a.Quote.Bid, a.Quote.Ask,
		a.High, a.Low, a.Position,
		indicatorValue(a, strategy.IndicatorRSI),
		indicatorValue(a, strategy.IndicatorMACD),
		indicatorValue(a, strategy.IndicatorSMACross),
		indicatorValue(a, strategy.IndicatorPriceVsSMA20),
		direction, strength,
	)
	return err
}

func (r *SQLiteRecorder) RecordSignal(sig *model.TradingSignal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reasons, err := json.Marshal(sig.Indicators)
	if err != nil {
		return fmt.Errorf("encode reasons: %w", err)
	}
	_, err = r.db.Exec(`INSERT OR REPLACE INTO signals
		(id, timestamp, pair, direction, strength, price, confidence, reasons)
		VALUES (?,?,?,?,?,?,?,?)`,
		sig.ID, sig.Time.UnixMilli(), sig.Pair,
		string(sig.Direction), string(sig.Strength),
		sig.Price, sig.Confidence, string(reasons),
	)
	return err
}

func (r *SQLiteRecorder) RecentSignals(pair string, limit int) ([]model.TradingSignal, error) {
	if limit <= 0 {
		limit = 10
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, pair, direction, strength, price, confidence, reasons
		FROM signals WHERE pair = ? ORDER BY timestamp DESC, rowid DESC LIMIT ?`, pair, limit)
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	var out []model.TradingSignal
	for rows.Next() {
		var (
			sig       model.TradingSignal
			ts        int64
			direction string
			strength  string
			reasons   string
		)
		if err := rows.Scan(&sig.ID, &ts, &sig.Pair, &direction, &strength,
			&sig.Price, &sig.Confidence, &reasons); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		sig.Time = time.UnixMilli(ts)
		sig.Direction = model.Direction(direction)
		sig.Strength = model.Strength(strength)
		if reasons != "" {
			if err := json.Unmarshal([]byte(reasons), &sig.Indicators); err != nil {
				return nil, fmt.Errorf("decode reasons: %w", err)
			}
		}
		out = append(out, sig)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
