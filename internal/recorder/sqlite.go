package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

// SQLiteRecorder persists pipeline events to a SQLite database.
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

	// WAL mode so dashboards can read while the monitor writes.
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
		`CREATE TABLE IF NOT EXISTS predictions (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			ticker           TEXT NOT NULL,
			company_name     TEXT,
			sector           TEXT,
			current_price    REAL,
			predicted_price  REAL,
			price_change     REAL,
			price_change_pct REAL,
			rsi              REAL,
			macd             REAL,
			signal           TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_ticker_ts ON predictions(ticker, timestamp)`,

		`CREATE TABLE IF NOT EXISTS email_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			ticker     TEXT NOT NULL,
			recipients INTEGER,
			sent       INTEGER,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_email_ticker_ts ON email_events(ticker, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordPrediction(rec *model.PredictionRecord, signal model.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO predictions
		(timestamp, ticker, company_name, sector,
		 current_price, predicted_price, price_change, price_change_pct,
		 rsi, macd, signal)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		rec.Timestamp.Unix(), rec.Ticker, rec.CompanyName, rec.Sector,
		rec.CurrentPrice, rec.PredictedPrice, rec.PriceChange, rec.PriceChangePct,
		rec.RSI, rec.MACD, string(signal),
	)
	return err
}

func (r *SQLiteRecorder) RecordEmail(evt *EmailEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO email_events
		(timestamp, ticker, recipients, sent, error)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.Ticker, evt.Recipients, evt.Sent, evt.Err,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
