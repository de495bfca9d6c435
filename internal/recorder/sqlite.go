package recorder

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"StockTracker/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists report runs to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets external readers query while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS report_runs (
			id            TEXT PRIMARY KEY,
			timestamp     INTEGER NOT NULL,
			trigger_type  TEXT,
			symbols       TEXT,
			row_count     INTEGER,
			alert_count   INTEGER,
			failure_count INTEGER,
			failures      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON report_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS stock_rows (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    TEXT NOT NULL REFERENCES report_runs(id),
			symbol    TEXT NOT NULL,
			company   TEXT,
			price     REAL,
			change_1d REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rows_symbol ON stock_rows(symbol)`,

		`CREATE TABLE IF NOT EXISTS row_metrics (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL REFERENCES report_runs(id),
			symbol      TEXT NOT NULL,
			window_name TEXT NOT NULL,
			growth      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_metrics_run ON row_metrics(run_id)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL REFERENCES report_runs(id),
			symbol      TEXT NOT NULL,
			window_name TEXT,
			growth      REAL,
			message     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_symbol ON alerts(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps an absent metric to SQL NULL.
func nullable(m model.Metric) sql.NullFloat64 {
	return sql.NullFloat64{Float64: m.Value, Valid: m.Valid}
}

func (r *SQLiteRecorder) RecordReport(rep *model.Report, trigger string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runID := uuid.NewString()
	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	failed := make([]string, len(rep.Failures))
	for i, f := range rep.Failures {
		failed[i] = f.Symbol
	}
	if _, err := tx.Exec(`INSERT INTO report_runs
		(id, timestamp, trigger_type, symbols, row_count, alert_count, failure_count, failures)
		VALUES (?,?,?,?,?,?,?,?)`,
		runID, rep.GeneratedAt.Unix(), trigger, strings.Join(rep.Symbols, ","),
		len(rep.Rows), len(rep.Alerts), len(rep.Failures), strings.Join(failed, ","),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, row := range rep.Rows {
		if _, err := tx.Exec(`INSERT INTO stock_rows
			(run_id, symbol, company, price, change_1d) VALUES (?,?,?,?,?)`,
			runID, row.Symbol, row.Company, nullable(row.Price), nullable(row.DailyChange),
		); err != nil {
			return "", fmt.Errorf("insert row %s: %w", row.Symbol, err)
		}
		for _, g := range row.Growth {
			if _, err := tx.Exec(`INSERT INTO row_metrics
				(run_id, symbol, window_name, growth) VALUES (?,?,?,?)`,
				runID, row.Symbol, g.Window.Name, nullable(g.Growth),
			); err != nil {
				return "", fmt.Errorf("insert metric %s/%s: %w", row.Symbol, g.Window.Name, err)
			}
		}
	}

	for _, a := range rep.Alerts {
		if _, err := tx.Exec(`INSERT INTO alerts
			(run_id, symbol, window_name, growth, message) VALUES (?,?,?,?,?)`,
			runID, a.Symbol, a.Window.Name, a.Growth, a.Message,
		); err != nil {
			return "", fmt.Errorf("insert alert %s: %w", a.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	r.logger.Debug("report recorded", zap.String("run_id", runID), zap.String("trigger", trigger))
	return runID, nil
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
