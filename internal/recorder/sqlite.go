package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"SplitSentinel/internal/model"
)

// SQLiteRecorder persists runs, ledgers and signal events to SQLite.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so reporting tools can read while the daemon writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at       INTEGER NOT NULL,
			symbol           TEXT,
			initial_capital  REAL,
			divisions        INTEGER,
			mode             TEXT,
			rebalance_period INTEGER,
			start_date       TEXT,
			end_date         TEXT,
			days             INTEGER,
			total_trades     INTEGER,
			buy_trades       INTEGER,
			sell_trades      INTEGER,
			stop_losses      INTEGER,
			win_rate         REAL,
			avg_win          REAL,
			avg_loss         REAL,
			total_commission REAL,
			final_return     REAL,
			max_drawdown     REAL,
			sharpe_ratio     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,

		`CREATE TABLE IF NOT EXISTS daily_ledger (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       INTEGER NOT NULL,
			date         TEXT NOT NULL,
			close        REAL,
			prev_close   REAL,
			change_pct   REAL,
			mode         TEXT,
			buy_qty      INTEGER,
			sell_qty     INTEGER,
			net_qty      INTEGER,
			realized_pl  REAL,
			total_cash   REAL,
			holdings     INTEGER,
			total_value  REAL,
			total_assets REAL,
			return_pct   REAL,
			drawdown_pct REAL,
			rebalance    INTEGER,
			actions      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_run ON daily_ledger(run_id, date)`,

		`CREATE TABLE IF NOT EXISTS signal_events (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			date         TEXT,
			mode         TEXT,
			mode_reason  TEXT,
			close        REAL,
			prev_close   REAL,
			buy_signals  INTEGER,
			sell_signals INTEGER,
			detail       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_ts ON signal_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *RunRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sum := run.Summary
	res, err := r.db.Exec(`INSERT INTO runs
		(created_at, symbol, initial_capital, divisions, mode, rebalance_period,
		 start_date, end_date, days,
		 total_trades, buy_trades, sell_trades, stop_losses,
		 win_rate, avg_win, avg_loss, total_commission,
		 final_return, max_drawdown, sharpe_ratio)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), run.Symbol,
		run.Config.InitialCapital, run.Config.Divisions, string(run.Config.Mode), run.Config.RebalancePeriod,
		run.Start.Format("2006-01-02"), run.End.Format("2006-01-02"), run.Days,
		sum.TotalTrades, sum.BuyTrades, sum.SellTrades, sum.StopLosses,
		sum.WinRate, sum.AvgWin, sum.AvgLoss, sum.TotalCommission,
		sum.FinalReturn, sum.MaxDrawdown, sum.SharpeRatio,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRecorder) RecordLedger(runID int64, records []model.DailyLedgerRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO daily_ledger
		(run_id, date, close, prev_close, change_pct, mode,
		 buy_qty, sell_qty, net_qty, realized_pl,
		 total_cash, holdings, total_value, total_assets,
		 return_pct, drawdown_pct, rebalance, actions)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		rebalance := 0
		if rec.RebalanceDay {
			rebalance = 1
		}
		if _, err := stmt.Exec(
			runID, rec.Date.Format("2006-01-02"), rec.Close, rec.PrevClose, rec.ChangeRate, string(rec.Mode),
			rec.TotalBuyQuantity, rec.TotalSellQuantity, rec.NetQuantity, rec.DailyRealizedPL,
			rec.TotalCash, rec.TotalHoldings, rec.TotalValue, rec.TotalAssets,
			rec.ReturnRate, rec.Drawdown, rebalance, len(rec.Actions),
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordSignal(evt *SignalEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signal_events
		(timestamp, date, mode, mode_reason, close, prev_close, buy_signals, sell_signals, detail)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Date.Format("2006-01-02"), string(evt.Mode), evt.ModeReason,
		evt.Close, evt.PrevClose, evt.BuySignals, evt.SellSignals, evt.Detail,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
