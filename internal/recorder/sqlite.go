package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"SalesRadar/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists report history to a SQLite database.
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

	// WAL mode for better concurrent read performance.
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
		`CREATE TABLE IF NOT EXISTS report_snapshots (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			org_id           TEXT,
			agent_id         TEXT,
			period           TEXT,
			pace_mode        INTEGER,
			template_id      TEXT,
			template_version TEXT,
			revenue_goal     REAL,
			revenue          REAL,
			goal_pct         REAL,
			tasks_completed  INTEGER,
			event_hours      REAL,
			interactions     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_report_ts ON report_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS stage_gaps (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			org_id      TEXT,
			agent_id    TEXT,
			period      TEXT,
			stage_id    TEXT,
			necessary   REAL,
			realized    REAL,
			gap         REAL,
			gap_pct     REAL,
			weight      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_gap_ts ON stage_gaps(timestamp)`,

		`CREATE TABLE IF NOT EXISTS focus_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			org_id    TEXT,
			agent_id  TEXT,
			period    TEXT,
			rank      INTEGER,
			stage_id  TEXT,
			gap       REAL,
			message   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_focus_ts ON focus_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordReport stores the snapshot header plus one row per stage gap.
func (r *SQLiteRecorder) RecordReport(rep *model.PerformanceReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	pace := 0
	if rep.PaceMode {
		pace = 1
	}

	_, err := r.db.Exec(`INSERT INTO report_snapshots
		(timestamp, org_id, agent_id, period, pace_mode, template_id, template_version,
		 revenue_goal, revenue, goal_pct, tasks_completed, event_hours, interactions)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		now, rep.OrganizationID, rep.AgentID, string(rep.Period), pace,
		rep.TemplateID, rep.TemplateVersion,
		rep.RevenueGoal, rep.Revenue, rep.GoalPct,
		rep.TasksCompleted, rep.EventHours, rep.Interactions,
	)
	if err != nil {
		return err
	}

	for _, g := range rep.Gaps {
		var pct any
		if g.GapPct != nil {
			pct = *g.GapPct
		}
		if _, err := r.db.Exec(`INSERT INTO stage_gaps
			(timestamp, org_id, agent_id, period, stage_id, necessary, realized, gap, gap_pct, weight)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			now, rep.OrganizationID, rep.AgentID, string(rep.Period),
			g.StageID, g.Necessary, g.Realized, g.Gap, pct, g.Weight,
		); err != nil {
			return err
		}
	}
	return nil
}

// RecordFocus stores the ranked focus priorities of a report.
func (r *SQLiteRecorder) RecordFocus(rep *model.PerformanceReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	for i, f := range rep.Focus {
		if _, err := r.db.Exec(`INSERT INTO focus_events
			(timestamp, org_id, agent_id, period, rank, stage_id, gap, message)
			VALUES (?,?,?,?,?,?,?,?)`,
			now, rep.OrganizationID, rep.AgentID, string(rep.Period),
			i+1, f.StageID, f.Gap, f.Message,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
