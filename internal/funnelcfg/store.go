package funnelcfg

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"SalesRadar/internal/model"

	_ "modernc.org/sqlite"
)

// Resolver yields the active funnel template for an organization. It never
// fails: availability of some template is a correctness invariant for every
// downstream computation.
type Resolver interface {
	ActiveTemplate(orgID string, asOf time.Time) model.FunnelTemplate
}

// StaticResolver always answers with the built-in default template. Used when
// no template database is configured.
type StaticResolver struct{}

func NewStaticResolver() *StaticResolver { return &StaticResolver{} }

func (s *StaticResolver) ActiveTemplate(_ string, _ time.Time) model.FunnelTemplate {
	return Default()
}

// Store keeps versioned funnel templates in SQLite. Templates are append-only:
// a new version never overwrites one that was effective for past periods.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the template database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] template store opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS funnel_templates (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			org_id         TEXT NOT NULL,
			template_id    TEXT,
			version        TEXT,
			effective_from INTEGER NOT NULL,
			payload        TEXT NOT NULL,
			created_at     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tpl_org_eff ON funnel_templates(org_id, effective_from)`,
	}
	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

// Append stores a new template version for the organization.
func (s *Store) Append(orgID string, tpl model.FunnelTemplate) error {
	if _, ok := Validate(tpl, tpl.EffectiveFrom); !ok {
		return fmt.Errorf("template %q/%q is not valid", tpl.ID, tpl.Version)
	}

	payload, err := json.Marshal(tpl)
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`INSERT INTO funnel_templates
		(org_id, template_id, version, effective_from, payload, created_at)
		VALUES (?,?,?,?,?,?)`,
		orgID, tpl.ID, tpl.Version, tpl.EffectiveFrom.Unix(), string(payload), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

// ActiveTemplate returns the organization's template with the latest
// effective date not after asOf. Lookup failures, missing rows, and malformed
// payloads all resolve to the built-in default.
func (s *Store) ActiveTemplate(orgID string, asOf time.Time) model.FunnelTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT payload FROM funnel_templates
		WHERE org_id = ? AND effective_from <= ?
		ORDER BY effective_from DESC, id DESC LIMIT 1`,
		orgID, asOf.Unix(),
	)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if err != sql.ErrNoRows {
			log.Printf("[WARN] template lookup for %s failed: %v, using default", orgID, err)
		}
		return Default()
	}

	var raw model.FunnelTemplate
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		log.Printf("[WARN] malformed template payload for %s: %v, using default", orgID, err)
		return Default()
	}

	tpl, ok := Validate(raw, asOf)
	if !ok {
		log.Printf("[WARN] stored template for %s rejected by validation, using default", orgID)
	}
	return tpl
}

func (s *Store) Close() error {
	log.Println("[INFO] closing template store")
	return s.db.Close()
}
