package store

import (
	"context"
	"database/sql"
	"encoding/json"
	errs "errors"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/everyride/marchmagic/internal/engine"
	"github.com/everyride/marchmagic/internal/util"
)

var ErrNoChange = errs.New("no change")

// State document keys. Each key holds one JSON document in app_state.
const (
	keyActiveRun = "active_run"
	keyHistory   = "history"
)

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
	log  *zap.Logger
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) Gorm() *gorm.DB { return d.gorm }

// Open connects to Postgres per config.
func Open(ctx context.Context, cfg util.Config, log *zap.Logger) (*DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("missing DSN")
	}
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(10)
	sdb.SetMaxIdleConns(5)
	if err := sdb.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "ping")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DB{gorm: gdb, sql: sdb, log: log}, nil
}

// StateRepo persists the active run and the run history as whole JSON
// documents keyed by name. The event log inside each run document is the
// source of truth; the bracket travels with it so loads need no replay.
type StateRepo struct {
	db *DB
}

func NewStateRepo(db *DB) *StateRepo { return &StateRepo{db: db} }

func (s *StateRepo) putDoc(ctx context.Context, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrapf(err, "marshal %s", key)
	}
	err = s.db.gorm.WithContext(ctx).Exec(`
		INSERT INTO app_state(key, doc, updated_at)
		VALUES (?, ?, now())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		key, raw,
	).Error
	return errors.Wrapf(err, "upsert %s", key)
}

func (s *StateRepo) getDoc(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	row := s.db.gorm.WithContext(ctx).Raw(
		`SELECT doc FROM app_state WHERE key = ?`, key,
	).Row()
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "load %s", key)
	}
	return raw, nil
}

func (s *StateRepo) deleteDoc(ctx context.Context, key string) error {
	err := s.db.gorm.WithContext(ctx).Exec(
		`DELETE FROM app_state WHERE key = ?`, key,
	).Error
	return errors.Wrapf(err, "delete %s", key)
}

// LoadActiveRun returns the persisted in-progress run, or nil when there is
// none. A corrupt document is dropped with a warning rather than blocking
// startup.
func (s *StateRepo) LoadActiveRun(ctx context.Context) (*engine.Run, error) {
	raw, err := s.getDoc(ctx, keyActiveRun)
	if err != nil || raw == nil {
		return nil, err
	}
	var run engine.Run
	if err := json.Unmarshal(raw, &run); err != nil {
		s.db.log.Warn("discarding corrupt active run document", zap.Error(err))
		return nil, nil
	}
	if run.ID == "" || run.Bracket == nil {
		s.db.log.Warn("discarding incomplete active run document")
		return nil, nil
	}
	return &run, nil
}

// SaveActiveRun persists the run after every decision, undo, or settings
// change.
func (s *StateRepo) SaveActiveRun(ctx context.Context, run *engine.Run) error {
	if run == nil {
		return s.deleteDoc(ctx, keyActiveRun)
	}
	return s.putDoc(ctx, keyActiveRun, run)
}

// ClearActiveRun removes the in-progress document, typically after the run
// is archived into history.
func (s *StateRepo) ClearActiveRun(ctx context.Context) error {
	return s.deleteDoc(ctx, keyActiveRun)
}

// LoadHistory returns all archived runs. A corrupt document resets history
// to empty with a warning; nil entries are filtered.
func (s *StateRepo) LoadHistory(ctx context.Context) ([]*engine.Run, error) {
	raw, err := s.getDoc(ctx, keyHistory)
	if err != nil || raw == nil {
		return nil, err
	}
	var runs []*engine.Run
	if err := json.Unmarshal(raw, &runs); err != nil {
		s.db.log.Warn("discarding corrupt history document", zap.Error(err))
		return nil, nil
	}
	kept := runs[:0]
	for _, r := range runs {
		if r != nil && r.ID != "" {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

// SaveHistory overwrites the archive document with the normalized list.
func (s *StateRepo) SaveHistory(ctx context.Context, runs []*engine.Run) error {
	if runs == nil {
		runs = []*engine.Run{}
	}
	return s.putDoc(ctx, keyHistory, runs)
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}
