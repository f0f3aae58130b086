// Package analytics keeps an append-only per-run log of world events in SQLite
package analytics

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/event"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	seed INTEGER NOT NULL,
	started_at TEXT NOT NULL,
	ended_at TEXT,
	ticks INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id),
	tick INTEGER NOT NULL,
	type TEXT NOT NULL,
	entity INTEGER,
	kind TEXT NOT NULL DEFAULT '',
	other INTEGER,
	amount INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_events_run_type ON events(run_id, type);
`

// ErrClosed is returned by operations on a closed recorder
var ErrClosed = errors.New("analytics recorder closed")

type row struct {
	tick   int64
	typ    string
	entity sql.NullInt64
	kind   string
	other  sql.NullInt64
	amount int
}

// Recorder buffers world events during a tick and writes them in one transaction after it
// HandleEvent and Flush run on the tick goroutine; Close must follow the last tick
type Recorder struct {
	db      *sql.DB
	log     logrus.FieldLogger
	runID   int64
	pending []row
	last    int64
	closed  bool
}

// Open creates or reuses the database at path and starts a new run for seed
func Open(path string, seed uint64, log logrus.FieldLogger) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases coherent and serializes writes
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("analytics %s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("analytics migrate: %w", err)
	}

	res, err := db.Exec(`INSERT INTO runs (seed, started_at) VALUES (?, ?)`,
		int64(seed), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("analytics start run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("analytics run id: %w", err)
	}

	r := &Recorder{db: db, log: log.WithField("run", runID), runID: runID}
	r.log.WithField("path", path).Info("analytics recording")
	return r, nil
}

// RunID returns the id of the run being recorded
func (r *Recorder) RunID() int64 { return r.runID }

func (r *Recorder) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventRemoved,
		event.EventActivated,
		event.EventProjectileFired,
		event.EventProjectileImpact,
		event.EventDamage,
		event.EventHeal,
		event.EventEntitySkipped,
	}
}

// HandleEvent buffers ev until the next Flush
func (r *Recorder) HandleEvent(_ *engine.World, ev event.GameEvent) {
	if r.closed {
		return
	}
	rw := row{tick: ev.Tick, typ: ev.Type.String()}
	switch p := ev.Payload.(type) {
	case *event.RemovedPayload:
		rw.entity, rw.kind = entityID(p.Entity), p.Kind+":"+p.Reason.String()
	case *event.ActivationPayload:
		rw.entity, rw.kind, rw.other = entityID(p.Entity), p.Kind, entityID(p.Activator)
	case *event.FiredPayload:
		rw.entity, rw.kind, rw.amount = entityID(p.Shooter), p.Kind, p.Count
	case *event.ImpactPayload:
		rw.entity, rw.other = entityID(p.Projectile), entityID(p.Target)
		rw.kind = "projectile"
	case *event.AmountPayload:
		rw.entity, rw.kind, rw.other, rw.amount = entityID(p.Target), p.Kind, entityID(p.Source), p.Amount
	case *event.SkippedPayload:
		rw.entity, rw.kind = entityID(p.Entity), p.Kind
	}
	r.pending = append(r.pending, rw)
}

// entityID maps the sentinels to NULL
func entityID(e core.Entity) sql.NullInt64 {
	if !e.IsEntity() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(e), Valid: true}
}

// Flush is an after-tick hook writing the buffered events
// A failed write is logged and the batch dropped so the simulation never stalls on storage
func (r *Recorder) Flush(w *engine.World) {
	r.last = w.Tick()
	if err := r.flush(); err != nil {
		r.log.WithError(err).WithField("tick", r.last).Warn("analytics batch dropped")
	}
}

func (r *Recorder) flush() error {
	if r.closed {
		return ErrClosed
	}
	if len(r.pending) == 0 {
		return nil
	}
	batch := r.pending
	r.pending = r.pending[:0]

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO events (run_id, tick, type, entity, kind, other, amount) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, rw := range batch {
		if _, err := stmt.Exec(r.runID, rw.tick, rw.typ, rw.entity, rw.kind, rw.other, rw.amount); err != nil {
			return fmt.Errorf("insert %s: %w", rw.typ, err)
		}
	}
	return tx.Commit()
}

// Counts returns the number of recorded events of this run by type name
func (r *Recorder) Counts() (map[string]int64, error) {
	if r.closed {
		return nil, ErrClosed
	}
	rows, err := r.db.Query(`SELECT type, COUNT(*) FROM events WHERE run_id = ? GROUP BY type`, r.runID)
	if err != nil {
		return nil, fmt.Errorf("analytics counts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var typ string
		var n int64
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("analytics counts: %w", err)
		}
		out[typ] = n
	}
	return out, rows.Err()
}

// Damage returns the total damage dealt to entity during this run
func (r *Recorder) Damage(entity core.Entity) (int64, error) {
	if r.closed {
		return 0, ErrClosed
	}
	var total int64
	err := r.db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM events WHERE run_id = ? AND type = ? AND entity = ?`,
		r.runID, event.EventDamage.String(), int64(entity)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("analytics damage: %w", err)
	}
	return total, nil
}

// Close writes what is still buffered, ends the run and closes the database
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	flushErr := r.flush()
	_, endErr := r.db.Exec(`UPDATE runs SET ended_at = ?, ticks = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), r.last, r.runID)
	r.closed = true
	closeErr := r.db.Close()
	if err := errors.Join(flushErr, endErr, closeErr); err != nil {
		return fmt.Errorf("analytics close: %w", err)
	}
	r.log.WithField("ticks", r.last).Info("analytics run closed")
	return nil
}
