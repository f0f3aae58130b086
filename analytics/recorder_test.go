package analytics

import (
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/event"
	"github.com/siana-blue/poufalouf/object"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRecorderWritesEventsPerTick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	rec, err := Open(path, 42, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.RunID())

	w, sim := engine.NewTestWorld(8, 6)
	sim.RegisterEventHandler(rec)
	sim.OnAfterTick(rec.Flush)

	hero, err := w.Spawn(object.NewCharacter(64, 64, nil))
	require.NoError(t, err)
	require.True(t, w.Damage(hero, 5, core.NoEntity))
	require.True(t, w.Damage(hero, 3, core.NoEntity))
	sim.OnTick(0)

	counts, err := rec.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["damage"])
	assert.NotContains(t, counts, "spawned")

	total, err := rec.Damage(hero)
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)

	require.NoError(t, w.Remove(hero))
	require.NoError(t, rec.Close())
	require.NoError(t, rec.Close())

	_, err = rec.Counts()
	assert.ErrorIs(t, err, ErrClosed)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var ticks int64
	var ended sql.NullString
	require.NoError(t, db.QueryRow(`SELECT ticks, ended_at FROM runs WHERE id = 1`).Scan(&ticks, &ended))
	assert.Equal(t, int64(1), ticks)
	assert.True(t, ended.Valid)

	// The removal outside a tick was still queued when the recorder closed
	var removed int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM events WHERE type = 'removed'`).Scan(&removed))
	assert.Zero(t, removed)
}

func TestRecorderSeparatesRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	first, err := Open(path, 1, quietLogger())
	require.NoError(t, err)
	first.HandleEvent(nil, event.GameEvent{Type: event.EventHeal, Tick: 3, Payload: &event.AmountPayload{
		Target: 4, Source: 9, Kind: object.KindCharacter, Amount: 10,
	}})
	require.NoError(t, first.Close())

	second, err := Open(path, 2, quietLogger())
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, int64(2), second.RunID())

	counts, err := second.Counts()
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestRecorderMapsSentinelsToNull(t *testing.T) {
	rec, err := Open(filepath.Join(t.TempDir(), "runs.db"), 1, quietLogger())
	require.NoError(t, err)
	defer rec.Close()

	rec.HandleEvent(nil, event.GameEvent{Type: event.EventProjectileImpact, Tick: 1, Payload: &event.ImpactPayload{
		Projectile: 7, Shooter: 2, Target: core.WorldEdge,
	}})
	require.NoError(t, rec.flush())

	var other sql.NullInt64
	var entity int64
	require.NoError(t, rec.db.QueryRow(`SELECT entity, other FROM events WHERE type = 'impact'`).Scan(&entity, &other))
	assert.Equal(t, int64(7), entity)
	assert.False(t, other.Valid)
}
