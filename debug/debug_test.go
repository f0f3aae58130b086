package debug

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/event"
	"github.com/siana-blue/poufalouf/object"
	"github.com/siana-blue/poufalouf/parameter"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fixture struct {
	world *engine.World
	sim   *engine.Simulation
	feed  *Feed
	hero  core.Entity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	w, sim := engine.NewTestWorld(8, 6)
	_, err := w.Spawn(object.NewWall(0, 0))
	require.NoError(t, err)
	hero, err := w.Spawn(object.NewCharacter(64, 64, nil))
	require.NoError(t, err)

	feed := NewFeed(sim.Status(), quietLogger())
	sim.RegisterEventHandler(feed)
	sim.OnAfterTick(feed.Observe)
	return &fixture{world: w, sim: sim, feed: feed, hero: hero}
}

func (f *fixture) run(n int) {
	for i := 0; i < n; i++ {
		f.sim.OnTick(int64(f.world.Tick()+1) * 40)
	}
}

func TestCaptureCopiesWorld(t *testing.T) {
	f := newFixture(t)
	f.run(1)

	snap := Capture(f.world, f.sim.Status())
	assert.Equal(t, int64(1), snap.Tick)
	assert.Equal(t, 8, snap.Width)
	assert.Equal(t, 6, snap.Height)
	assert.Equal(t, parameter.CellSize, snap.CellSize)
	assert.Len(t, snap.Terrain, 48)
	require.Len(t, snap.Entities, 2)
	assert.Contains(t, snap.Metrics, "engine.ticks")

	hero, ok := snap.Entity(uint64(f.hero))
	require.True(t, ok)
	assert.Equal(t, object.KindCharacter, hero.Kind)
	assert.Equal(t, parameter.CharacterMaxHP, hero.HP)
	assert.NotEmpty(t, hero.Cells)

	// The copy does not follow later changes
	hero.Cells[0] = core.Point{X: -1, Y: -1}
	b, _ := f.world.Body(f.hero)
	assert.NotEqual(t, core.Point{X: -1, Y: -1}, b.Cells[0])
}

func TestSnapshotFrameDecodes(t *testing.T) {
	f := newFixture(t)
	f.run(1)

	frame, err := Capture(f.world, nil).Encode()
	require.NoError(t, err)
	got, err := DecodeSnapshot(frame)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Tick)
	assert.Len(t, got.Entities, 2)

	_, err = DecodeSnapshot([]byte{0xc1})
	assert.Error(t, err)
}

func TestFeedPublishesPeriodically(t *testing.T) {
	f := newFixture(t)
	frames, cancel := f.feed.Subscribe()

	f.run(2 * parameter.SnapshotEvery)
	// First tick, then every SnapshotEvery ticks
	assert.Len(t, frames, 3)
	assert.Equal(t, int64(2*parameter.SnapshotEvery), f.feed.Latest().Tick)

	cancel()
	assert.Equal(t, 0, f.feed.Subscribers())
	cancel()
}

func TestFeedDropsForSlowSubscriber(t *testing.T) {
	f := newFixture(t)
	_, cancel := f.feed.Subscribe()
	defer cancel()

	snap := Capture(f.world, nil)
	for i := 0; i < parameter.SubscriberBuffer+4; i++ {
		require.NoError(t, f.feed.Publish(snap))
	}
	assert.Equal(t, uint64(4), f.feed.Dropped())
}

func TestFeedKeepsRecentEvents(t *testing.T) {
	feed := NewFeed(nil, quietLogger())
	assert.Empty(t, feed.Recent())

	total := parameter.RecentEvents + 6
	for i := 0; i < total; i++ {
		feed.HandleEvent(nil, event.GameEvent{Type: event.EventDamage, Tick: int64(i)})
	}
	recent := feed.Recent()
	require.Len(t, recent, parameter.RecentEvents)
	assert.Equal(t, int64(6), recent[0].Tick)
	assert.Equal(t, int64(total-1), recent[len(recent)-1].Tick)
	assert.Equal(t, "damage", recent[0].Type)
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestServerEndpoints(t *testing.T) {
	f := newFixture(t)
	srv := NewServer("127.0.0.1:0", f.feed, quietLogger())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, ts.URL+"/debug/world", nil))

	f.run(1)

	var world Snapshot
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/debug/world", &world))
	assert.Equal(t, int64(1), world.Tick)

	var chars []EntityView
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/debug/entities?kind=character", &chars))
	require.Len(t, chars, 1)
	assert.Equal(t, uint64(f.hero), chars[0].ID)

	var one EntityView
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/debug/entities/"+strconv.FormatUint(uint64(f.hero), 10), &one))
	assert.Equal(t, object.KindCharacter, one.Kind)

	assert.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/debug/entities/999", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/debug/entities/abc", nil))

	var metrics struct {
		Tick    int64          `json:"tick"`
		Metrics map[string]any `json:"metrics"`
	}
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/debug/metrics", &metrics))
	assert.Equal(t, float64(1), metrics.Metrics["engine.ticks"])

	var events []EventRecord
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/debug/events", &events))
	assert.NotEmpty(t, events)
	assert.Equal(t, "spawned", events[0].Type)
}

func TestServerStreamsFrames(t *testing.T) {
	f := newFixture(t)
	f.run(1)

	srv := NewServer("127.0.0.1:0", f.feed, quietLogger())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/debug/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	kind, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, kind)
	snap, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Tick)

	// The subscription is registered before the first frame is written
	require.Equal(t, 1, f.feed.Subscribers())
	f.run(parameter.SnapshotEvery)

	_, data, err = conn.ReadMessage()
	require.NoError(t, err)
	snap, err = DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, int64(parameter.SnapshotEvery), snap.Tick)
}

func TestServerStartAndShutdown(t *testing.T) {
	srv := NewServer("127.0.0.1:0", NewFeed(nil, quietLogger()), quietLogger())
	assert.Empty(t, srv.Addr())
	require.NoError(t, srv.Start())

	resp, err := http.Get("http://" + srv.Addr() + "/debug/events")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Shutdown(t.Context()))
}
