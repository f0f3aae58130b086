package debug

import (
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"

	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/event"
	"github.com/siana-blue/poufalouf/parameter"
	"github.com/siana-blue/poufalouf/status"
)

// EventRecord is one dispatched world event as kept in the history
type EventRecord struct {
	Tick    int64  `json:"tick"`
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Feed is the hand-off between the tick goroutine and spectators
// Observe and HandleEvent run on the tick goroutine; every other method is safe from any goroutine
type Feed struct {
	mu     deadlock.RWMutex
	reg    *status.Registry
	log    logrus.FieldLogger
	every  int64
	latest *Snapshot

	subs    map[int]chan []byte
	nextSub int
	dropped uint64

	// Ring of recent events, head is the next write slot
	events []EventRecord
	head   int
	filled bool
}

// NewFeed creates a feed publishing every parameter.SnapshotEvery ticks; reg may be nil
func NewFeed(reg *status.Registry, log logrus.FieldLogger) *Feed {
	return &Feed{
		reg:    reg,
		log:    log,
		every:  parameter.SnapshotEvery,
		subs:   make(map[int]chan []byte),
		events: make([]EventRecord, parameter.RecentEvents),
	}
}

// Observe is an after-tick hook: it captures and publishes on the first tick and every N ticks
func (f *Feed) Observe(w *engine.World) {
	f.mu.RLock()
	first := f.latest == nil
	f.mu.RUnlock()
	if !first && w.Tick()%f.every != 0 {
		return
	}
	if err := f.Publish(Capture(w, f.reg)); err != nil {
		f.log.WithError(err).Warn("debug snapshot not published")
	}
}

// Publish stores s as the latest snapshot and fans it out to subscribers
// A subscriber whose buffer is full misses the frame
func (f *Feed) Publish(s *Snapshot) error {
	frame, err := s.Encode()
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest = s
	for id, ch := range f.subs {
		select {
		case ch <- frame:
		default:
			f.dropped++
			f.log.WithFields(logrus.Fields{"subscriber": id, "tick": s.Tick}).Debug("debug frame dropped")
		}
	}
	return nil
}

// Latest returns the most recent snapshot, nil before the first publish
// The snapshot is shared and must not be modified
func (f *Feed) Latest() *Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.latest
}

// Subscribe registers a frame channel; cancel unregisters and closes it
func (f *Feed) Subscribe() (<-chan []byte, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextSub
	f.nextSub++
	ch := make(chan []byte, parameter.SubscriberBuffer)
	f.subs[id] = ch

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if c, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Subscribers returns the number of live subscriptions
func (f *Feed) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}

// Dropped returns the number of frames skipped for slow subscribers
func (f *Feed) Dropped() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dropped
}

func (f *Feed) EventTypes() []event.EventType {
	return event.AllTypes()
}

// HandleEvent appends ev to the history
func (f *Feed) HandleEvent(_ *engine.World, ev event.GameEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[f.head] = EventRecord{Tick: ev.Tick, Type: ev.Type.String(), Payload: ev.Payload}
	f.head = (f.head + 1) % len(f.events)
	if f.head == 0 {
		f.filled = true
	}
}

// Recent returns the event history, oldest first
func (f *Feed) Recent() []EventRecord {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.filled {
		return append([]EventRecord(nil), f.events[:f.head]...)
	}
	out := make([]EventRecord, 0, len(f.events))
	out = append(out, f.events[f.head:]...)
	return append(out, f.events[:f.head]...)
}
