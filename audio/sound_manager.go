package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/event"
	"github.com/siana-blue/poufalouf/object"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager plays a synthesized cue for the world events worth hearing
// Without an initialized speaker every operation is a no-op apart from bookkeeping, so the game
// runs unchanged on machines without audio
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	cues        [cueCount]floatBuffer
	requested   [cueCount]int
	lastTick    [cueCount]int64
	initialized bool
	log         logrus.FieldLogger
}

// NewSoundManager creates a new sound manager
func NewSoundManager(log logrus.FieldLogger) *SoundManager {
	sm := &SoundManager{
		mixer: &beep.Mixer{},
		cues:  renderCues(uint64(time.Now().UnixNano())),
		log:   log,
	}
	for i := range sm.lastTick {
		sm.lastTick[i] = -1
	}
	return sm
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the audio system
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Play queues cue on the mixer
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.play(c)
}

func (sm *SoundManager) play(c Cue) {
	if c < 0 || c >= cueCount {
		return
	}
	sm.requested[c]++
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(&bufferStreamer{buf: sm.cues[c]})
	speaker.Unlock()
}

// Requested returns how many times cue was asked for, played or not
func (sm *SoundManager) Requested(c Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if c < 0 || c >= cueCount {
		return 0
	}
	return sm.requested[c]
}

func (sm *SoundManager) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventProjectileFired,
		event.EventProjectileImpact,
		event.EventActivated,
		event.EventDamage,
		event.EventHeal,
		event.EventRemoved,
	}
}

// HandleEvent maps an event to its cue, at most one of each cue per tick
func (sm *SoundManager) HandleEvent(w *engine.World, ev event.GameEvent) {
	c, ok := cueFor(ev)
	if !ok {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.lastTick[c] == ev.Tick {
		return
	}
	sm.lastTick[c] = ev.Tick
	sm.play(c)
	if sm.log != nil {
		sm.log.WithFields(logrus.Fields{"cue": c, "tick": ev.Tick}).Trace("cue")
	}
}

func cueFor(ev event.GameEvent) (Cue, bool) {
	switch p := ev.Payload.(type) {
	case *event.FiredPayload:
		return CueFire, true
	case *event.ImpactPayload:
		return CueImpact, true
	case *event.ActivationPayload:
		switch p.Kind {
		case object.KindMine:
			return CueExplode, true
		case object.KindChair:
			return CueSeat, true
		}
	case *event.AmountPayload:
		switch {
		case ev.Type == event.EventHeal:
			return CueHeal, true
		case p.Kind == object.KindCharacter || p.Kind == object.KindArcher:
			return CueHurt, true
		}
	case *event.RemovedPayload:
		if p.Reason == event.RemovalTerrain {
			return CueLost, true
		}
	}
	return 0, false
}
