package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/siana-blue/poufalouf/parameter"
)

// ClockScheduler drives a Simulation on a fixed tick with drift correction
// The simulation and every after-tick hook run on the scheduler goroutine only
type ClockScheduler struct {
	sim      *Simulation
	clock    Clock
	interval time.Duration

	nextTickDeadline time.Time

	tickCount atomic.Uint64
	paused    atomic.Bool
	running   atomic.Bool

	onPaused func(*World)
}

// NewClockScheduler creates a scheduler ticking sim every interval, parameter.DefaultTickInterval when zero
func NewClockScheduler(sim *Simulation, clock Clock, interval time.Duration) *ClockScheduler {
	if interval <= 0 {
		interval = parameter.DefaultTickInterval
	}
	if clock == nil {
		clock = NewTimeProvider()
	}
	return &ClockScheduler{
		sim:      sim,
		clock:    clock,
		interval: interval,
	}
}

// Pause stops ticking without leaving the loop; elapsed time is not fed to entities on resume
func (cs *ClockScheduler) Pause() { cs.paused.Store(true) }

// Resume restarts ticking after Pause
func (cs *ClockScheduler) Resume() { cs.paused.Store(false) }

// TogglePause flips the pause state and returns the new one
func (cs *ClockScheduler) TogglePause() bool {
	for {
		old := cs.paused.Load()
		if cs.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// OnPaused sets a hook run on the scheduler goroutine at every interval spent paused
// Must be called before Run
func (cs *ClockScheduler) OnPaused(fn func(*World)) { cs.onPaused = fn }

// Paused reports the pause state
func (cs *ClockScheduler) Paused() bool { return cs.paused.Load() }

// TickCount returns the ticks run by this scheduler
func (cs *ClockScheduler) TickCount() uint64 { return cs.tickCount.Load() }

// Run ticks the simulation until ctx is cancelled
// The simulation clock is the scheduler's accumulated tick time, so pauses and overruns do not
// turn into a burst of elapsed milliseconds
func (cs *ClockScheduler) Run(ctx context.Context) error {
	if !cs.running.CompareAndSwap(false, true) {
		return nil
	}
	defer cs.running.Store(false)

	cs.nextTickDeadline = cs.clock.Now().Add(cs.interval)

	timer := time.NewTimer(cs.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		now := cs.clock.Now()
		if !cs.paused.Load() {
			cs.Step(1)
		} else if cs.onPaused != nil {
			cs.onPaused(cs.sim.World())
		}

		cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.interval)
		maxBehind := cs.interval * 2
		if now.Sub(cs.nextTickDeadline) > maxBehind {
			cs.nextTickDeadline = now.Add(cs.interval)
		}

		sleep := cs.nextTickDeadline.Sub(cs.clock.Now())
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}

// Step runs n ticks back to back without waiting, advancing the simulation clock by the interval
// Intended for headless runs and tests
func (cs *ClockScheduler) Step(n int) {
	for i := 0; i < n; i++ {
		cs.sim.OnTick(int64(cs.tickCount.Load()) * cs.interval.Milliseconds())
		cs.tickCount.Add(1)
	}
}
