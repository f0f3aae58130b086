package audio

import (
	"time"

	"github.com/siana-blue/poufalouf/vmath"
)

// Cue is a short synthesized sound bound to a world event
type Cue int

const (
	CueFire     Cue = iota // Volley leaves a shooter
	CueImpact              // Projectile strikes
	CueExplode             // Mine goes off
	CueHeal                // Heart consumed
	CueSeat                // Chair takes an occupant
	CueHurt                // Character damaged
	CueLost                // Mover fell into liquid or void
	cueCount
)

var cueNames = [cueCount]string{"fire", "impact", "explode", "heal", "seat", "hurt", "lost"}

func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

func samplesFor(d time.Duration) int {
	return sampleRate.N(d)
}

// renderCues synthesizes every cue once; playback replays the cached buffers
func renderCues(seed uint64) [cueCount]floatBuffer {
	rng := vmath.NewFastRand(seed)
	var cues [cueCount]floatBuffer

	fire := oscillator(waveSaw, 880, 440, samplesFor(80*time.Millisecond), rng)
	applyEnvelope(fire, 0.005, 0.04)
	cues[CueFire] = fire.scale(0.25)

	impact := oscillator(waveNoise, 0, 0, samplesFor(120*time.Millisecond), rng)
	impact = mixFloatBuffers(impact, oscillator(waveSine, 160, 90, samplesFor(120*time.Millisecond), rng), 0.6)
	applyEnvelope(impact, 0.002, 0.1)
	cues[CueImpact] = impact.scale(0.3)

	boom := oscillator(waveNoise, 0, 0, samplesFor(350*time.Millisecond), rng)
	boom = mixFloatBuffers(boom, oscillator(waveSine, 80, 40, samplesFor(350*time.Millisecond), rng), 0.8)
	applyEnvelope(boom, 0.002, 0.3)
	cues[CueExplode] = boom.scale(0.4)

	heal := sineTone(660, samplesFor(90*time.Millisecond))
	heal = append(heal, sineTone(990, samplesFor(140*time.Millisecond))...)
	applyEnvelope(heal, 0.01, 0.08)
	cues[CueHeal] = heal.scale(0.25)

	seat := oscillator(waveSquare, 220, 330, samplesFor(100*time.Millisecond), rng)
	applyEnvelope(seat, 0.01, 0.05)
	cues[CueSeat] = seat.scale(0.15)

	hurt := oscillator(waveSquare, 120, 100, samplesFor(150*time.Millisecond), rng)
	applyEnvelope(hurt, 0.005, 0.1)
	cues[CueHurt] = hurt.scale(0.2)

	lost := oscillator(waveSine, 400, 60, samplesFor(500*time.Millisecond), rng)
	applyEnvelope(lost, 0.01, 0.2)
	cues[CueLost] = lost.scale(0.3)

	return cues
}
