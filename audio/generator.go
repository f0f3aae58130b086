package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/siana-blue/poufalouf/vmath"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// oscillator generates raw waveform samples, the frequency sweeping linearly from freq to endFreq
func oscillator(waveType int, freq, endFreq float64, samples int, rng *vmath.FastRand) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0

	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		case waveNoise:
			buf[i] = float64(rng.Intn(2001))/1000 - 1
		}

		f := freq + (endFreq-freq)*float64(i)/float64(samples)
		phase += f / float64(sampleRate)
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// sineTone renders samples of a pure tone from the beep generator, silence if freq is out of range
func sineTone(freq float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return buf
	}
	chunk := make([][2]float64, 512)
	for pos := 0; pos < samples; {
		n, ok := tone.Stream(chunk[:min(len(chunk), samples-pos)])
		for i := 0; i < n; i++ {
			buf[pos+i] = chunk[i][0]
		}
		pos += n
		if !ok || n == 0 {
			break
		}
	}
	return buf
}

// applyEnvelope applies attack/release envelope in place
func applyEnvelope(buf floatBuffer, attackSec, releaseSec float64) {
	total := len(buf)
	attackSamples := int(attackSec * float64(sampleRate))
	releaseSamples := int(releaseSec * float64(sampleRate))

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// mixFloatBuffers adds b into a (in place), extending a if needed
func mixFloatBuffers(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

// scale multiplies every sample by gain, clamping to [-1, 1]
func (b floatBuffer) scale(gain float64) floatBuffer {
	for i, s := range b {
		b[i] = math.Max(-1, math.Min(1, s*gain))
	}
	return b
}

// bufferStreamer plays a rendered buffer once on both channels
type bufferStreamer struct {
	buf floatBuffer
	pos int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.buf) {
		samples[n][0] = s.buf[s.pos]
		samples[n][1] = s.buf[s.pos]
		n++
		s.pos++
	}
	return n, true
}

func (s *bufferStreamer) Err() error { return nil }

var _ beep.Streamer = (*bufferStreamer)(nil)
