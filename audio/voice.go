// Package audio synthesizes the car's sound from simulation telemetry:
// a continuous engine voice pitched by RPM plus short one-shot effects
// for gear shifts and banked scores.
package audio

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/driftworks/driftline/parameter"
)

// Frame is the per-tick telemetry the engine voice renders. The game
// loop publishes one atomically after each simulation tick; the speaker
// goroutine reads the latest without locking.
type Frame struct {
	RPMPercent    float64 // 0 idle .. 1 limiter
	Throttle      float64
	LimiterActive bool
	BogIntensity  float64
	SkidIntensity float64 // Loudest tire's smoke intensity
}

// engineVoice is an endless beep.Streamer. Pitch, volume, and the
// limiter gate all come from the most recent Frame; phase carries over
// between Stream calls so pitch changes never click.
type engineVoice struct {
	frame *atomic.Pointer[Frame]
	rate  beep.SampleRate

	phase     float64
	gatePhase float64
}

func newEngineVoice(frame *atomic.Pointer[Frame], rate beep.SampleRate) *engineVoice {
	return &engineVoice{frame: frame, rate: rate}
}

func (v *engineVoice) Stream(samples [][2]float64) (n int, ok bool) {
	f := v.frame.Load()
	if f == nil {
		f = &Frame{}
	}

	freq := parameter.EngineToneBaseHz * (0.5 + f.RPMPercent)
	freq *= 1.0 - parameter.BogPitchDrop*f.BogIntensity
	phaseInc := freq / float64(v.rate)
	gateInc := parameter.LimiterGateHz / float64(v.rate)

	volume := parameter.EngineVolumeIdle + parameter.EngineVolumeGain*f.Throttle

	for i := range samples {
		sine := math.Sin(2 * math.Pi * v.phase)
		saw := 2.0 * (v.phase - 0.5)
		val := sine*(1-parameter.EngineSawMix) + saw*parameter.EngineSawMix
		val *= volume

		// Fuel cut: chop the voice at the gate frequency
		if f.LimiterActive && v.gatePhase >= 0.5 {
			val = 0
		}

		if f.SkidIntensity > 0 {
			val += (rand.Float64()*2 - 1) * f.SkidIntensity * parameter.SkidNoiseGain
		}

		samples[i][0] = val
		samples[i][1] = val

		v.phase += phaseInc
		v.phase -= math.Floor(v.phase)
		v.gatePhase += gateInc
		v.gatePhase -= math.Floor(v.gatePhase)
	}
	return len(samples), true
}

func (v *engineVoice) Err() error { return nil }

// oscillator is a finite single-wave streamer for one-shot effects.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	square   bool
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, square bool, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		square:   square,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		if o.square {
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		} else {
			val = math.Sin(2 * math.Pi * o.phase)
		}

		// Linear fade-out keeps the blip click-free
		remaining := float64(o.duration-o.position) / float64(o.duration)
		val *= remaining

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }
