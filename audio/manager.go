package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/driftworks/driftline/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager owns the speaker, the mixer, and the engine voice.
// Initialization failure degrades to silence rather than erroring the
// game out: a terminal without audio is a normal environment.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	engineCtrl  *beep.Ctrl
	initialized bool
	muted       bool

	frame atomic.Pointer[Frame]
}

func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the engine voice. Safe to
// call more than once.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	sm.engineCtrl = &beep.Ctrl{Streamer: newEngineVoice(&sm.frame, sampleRate)}
	sm.mixer.Add(sm.engineCtrl)

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything. The speaker itself has no close; an
// empty mixer is the clean end state.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.engineCtrl != nil {
		sm.engineCtrl.Paused = true
	}
	sm.mixer.Clear()
	sm.initialized = false
}

// SetFrame publishes the latest telemetry for the engine voice. Called
// once per simulation tick from the game loop; lock-free on the speaker
// side.
func (sm *SoundManager) SetFrame(f Frame) {
	sm.frame.Store(&f)
}

// PlayShift fires the gear-change blip.
func (sm *SoundManager) PlayShift() {
	sm.playOneShot(newOscillator(parameter.ShiftBlipHz,
		time.Duration(parameter.ShiftBlipDuration*float64(time.Second)), true, sampleRate))
}

// PlayScore fires the banked-drift chime: fundamental plus one octave.
func (sm *SoundManager) PlayScore() {
	d := time.Duration(parameter.ScoreChimeDuration * float64(time.Second))
	sm.playOneShot(newOscillator(parameter.ScoreChimeHz, d, false, sampleRate))
	sm.playOneShot(newOscillator(parameter.ScoreChimeHz*2, d/2, false, sampleRate))
}

func (sm *SoundManager) playOneShot(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// ToggleMute flips the mute state and returns the new state.
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted
	if sm.engineCtrl != nil {
		speaker.Lock()
		sm.engineCtrl.Paused = sm.muted
		speaker.Unlock()
	}
	return sm.muted
}

func (sm *SoundManager) IsMuted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}
