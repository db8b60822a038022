package parameter

// Audio synthesis
const (
	AudioSampleRate = 48000

	// Engine voice: a sine fundamental with a saw layer, pitched by RPM.
	// Frequency spans base*0.5 (idle) to base*1.5 (limiter)
	EngineToneBaseHz = 110.0
	EngineSawMix     = 0.35 // Saw layer fraction of the engine voice
	EngineVolumeIdle = 0.18
	EngineVolumeGain = 0.30 // Extra volume at full throttle

	// Limiter fuel cut is audible as a hard amplitude gate
	LimiterGateHz = 30.0

	// Bogging drags the perceived pitch down
	BogPitchDrop = 0.2

	// Tire noise layer scales with smoke intensity
	SkidNoiseGain = 0.3

	ShiftBlipHz        = 220.0
	ShiftBlipDuration  = 0.06 // seconds
	ScoreChimeHz       = 880.0
	ScoreChimeDuration = 0.25
)
