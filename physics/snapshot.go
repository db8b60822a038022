package physics

import "github.com/driftworks/driftline/vmath"

// TireState is an immutable per-tire view.
type TireState struct {
	Position          TirePosition
	Pressure          float64
	Temperature       float64
	Wear              float64
	Grip              float64
	SlipRatio         float64
	SlipAngle         float64
	AngularVelocity   float64
	LongitudinalForce float64
	LateralForce      float64
	NormalForce       float64
	IsSlipping        bool
	IsLocked          bool
	IsSpinning        bool
	SmokeIntensity    float64
	LeavingMarks      bool
	DriftGrip         float64
}

// EngineState is an immutable engine view.
type EngineState struct {
	RPM              float64
	Throttle         float64
	Gear             int
	Clutch           float64
	Torque           float64
	Power            float64
	RevLimiterActive bool
	RevLimiterBounce float64
	IsBogging        bool
	BogIntensity     float64
	RPMPercentage    float64
}

// Snapshot is the consistent whole-vehicle view published atomically at
// the end of every tick (and every reset). The renderer, HUD, audio, and
// scoring read snapshots; they never touch live simulation state, so a
// reader can never observe a half-updated tick.
type Snapshot struct {
	Position        vmath.Vec2
	Rotation        float64
	Velocity        vmath.Vec2
	AngularVelocity float64

	Speed    float64
	SpeedMph float64
	LateralG float64

	SteeringAngle float64
	Throttle      float64
	Brake         float64
	Steering      float64
	Handbrake     bool

	FrontWeight float64
	RearWeight  float64

	IsDrifting      bool
	IsOversteering  bool
	IsUndersteering bool
	DriftAngle      float64
	DriftTime       float64

	FrontSlipAngle float64
	RearSlipAngle  float64
	FrontGripMult  float64
	RearGripMult   float64

	FeintActive      bool
	ClutchKickActive bool

	Engine EngineState
	Tires  [TireCount]TireState
}

// publish builds and swaps in the post-tick snapshot.
func (v *Vehicle) publish() {
	snap := &Snapshot{
		Position:         v.position,
		Rotation:         v.rotation,
		Velocity:         v.velocity,
		AngularVelocity:  v.angularVelocity,
		Speed:            v.speed,
		SpeedMph:         v.speedMph,
		LateralG:         v.lateralG,
		SteeringAngle:    v.steeringAngle,
		Throttle:         v.throttleInput,
		Brake:            v.brakeInput,
		Steering:         v.steeringInput,
		Handbrake:        v.handbrake,
		FrontWeight:      v.frontWeight,
		RearWeight:       v.rearWeight,
		IsDrifting:       v.isDrifting,
		IsOversteering:   v.isOversteering,
		IsUndersteering:  v.isUndersteering,
		DriftAngle:       v.driftAngle,
		DriftTime:        v.driftTime,
		FrontSlipAngle:   v.frontSlipAngle,
		RearSlipAngle:    v.rearSlipAngle,
		FrontGripMult:    v.frontGripMult,
		RearGripMult:     v.rearGripMult,
		FeintActive:      v.feintActive,
		ClutchKickActive: v.clutchKickActive,
		Engine:           v.engine.State(),
	}
	for i, t := range v.tires {
		snap.Tires[i] = t.State()
	}
	v.snapshot.Store(snap)
}

// Snapshot returns the most recently published consistent view. Safe to
// call from any goroutine.
func (v *Vehicle) Snapshot() *Snapshot {
	return v.snapshot.Load()
}
