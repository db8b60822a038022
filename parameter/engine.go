package parameter

// Engine specs
const (
	EngineHorsepower = 350.0
	EnginePeakTorque = 400.0 // Nm

	IdleRPM       = 800.0
	RedlineRPM    = 8000.0
	MaxRPM        = 8500.0
	RevLimiterRPM = 8200.0
)

// Transmission. Index 0 is neutral; reverse is handled separately.
var GearRatios = [...]float64{
	0.0,  // Neutral
	3.5,  // 1st
	2.2,  // 2nd
	1.5,  // 3rd
	1.1,  // 4th
	0.85, // 5th
	0.7,  // 6th
}

const (
	FinalDriveRatio  = 3.7
	ReverseGearRatio = -3.2
)

// Free-rev behavior with clutch out or in neutral
const (
	// RPM per second toward the throttle target; fast because the engine
	// is not connected to the wheels
	FreeRevRate = 15000.0

	// Throttle maps to this fraction of the idle→redline band
	FreeRevTargetFraction = 0.8
)

// Clutch-slip stall guard: wheel-derived RPM below idle with throttle on
// holds RPM at idle plus this much of the band instead of stalling
const ClutchSlipThrottleBand = 0.3

// Clutch dips on every shift or kick and re-engages at this rate (per s)
const ClutchEngageRate = 4.0

// Clutch engagement above this counts as mechanically linked to the wheels
const ClutchLinkThreshold = 0.5

// Rev limiter fuel cut and needle bounce (spring-damper oscillator)
const (
	RevLimiterCutTime = 0.15 // s of zero torque per limiter hit

	BounceKickVelocity = -8.0  // Initial needle velocity on limiter hit
	BounceSpring       = 150.0 // Spring stiffness toward zero offset
	BounceDamping      = 8.0
	BounceMaxCount     = 3 // Zero crossings before forced settle
	BounceMinOffset    = -0.15
	BounceMaxOffset    = 0.05
	BounceSettleOffset = 0.005 // |offset| under this and |vel| under
	BounceSettleVel    = 0.1   // this → oscillator snaps to rest
	BounceArmThreshold = 0.05  // New kick only once prior bounce settled
)

// Bogging: lugging the engine in too tall a gear near idle
const (
	BogRPMWindow   = 500.0 // RPM above idle where bogging can occur
	BogThrottleMin = 0.3
	BogMinGear     = 4   // Tall gears only
	BogMaxPenalty  = 0.8 // Up to 80% torque loss
	BogRampRate    = 3.0 // Intensity units per second
)

// Torque curve: rises 60%→100% to the midpoint of the idle→redline band,
// falls to 75% at redline
const (
	TorqueCurveFloor   = 0.6
	TorqueCurveRedline = 0.75
)
