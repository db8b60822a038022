package parameter

// Drift classification (velocity heading vs body heading)
const (
	DriftAngleThresholdDeg = 15.0
	DriftMinSpeed          = 8.0
	DriftMinThrottle       = 0.2
	DriftClassifyMinSpeed  = 3.0  // Below this the drift state fully clears
)

// Oversteer / understeer detection from axle slip angles
const (
	OversteerSlipMarginDeg = 4.0  // Rear must exceed front by this much
	OversteerMinSpeed      = 5.0
	OversteerGripThreshold = 0.75 // Rear grip multiplier must be below
	UndersteerFrontSlipDeg = 12.0
	UndersteerGripMax      = 0.85 // Front grip multiplier must be below
)

// Weight transfer
const (
	WeightFrontMin = 0.3
	WeightFrontMax = 0.7

	// Fraction of the front/rear split moved per unit of throttle-brake
	// asymmetry
	LongWeightShift = 0.1

	// Lift-off accumulator: rapid throttle release above speed builds
	// forward weight shift (lift-off oversteer), decays otherwise
	LiftOffReleaseRate = 2.0  // Throttle drop per second that counts as a lift
	LiftOffMinSpeed    = 10.0
	LiftOffBuildRate   = 3.0
	LiftOffDecayRate   = 1.5
	LiftOffWeightShift = 0.08
	LiftOffRearGrip    = 0.7  // Rear grip multiplier while accumulator is high

	// Inner/outer normal force split while cornering
	LateralWeightShift = 0.15
)

// Drift-initiation gestures
const (
	// Feint (Scandinavian flick): steering rate beyond this threshold at
	// speed arms a short rear grip reduction
	FeintSteerRate = 4.0 // Input units per second
	FeintMinSpeed  = 5.0
	FeintDuration  = 0.5
	FeintRearGrip  = 0.6

	// Clutch kick: explicit trigger, gated by speed/throttle/cooldown
	ClutchKickDuration    = 0.3
	ClutchKickCooldown    = 1.0
	ClutchKickMinSpeed    = 3.0
	ClutchKickMinThrottle = 0.3
	ClutchKickDriveBoost  = 1.8
	ClutchKickRearGrip    = 0.5
	ClutchKickClutchDip   = 0.3
)

// Remaining grip rules (multiplicative, folded in order)
const (
	HandbrakeRearGrip = 0.3

	PowerOverThrottleMin = 0.7
	PowerOverSlipRatio   = 0.2  // Rear slip ratio that marks power oversteer
	PowerOverRearGrip    = 0.55

	BrakingDriftBrakeMin = 0.5
	BrakingDriftSteerMin = 0.5
	BrakingDriftMinSpeed = 8.0
	BrakingDriftRearGrip = 0.7

	// An established slide keeps the rear loose while power stays on, so
	// grip does not snap back the instant the initiating gesture ends
	DriftSustainRearGrip = 0.65

	// Folded multipliers are clamped to this band; grip never reaches zero
	GripMultiplierMin = 0.1
	GripMultiplierMax = 1.0
)

// Corrective torque terms
const (
	// Oversteer torque per degree of rear/front slip differential beyond
	// the margin
	OversteerTorqueGain = 220.0
	OversteerTorqueCap  = 9000.0

	// Angular acceleration multiplier when front slip dominates
	UndersteerDamping = 0.6

	// Counter-steer stabilization when input opposes the slide
	CountersteerGain = 0.8

	// Throttle modulation keeps the car rotating while on power with low
	// rear grip
	ThrottleModGain    = 1200.0
	ThrottleModMinGrip = 0.7    // Rear grip multiplier must be below
)
