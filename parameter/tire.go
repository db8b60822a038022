package parameter

// Tire geometry and pressure
const (
	TireRadius      = 0.33 // meters
	OptimalPressure = 32.0 // PSI
	MinPressure     = 20.0
	MaxPressure     = 40.0
)

// Grip
const (
	BaseTireGrip = 1.0

	// Final grip is clamped to (GripFloor, 1]; it never reaches zero so
	// dependent divisions stay safe
	TireGripFloor = 0.05

	// Grip loss per degree of slip angle beyond SlipAngleDrift
	TireGripFalloff = 0.3

	SlipAnglePeakDeg  = 8.0   // Max lateral grip
	SlipAngleDriftDeg = 15.0  // Sliding starts
	SlipRatioSpin     = 0.15  // Wheelspin flag threshold
	SlipRatioLock     = -0.25 // Lockup flag threshold
)

// Temperature (°C)
const (
	TireTempOptimal = 90.0
	TireTempMin     = 20.0
	TireTempMax     = 150.0
	TireTempAmbient = 25.0
	TireTempStart   = 40.0  // Cold tires at spawn

	TireHeatRate = 50.0 // Heat per unit of combined slip per second
	TireCoolRate = 0.02 // Fraction of delta-to-ambient per second
)

// Wear
const (
	TireWearRate          = 0.0001
	TireWearSlipThreshold = 0.2
	TireWearMaxGripLoss   = 0.4
)

// Pacejka magic formula (simplified)
const (
	PacejkaB = 10.0 // Stiffness
	PacejkaC = 1.9  // Shape
	PacejkaE = 0.97 // Curvature

	// Combined slip beyond this radius shrinks both force channels
	FrictionCircleLimit = 1.5
	FrictionCircleFloor = 0.5
)

// Slip ratio model: torque-integrated wheel inertia with coast-sync
const (
	WheelInertia = 1.2  // kg·m²
	MaxSlipSpeed = 25.0 // rad/s of wheelspin at full power

	// Drive force beyond this starts wheelspin, scaled over the range
	WheelspinForceMin   = 500.0
	WheelspinForceScale = 3000.0
	WheelspinFactorMax  = 1.5

	// Brake force beyond this starts lockup; higher threshold and gentler
	// scale than wheelspin so brakes bite before they lock
	LockupForceMin   = 1500.0
	LockupForceScale = 6000.0
	LockupFactorMax  = 0.7
	LockupSeverity   = 0.5

	// Slip velocity chases its force-derived target at a rate driven by
	// wheel torque over inertia, within these bounds (rad/s²)
	SlipChaseRateMin = 20.0
	SlipChaseRateMax = 400.0

	// Coast-sync: at a crawl with no meaningful drive force the wheel
	// re-syncs toward rest instead of holding residual slip
	CoastSyncSpeed      = 0.5  // m/s
	CoastSyncDriveForce = 50.0
	CoastSyncRate       = 3.0  // rad/s²

	// Flag guards: slip alone is not enough, force must be present
	SpinDriveForceMin = 100.0
	LockBrakeForceMin = 500.0
)

// Smoke and marks
const (
	SmokeMinSpeed      = 2.0  // m/s, no smoke while crawling
	SmokeDriftAngleDeg = 15.0 // Rear slip angle for drift smoke
	SmokeUndersteerDeg = 12.0 // Front slip angle for understeer smoke
	SmokeMarkThreshold = 0.1
)
