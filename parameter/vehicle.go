package parameter

// Chassis dimensions (meters)
const (
	CarLength  = 4.5
	CarWidth   = 2.0
	Wheelbase  = 2.7 // Distance between axles
	TrackWidth = 1.8 // Distance between left/right wheels
)

// Mass and environment
const (
	CarMass    = 1400.0 // kg
	Gravity    = 9.81   // m/s²
	AirDensity = 1.225  // kg/m³
)

// Drag and friction
const (
	DragCoefficient = 0.25
	FrontalArea     = 2.2  // m²

	// LinearDrag gives a consistent deceleration feel across all speeds (N per m/s)
	LinearDrag = 200.0

	RollingResistance = 0.08
	GroundFriction    = 0.15

	// Lateral scrub friction is much higher than rolling friction; tires
	// grip far better sideways when the driver is off throttle
	LateralFrictionCoastCoef    = 4.0
	LateralFrictionThrottleCoef = 1.0
)

// Steering
const (
	MaxSteeringAngleDeg = 35.0
	SteeringSpeed       = 3.5  // rad/s toward target while steering
	SteeringReturnSpeed = 5.0  // rad/s toward center
	CountersteerAssist  = 0.3  // 0-1, automatic opposite lock while drifting

	// Steering authority fades with speed, down to 50% at SteeringFadeSpeed
	SteeringFadeSpeed = 80.0
)

// Brakes
const (
	MaxBrakeForce  = 25000.0 // N, split across all four tires
	HandbrakeForce = 15000.0 // N, rear tires only, bypasses ABS
	BrakeBiasFront = 0.6

	// ABS-like pulse: above this speed and brake input, incipient lockup
	// drops brake force to ABSForceFactor
	ABSSlipThreshold = -0.2
	ABSMinSpeed      = 5.0
	ABSMinBrake      = 0.3
	ABSForceFactor   = 0.3
)

// Engine braking while coasting in gear
const (
	EngineBrakingBase      = 800.0 // N
	EngineBrakingPerRatio  = 600.0 // N per unit of gear ratio
	EngineBrakingLowSpeed  = 8.0   // m/s, below this the multiplier applies
	EngineBrakingLowFactor = 1.5
)

// Integration guards
const (
	// Below this speed with no throttle, velocity is forced to zero so the
	// car comes to an actual rest instead of creeping
	StopSpeed    = 0.3
	StopThrottle = 0.1

	// Tire forces are longitudinal-only below this speed so steering a
	// stationary car adds no lateral push
	MinSpeedForLateralForce = 0.5

	// Largest dt the integrator is expected to tolerate without diverging
	MaxTickDelta = 0.25
)

// Angular dynamics
const (
	// Per-tick angular velocity damping by drive state
	AngularDampingDrift = 0.985 // Lightest, the drift must sustain itself
	AngularDampingPower = 0.97  // On throttle, not drifting
	AngularDampingCoast = 0.90  // Heaviest, car straightens out when coasting

	// Geometric (Ackermann) steering blend fades out by this speed
	AckermannFadeSpeed = 15.0
	AckermannMinSpeed  = 0.5
)
