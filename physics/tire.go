package physics

import (
	"math"

	"github.com/driftworks/driftline/parameter"
	"github.com/driftworks/driftline/vmath"
)

// Tire models one wheel station: slip, temperature, grip, and the forces
// it feeds back into the chassis. The vehicle owns its four tires and is
// the only caller of Update and the setters.
type Tire struct {
	pos TirePosition

	// Physical condition
	pressure    float64 // PSI
	temperature float64 // °C
	wear        float64 // 0 new .. 1 worn

	// Per-tick state
	grip            float64
	slipRatio       float64
	slipAngle       float64 // degrees
	angularVelocity float64 // rad/s
	slipVelocity    float64 // rad/s of wheel over/under ground speed

	longitudinalForce float64
	lateralForce      float64
	normalForce       float64

	isSlipping bool
	isLocked   bool
	isSpinning bool

	smokeIntensity float64
	leavingMarks   bool

	// Upgrade modifiers
	gripModifier       float64
	durabilityModifier float64

	// Set by the vehicle's grip rules each tick; low values on the rear
	// axle are what let the tail swing out
	driftGripMultiplier float64
}

func NewTire(pos TirePosition) *Tire {
	return &Tire{
		pos:                 pos,
		pressure:            parameter.OptimalPressure,
		temperature:         parameter.TireTempStart,
		grip:                parameter.BaseTireGrip,
		gripModifier:        1.0,
		durabilityModifier:  1.0,
		driftGripMultiplier: 1.0,
	}
}

// Update advances the tire by one fixed timestep. The caller supplies
// vehicle-level quantities already clamped to their valid ranges.
func (t *Tire) Update(dt, forwardSpeed, driveForce, brakeForce, steerAngle, lateralVelocity float64) {
	t.updateTemperature(dt)
	t.updateGrip()
	t.updateSlipRatio(dt, forwardSpeed, driveForce, brakeForce)
	t.updateSlipAngle(forwardSpeed, lateralVelocity, steerAngle)
	t.updateForces()
	t.updateEffects(dt, forwardSpeed)
}

// Heat builds with combined slip and bleeds toward ambient.
func (t *Tire) updateTemperature(dt float64) {
	heat := (math.Abs(t.slipRatio) + math.Abs(t.slipAngle)/90) * parameter.TireHeatRate
	cooling := (t.temperature - parameter.TireTempAmbient) * parameter.TireCoolRate

	t.temperature += (heat - cooling) * dt
	t.temperature = vmath.Clamp(t.temperature, parameter.TireTempMin, parameter.TireTempMax)
}

// Grip is the product of bell-shaped temperature and pressure penalties,
// linear wear loss, the upgrade modifier, and the drift multiplier.
func (t *Tire) updateGrip() {
	baseGrip := parameter.BaseTireGrip * t.gripModifier

	tempDiff := math.Abs(t.temperature - parameter.TireTempOptimal)
	tempFactor := vmath.Clamp(1.0-(tempDiff/100)*0.3, 0.5, 1.0)

	pressureDiff := math.Abs(t.pressure - parameter.OptimalPressure)
	pressureFactor := vmath.Clamp(1.0-(pressureDiff/20)*0.2, 0.7, 1.0)

	effectiveWear := t.wear / math.Max(t.durabilityModifier, 0.1)
	wearFactor := vmath.Clamp(1.0-effectiveWear*parameter.TireWearMaxGripLoss, 0.3, 1.0)

	grip := baseGrip * tempFactor * pressureFactor * wearFactor * t.driftGripMultiplier
	t.grip = vmath.Clamp(grip, parameter.TireGripFloor, 1.0)
}

// Torque-integrated slip model with coast-sync: the wheel's angular
// velocity is ground speed plus a slip term that chases a force-derived
// target at a rate set by wheel torque over wheel inertia.
func (t *Tire) updateSlipRatio(dt, forwardSpeed, driveForce, brakeForce float64) {
	groundAngVel := forwardSpeed / parameter.TireRadius

	target := 0.0
	if driveForce > parameter.WheelspinForceMin {
		spin := vmath.Clamp((driveForce-parameter.WheelspinForceMin)/parameter.WheelspinForceScale,
			0, parameter.WheelspinFactorMax)
		target = spin * parameter.MaxSlipSpeed
	} else if brakeForce > parameter.LockupForceMin {
		lock := vmath.Clamp((brakeForce-parameter.LockupForceMin)/parameter.LockupForceScale,
			0, parameter.LockupFactorMax)
		target = -lock * parameter.MaxSlipSpeed * parameter.LockupSeverity
	}

	chaseRate := vmath.Clamp((driveForce+brakeForce)*parameter.TireRadius/parameter.WheelInertia,
		parameter.SlipChaseRateMin, parameter.SlipChaseRateMax)
	t.slipVelocity = vmath.Approach(t.slipVelocity, target, chaseRate*dt)
	t.angularVelocity = groundAngVel + t.slipVelocity

	// Coast-sync: no residual spin at a crawl
	if math.Abs(forwardSpeed) < parameter.CoastSyncSpeed && math.Abs(driveForce) < parameter.CoastSyncDriveForce {
		t.angularVelocity = vmath.Approach(t.angularVelocity, 0, parameter.CoastSyncRate*dt)
		t.slipVelocity = t.angularVelocity - groundAngVel
	}

	wheelSpeed := t.angularVelocity * parameter.TireRadius
	maxSpeed := math.Max(math.Abs(wheelSpeed), math.Abs(forwardSpeed))
	if maxSpeed > 0.5 {
		t.slipRatio = (wheelSpeed - forwardSpeed) / maxSpeed
	} else {
		t.slipRatio = 0
	}
	t.slipRatio = vmath.Clamp(t.slipRatio, -1, 1)

	// Slip alone is not enough for the flags; a matching force must be
	// present or numerical residue would raise false positives
	t.isSpinning = t.slipRatio > parameter.SlipRatioSpin && driveForce > parameter.SpinDriveForceMin
	t.isLocked = t.slipRatio < parameter.SlipRatioLock && brakeForce > parameter.LockBrakeForceMin
	t.isSlipping = t.isSpinning || t.isLocked
}

func (t *Tire) updateSlipAngle(forwardSpeed, lateralVelocity, steerAngle float64) {
	if math.Abs(forwardSpeed) > 0.1 {
		velocityAngle := math.Atan2(lateralVelocity, math.Abs(forwardSpeed))
		t.slipAngle = vmath.RadToDeg(steerAngle - velocityAngle)
	} else {
		// Direct steering fraction keeps low-speed response alive
		t.slipAngle = vmath.RadToDeg(steerAngle) * 0.5
	}
	t.slipAngle = vmath.Clamp(t.slipAngle, -90, 90)
}

// pacejka evaluates the simplified magic formula F = D·sin(C·atan(B·x − E·(B·x − atan(B·x))))
func pacejka(x, peak float64) float64 {
	bx := parameter.PacejkaB * x
	return peak * math.Sin(parameter.PacejkaC*math.Atan(bx-parameter.PacejkaE*(bx-math.Atan(bx))))
}

func (t *Tire) updateForces() {
	// Normal force not yet pushed this tick means no contact load
	if t.normalForce <= 0 {
		t.longitudinalForce = 0
		t.lateralForce = 0
		return
	}

	peak := t.grip * t.normalForce

	t.longitudinalForce = pacejka(t.slipRatio*math.Pi, peak)
	rawLateral := pacejka(vmath.DegToRad(t.slipAngle), peak)

	// Rear tires under an active slide shed far more lateral force than
	// the grip multiplier alone would; this is the swing-out, not scrub
	lateralReduction := 1.0
	if t.pos.IsRear() && t.driftGripMultiplier < 0.8 {
		lateralReduction = 0.3 + 0.7*(t.driftGripMultiplier/0.8)
	}
	t.lateralForce = rawLateral * lateralReduction

	// Friction circle: combined slip past the limit shrinks both channels
	totalSlip := math.Sqrt(t.slipRatio*t.slipRatio + math.Pow(t.slipAngle/90, 2))
	if totalSlip > parameter.FrictionCircleLimit {
		reduction := math.Max(parameter.FrictionCircleLimit/totalSlip, parameter.FrictionCircleFloor)
		t.longitudinalForce *= reduction
		t.lateralForce *= reduction
	}

	// Past the drift slip angle, lateral force falls off while most of the
	// longitudinal channel survives so a sliding car can still accelerate
	if math.Abs(t.slipAngle) > parameter.SlipAngleDriftDeg {
		falloff := 1.0 - parameter.TireGripFalloff*(math.Abs(t.slipAngle)-parameter.SlipAngleDriftDeg)/60
		falloff = vmath.Clamp(falloff, 0.4, 1.0)
		t.lateralForce *= falloff
		t.longitudinalForce *= 0.7 + 0.3*falloff
	}
}

// Smoke and marks are asymmetric: rears smoke on wheelspin/lockup or a
// deep drift angle, fronts only on understeer or front lockup.
func (t *Tire) updateEffects(dt, forwardSpeed float64) {
	totalSlip := math.Abs(t.slipRatio) + math.Abs(t.slipAngle)/45
	wheelSpeed := math.Abs(t.angularVelocity * parameter.TireRadius)
	moving := math.Abs(forwardSpeed) > parameter.SmokeMinSpeed

	t.smokeIntensity = 0

	if moving {
		if t.pos.IsRear() {
			switch {
			case t.isSpinning || t.isLocked:
				speedScale := vmath.Clamp(wheelSpeed/20.0, 0.3, 2.0)
				t.smokeIntensity = vmath.Clamp(math.Abs(t.slipRatio)*speedScale, 0, 1)
			case math.Abs(t.slipAngle) > parameter.SmokeDriftAngleDeg && math.Abs(forwardSpeed) > 5:
				driftIntensity := (math.Abs(t.slipAngle) - parameter.SmokeDriftAngleDeg) / 45.0
				speedScale := vmath.Clamp(math.Abs(forwardSpeed)/15.0, 0.3, 1.5)
				t.smokeIntensity = vmath.Clamp(driftIntensity*speedScale, 0, 0.8)
			}
		} else {
			switch {
			case math.Abs(t.slipAngle) > parameter.SmokeUndersteerDeg && math.Abs(forwardSpeed) > 5:
				understeer := (math.Abs(t.slipAngle) - parameter.SmokeUndersteerDeg) / 40.0
				speedScale := vmath.Clamp(math.Abs(forwardSpeed)/15.0, 0.3, 1.5)
				t.smokeIntensity = vmath.Clamp(understeer*speedScale, 0, 0.7)
			case t.isLocked && math.Abs(forwardSpeed) > 3:
				speedScale := vmath.Clamp(math.Abs(forwardSpeed)/10.0, 0.3, 1.5)
				t.smokeIntensity = vmath.Clamp(math.Abs(t.slipRatio)*speedScale, 0, 0.8)
			}
		}
	}

	t.leavingMarks = t.smokeIntensity > parameter.SmokeMarkThreshold

	if totalSlip > parameter.TireWearSlipThreshold {
		t.wear = vmath.Clamp(t.wear+totalSlip*parameter.TireWearRate, 0, 1)
	}
}

// SetNormalForce is pushed by the vehicle's weight transfer every tick.
func (t *Tire) SetNormalForce(force float64) {
	t.normalForce = force
}

func (t *Tire) SetPressure(psi float64) {
	t.pressure = vmath.Clamp(psi, parameter.MinPressure, parameter.MaxPressure)
}

func (t *Tire) SetGripModifier(mod float64)       { t.gripModifier = mod }
func (t *Tire) SetDurabilityModifier(mod float64) { t.durabilityModifier = mod }

func (t *Tire) ResetWear() { t.wear = 0 }

// setDriftGripMultiplier is driven by the vehicle's grip rules only.
func (t *Tire) setDriftGripMultiplier(mult float64) {
	t.driftGripMultiplier = vmath.Clamp(mult, parameter.GripMultiplierMin, parameter.GripMultiplierMax)
}

func (t *Tire) Position() TirePosition   { return t.pos }
func (t *Tire) Grip() float64            { return t.grip }
func (t *Tire) SlipRatio() float64       { return t.slipRatio }
func (t *Tire) SlipAngle() float64       { return t.slipAngle }
func (t *Tire) AngularVelocity() float64 { return t.angularVelocity }
func (t *Tire) IsSpinning() bool         { return t.isSpinning }

// State snapshots the tire for cross-thread readers.
func (t *Tire) State() TireState {
	return TireState{
		Position:          t.pos,
		Pressure:          t.pressure,
		Temperature:       t.temperature,
		Wear:              t.wear,
		Grip:              t.grip,
		SlipRatio:         t.slipRatio,
		SlipAngle:         t.slipAngle,
		AngularVelocity:   t.angularVelocity,
		LongitudinalForce: t.longitudinalForce,
		LateralForce:      t.lateralForce,
		NormalForce:       t.normalForce,
		IsSlipping:        t.isSlipping,
		IsLocked:          t.isLocked,
		IsSpinning:        t.isSpinning,
		SmokeIntensity:    t.smokeIntensity,
		LeavingMarks:      t.leavingMarks,
		DriftGrip:         t.driftGripMultiplier,
	}
}
