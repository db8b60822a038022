package physics

import (
	"math"
	"sync/atomic"

	"github.com/driftworks/driftline/parameter"
	"github.com/driftworks/driftline/vmath"
)

// Vehicle is the rigid-body integrator that owns one Engine and four
// Tires and advances the whole car by one fixed timestep per Update.
// It is single-writer: exactly one goroutine calls Update and the
// setters; any goroutine may read the published Snapshot.
type Vehicle struct {
	position        vmath.Vec2
	rotation        float64 // radians, normalized to (-pi, pi]
	velocity        vmath.Vec2
	angularVelocity float64

	engine *Engine
	tires  [TireCount]*Tire

	// Driver inputs, clamped on set
	throttleInput float64
	brakeInput    float64
	steeringInput float64
	handbrake     bool

	steeringAngle     float64 // radians, smoothed
	prevSteeringInput float64

	// Drift-initiation gesture state
	feintActive        bool
	feintTimer         float64
	clutchKickActive   bool
	clutchKickTimer    float64
	clutchKickCooldown float64
	liftOffAccum       float64
	prevThrottle       float64

	// Weight distribution and per-axle grip for this tick
	frontWeight   float64
	rearWeight    float64
	frontGripMult float64
	rearGripMult  float64

	// Axle slip angles in degrees, magnitudes in [0, 90]
	frontSlipAngle float64
	rearSlipAngle  float64

	// Drift classification
	isDrifting      bool
	isOversteering  bool
	isUndersteering bool
	driftAngle      float64 // degrees, signed
	driftTime       float64

	// Derived each tick
	speed    float64
	speedMph float64
	lateralG float64

	upgrades Upgrades

	snapshot atomic.Pointer[Snapshot]
}

// NewVehicle spawns a car at rest facing +X at the given position.
func NewVehicle(startX, startY float64) *Vehicle {
	v := &Vehicle{
		position:    vmath.Vec2{X: startX, Y: startY},
		engine:      NewEngine(),
		frontWeight: 0.5,
		rearWeight:  0.5,
		upgrades:    StockUpgrades(),
	}
	for i := range v.tires {
		v.tires[i] = NewTire(TirePosition(i))
	}
	v.publish()
	return v
}

// Reset replaces the whole state bundle at a new position. The previous
// snapshot stays readable until the fresh one is published, so readers
// never see a torn reset.
func (v *Vehicle) Reset(startX, startY float64) {
	upgrades := v.upgrades

	v.position = vmath.Vec2{X: startX, Y: startY}
	v.rotation = 0
	v.velocity = vmath.Vec2{}
	v.angularVelocity = 0

	v.engine = NewEngine()
	for i := range v.tires {
		v.tires[i] = NewTire(TirePosition(i))
	}

	v.throttleInput = 0
	v.brakeInput = 0
	v.steeringInput = 0
	v.handbrake = false
	v.steeringAngle = 0
	v.prevSteeringInput = 0

	v.feintActive = false
	v.feintTimer = 0
	v.clutchKickActive = false
	v.clutchKickTimer = 0
	v.clutchKickCooldown = 0
	v.liftOffAccum = 0
	v.prevThrottle = 0

	v.frontWeight = 0.5
	v.rearWeight = 0.5
	v.frontGripMult = 1.0
	v.rearGripMult = 1.0
	v.frontSlipAngle = 0
	v.rearSlipAngle = 0

	v.isDrifting = false
	v.isOversteering = false
	v.isUndersteering = false
	v.driftAngle = 0
	v.driftTime = 0

	v.speed = 0
	v.speedMph = 0
	v.lateralG = 0

	v.ApplyUpgrades(upgrades)
	v.publish()
}

// Update advances the simulation by dt seconds. Stage order matters:
// each stage consumes the previous one's output.
func (v *Vehicle) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > parameter.MaxTickDelta {
		dt = parameter.MaxTickDelta
	}

	// 1-3: steering smoothing, gesture detection and decay
	v.updateSteering(dt)
	v.detectFeint(dt)
	v.decayGestures(dt)

	// 4: weight transfer, per-tire normal force, per-axle grip rules
	v.updateWeightTransfer(dt)
	v.applyGripRules()

	// 5: engine runs on the previous tick's rear wheel speed
	avgRearOmega := (v.tires[RearLeft].angularVelocity + v.tires[RearRight].angularVelocity) / 2
	v.engine.Update(dt, avgRearOmega)

	// 6: velocity in the body frame
	forward := vmath.FromAngle(v.rotation)
	right := forward.Perp()
	forwardSpeed := v.velocity.Dot(forward)
	lateralSpeed := v.velocity.Dot(right)

	// 7: axle slip angles
	v.updateAxleSlipAngles(forwardSpeed, lateralSpeed)

	// 8: tire updates and force/torque accumulation
	totalForce, totalTorque := v.updateTires(dt, forwardSpeed, lateralSpeed)

	// 9: drag, friction, engine braking
	totalForce = totalForce.Add(v.resistiveForces(dt, right, lateralSpeed))

	// 10: linear integration
	mass := v.effectiveMass()
	v.velocity = v.velocity.Add(totalForce.Div(mass).Scale(dt))
	if v.speed < parameter.StopSpeed && v.throttleInput < parameter.StopThrottle {
		v.velocity = vmath.Vec2{}
	}
	v.position = v.position.Add(v.velocity.Scale(dt))

	// 11-12: angular dynamics and rotation
	v.updateRotation(dt, totalTorque, forwardSpeed)

	// 13: derived values and drift classification
	v.speed = v.velocity.Magnitude()
	v.speedMph = v.speed * 2.237
	v.lateralG = math.Abs(lateralSpeed*v.angularVelocity) / parameter.Gravity
	v.updateDriftState(dt)

	v.publish()
}

// Steering chases a speed-reduced, counter-steer-assisted target at a
// rate-limited pace; centering is quicker than steering out.
func (v *Vehicle) updateSteering(dt float64) {
	maxAngle := vmath.DegToRad(parameter.MaxSteeringAngleDeg)
	target := v.steeringInput * maxAngle

	speedFactor := 1.0 - vmath.Clamp(v.speed/parameter.SteeringFadeSpeed, 0, 0.5)
	target *= speedFactor

	if v.isDrifting && parameter.CountersteerAssist > 0 {
		counter := -vmath.Sign(v.driftAngle) * vmath.DegToRad(math.Abs(v.driftAngle)*0.3)
		target += counter * parameter.CountersteerAssist
	}

	steerSpeed := parameter.SteeringSpeed * v.upgrades.Steering
	if math.Abs(v.steeringInput) < 0.1 {
		steerSpeed = parameter.SteeringReturnSpeed * v.upgrades.Steering
	}

	v.steeringAngle = vmath.Approach(v.steeringAngle, target, steerSpeed*dt)
}

// A steering reversal faster than the feint threshold at speed arms the
// flick: the rear unloads for a short window.
func (v *Vehicle) detectFeint(dt float64) {
	steerRate := (v.steeringInput - v.prevSteeringInput) / dt
	reversed := v.steeringInput*v.prevSteeringInput < 0

	if reversed && math.Abs(steerRate) > parameter.FeintSteerRate && v.speed > parameter.FeintMinSpeed {
		v.feintActive = true
		v.feintTimer = parameter.FeintDuration
	}
	v.prevSteeringInput = v.steeringInput

	if v.feintActive {
		v.feintTimer -= dt
		if v.feintTimer <= 0 {
			v.feintActive = false
		}
	}
}

func (v *Vehicle) decayGestures(dt float64) {
	if v.clutchKickCooldown > 0 {
		v.clutchKickCooldown -= dt
	}
	if v.clutchKickActive {
		v.clutchKickTimer -= dt
		if v.clutchKickTimer <= 0 {
			v.clutchKickActive = false
		}
	}
}

// TriggerClutchKick arms a drive-force shock to the rear axle. Requires
// motion and throttle, and rate-limits itself with a cooldown.
func (v *Vehicle) TriggerClutchKick() {
	if v.clutchKickCooldown > 0 ||
		v.speed < parameter.ClutchKickMinSpeed ||
		v.throttleInput < parameter.ClutchKickMinThrottle {
		return
	}
	v.clutchKickActive = true
	v.clutchKickTimer = parameter.ClutchKickDuration
	v.clutchKickCooldown = parameter.ClutchKickCooldown
	v.engine.SetClutch(parameter.ClutchKickClutchDip)
}

// Weight moves rearward on throttle and forward on braking or a rapid
// lift; the lift-off accumulator models snap oversteer on sudden
// throttle release at speed. Per-tire normal force also carries an
// inner/outer cornering split.
func (v *Vehicle) updateWeightTransfer(dt float64) {
	releaseRate := (v.prevThrottle - v.throttleInput) / dt
	if releaseRate > parameter.LiftOffReleaseRate && v.speed > parameter.LiftOffMinSpeed {
		v.liftOffAccum += parameter.LiftOffBuildRate * dt
	} else {
		v.liftOffAccum -= parameter.LiftOffDecayRate * dt
	}
	v.liftOffAccum = vmath.Clamp(v.liftOffAccum, 0, 1)
	v.prevThrottle = v.throttleInput

	shift := (v.throttleInput-v.brakeInput)*parameter.LongWeightShift -
		v.liftOffAccum*parameter.LiftOffWeightShift

	v.frontWeight = vmath.Clamp(0.5-shift, parameter.WeightFrontMin, parameter.WeightFrontMax)
	v.rearWeight = 1 - v.frontWeight

	totalWeight := v.effectiveMass() * parameter.Gravity
	frontAxle := totalWeight * v.frontWeight
	rearAxle := totalWeight * v.rearWeight

	// Cornering loads the outer pair; positive steering turns the nose
	// left (CCW), so the right side is outer
	latSplit := vmath.Clamp(v.lateralG*parameter.LateralWeightShift, 0, 0.25) * vmath.Sign(v.steeringAngle)

	v.tires[FrontLeft].SetNormalForce(frontAxle * (0.5 - latSplit))
	v.tires[FrontRight].SetNormalForce(frontAxle * (0.5 + latSplit))
	v.tires[RearLeft].SetNormalForce(rearAxle * (0.5 - latSplit))
	v.tires[RearRight].SetNormalForce(rearAxle * (0.5 + latSplit))
}

// Axle slip angles come from lateral velocity plus the rotation-induced
// term at half the wheelbase. Commanded steering stays out of the axle
// figures; the per-tire model owns steer-relative slip. When the body
// yaws away from the velocity vector the rotation term reinforces on
// the rear axle and cancels on the front, which is what arms the
// oversteer classification.
func (v *Vehicle) updateAxleSlipAngles(forwardSpeed, lateralSpeed float64) {
	if math.Abs(forwardSpeed) < parameter.MinSpeedForLateralForce {
		v.frontSlipAngle = 0
		v.rearSlipAngle = 0
		return
	}

	halfBase := parameter.Wheelbase / 2
	frontLat := lateralSpeed + v.angularVelocity*halfBase
	rearLat := lateralSpeed - v.angularVelocity*halfBase

	frontAngle := math.Atan2(frontLat, math.Abs(forwardSpeed))
	rearAngle := math.Atan2(rearLat, math.Abs(forwardSpeed))

	v.frontSlipAngle = vmath.Clamp(math.Abs(vmath.RadToDeg(frontAngle)), 0, 90)
	v.rearSlipAngle = vmath.Clamp(math.Abs(vmath.RadToDeg(rearAngle)), 0, 90)
}

func (v *Vehicle) updateTires(dt, forwardSpeed, lateralSpeed float64) (vmath.Vec2, float64) {
	var totalForce vmath.Vec2
	totalTorque := 0.0

	// RWD: engine force splits across the rear pair
	driveForce := v.engine.DriveForce() / 2
	if v.clutchKickActive {
		driveForce *= parameter.ClutchKickDriveBoost
	}

	for _, tire := range v.tires {
		offset := tire.pos.Offset()

		tireLateralVel := lateralSpeed + v.angularVelocity*offset.X

		tireSteer := 0.0
		if tire.pos.IsFront() {
			tireSteer = v.steeringAngle
		}

		brakeForce := v.tireBrakeForce(tire)

		tireDrive := 0.0
		if tire.pos.IsRear() {
			tireDrive = driveForce
		}

		tire.Update(dt, forwardSpeed, tireDrive, brakeForce, tireSteer, tireLateralVel)

		tireForward := vmath.FromAngle(v.rotation + tireSteer)
		tireRight := tireForward.Perp()

		// A stationary car gets no lateral push from turned wheels
		var tireForce vmath.Vec2
		if v.speed < parameter.MinSpeedForLateralForce {
			tireForce = tireForward.Scale(tire.longitudinalForce)
		} else {
			tireForce = tireForward.Scale(tire.longitudinalForce).
				Add(tireRight.Scale(-tire.lateralForce))
		}

		totalForce = totalForce.Add(tireForce)

		worldOffset := offset.Rotate(v.rotation)
		totalTorque += worldOffset.Cross(tireForce)
	}

	return totalForce, totalTorque
}

// Handbrake forces a fixed high rear-only brake and bypasses ABS;
// otherwise brake force follows bias and input with an ABS pulse that
// backs off when a tire shows incipient lockup.
func (v *Vehicle) tireBrakeForce(tire *Tire) float64 {
	if v.handbrake && tire.pos.IsRear() {
		return parameter.HandbrakeForce
	}

	bias := parameter.BrakeBiasFront
	if tire.pos.IsRear() {
		bias = 1 - parameter.BrakeBiasFront
	}
	force := v.brakeInput * parameter.MaxBrakeForce * bias / 2 * v.upgrades.Brake

	if tire.slipRatio < parameter.ABSSlipThreshold &&
		v.speed > parameter.ABSMinSpeed &&
		v.brakeInput > parameter.ABSMinBrake {
		force *= parameter.ABSForceFactor
	}
	return force
}

// resistiveForces sums aerodynamic drag, rolling and ground friction,
// engine braking, and lateral scrub. Every term is capped so that no
// resistive force can reverse the motion it opposes within one tick.
func (v *Vehicle) resistiveForces(dt float64, right vmath.Vec2, lateralSpeed float64) vmath.Vec2 {
	mass := v.effectiveMass()
	var result vmath.Vec2

	resist := 0.5*parameter.AirDensity*parameter.DragCoefficient*parameter.FrontalArea*v.speed*v.speed +
		parameter.LinearDrag*v.speed

	if v.speed > 0.1 {
		rolling := mass * parameter.Gravity * parameter.RollingResistance
		rolling *= 1.0 + v.speed*0.01
		resist += rolling
	}

	if v.speed > 0.1 && v.throttleInput < 0.1 {
		ground := mass * parameter.Gravity * parameter.GroundFriction
		if v.speed < 2.0 {
			// Static bite at walking pace so the car actually stops
			ground *= 2.0
		}
		resist += ground
	}

	if v.throttleInput < 0.1 && v.speed > 0.5 && !v.handbrake {
		gearRatio := math.Abs(v.engine.GearRatio())
		braking := parameter.EngineBrakingBase + gearRatio*parameter.EngineBrakingPerRatio
		if v.speed < parameter.EngineBrakingLowSpeed {
			braking *= parameter.EngineBrakingLowFactor
		}
		resist += braking
	}

	// Never enough to push the car backward in one tick
	resist = math.Min(resist, v.speed*mass/dt)
	result = result.Add(v.velocity.Normalize().Scale(-resist))

	if math.Abs(lateralSpeed) > 0.1 {
		coef := parameter.LateralFrictionThrottleCoef
		if v.throttleInput < 0.1 && !v.handbrake {
			coef = parameter.LateralFrictionCoastCoef
		}
		scrub := coef * mass * parameter.Gravity * 0.5
		scrub = math.Min(scrub, math.Abs(lateralSpeed)*mass*5)
		scrub = math.Min(scrub, math.Abs(lateralSpeed)*mass/dt)
		result = result.Add(right.Scale(-vmath.Sign(lateralSpeed) * scrub))
	}

	return result
}

// updateRotation turns net torque plus the drift-specific corrective
// terms into angular motion, blends in geometric steering at low speed,
// and keeps rotation normalized.
func (v *Vehicle) updateRotation(dt, totalTorque, forwardSpeed float64) {
	// Oversteer assist: the slip-angle differential beyond the margin
	// feeds torque in the direction the car is already rotating
	slipDiff := v.rearSlipAngle - v.frontSlipAngle
	if slipDiff > parameter.OversteerSlipMarginDeg && v.speed > parameter.OversteerMinSpeed {
		dir := vmath.Sign(v.angularVelocity)
		if dir == 0 {
			dir = vmath.Sign(v.steeringAngle)
		}
		extra := math.Min((slipDiff-parameter.OversteerSlipMarginDeg)*parameter.OversteerTorqueGain,
			parameter.OversteerTorqueCap)
		totalTorque += dir * extra
	}

	// Throttle modulation sustains rotation mid-drift on power
	if v.isDrifting && v.throttleInput > parameter.DriftMinThrottle &&
		v.rearGripMult < parameter.ThrottleModMinGrip {
		totalTorque += vmath.Sign(v.angularVelocity) * parameter.ThrottleModGain * v.throttleInput
	}

	// Rectangular plate approximation for yaw inertia
	inertia := v.effectiveMass() * parameter.CarLength * parameter.CarLength / 12
	angularAccel := totalTorque / inertia

	// Understeer: when the front washes out, rotation authority drops
	if v.frontSlipAngle > v.rearSlipAngle+parameter.OversteerSlipMarginDeg {
		angularAccel *= parameter.UndersteerDamping
	}

	v.angularVelocity += angularAccel * dt

	// Counter-steer stabilization: opposite lock bleeds rotation
	if v.isDrifting && v.steeringInput*v.driftAngle < 0 {
		bleed := vmath.Clamp(parameter.CountersteerGain*math.Abs(v.steeringInput)*
			v.upgrades.Handling*dt, 0, 0.9)
		v.angularVelocity *= 1 - bleed
	}

	switch {
	case v.isDrifting:
		v.angularVelocity *= parameter.AngularDampingDrift
	case v.throttleInput < 0.1:
		v.angularVelocity *= parameter.AngularDampingCoast
	default:
		v.angularVelocity *= parameter.AngularDampingPower
	}

	// Geometric steering keeps the nose responsive at low speed even
	// when tire grip is momentarily gone
	if math.Abs(forwardSpeed) > parameter.AckermannMinSpeed && math.Abs(v.steeringAngle) > 0.01 {
		blend := vmath.Clamp(1.0-v.speed/parameter.AckermannFadeSpeed, 0, 1)
		turnRadius := parameter.Wheelbase / math.Tan(math.Abs(v.steeringAngle)+0.001)
		geometric := forwardSpeed / turnRadius * vmath.Sign(v.steeringAngle)
		v.angularVelocity = v.angularVelocity*(1-blend) + geometric*blend
	}

	v.rotation += v.angularVelocity * dt
	v.rotation = vmath.NormalizeAngle(v.rotation)
}

// Drift state machine: oversteer arms on the axle slip differential with
// degraded rear grip; the scored drifting state needs the velocity
// heading itself to break away with throttle sustained. Oversteer and
// understeer are mutually exclusive by construction.
func (v *Vehicle) updateDriftState(dt float64) {
	if v.speed <= parameter.DriftClassifyMinSpeed {
		v.driftAngle = 0
		v.isDrifting = false
		v.isOversteering = false
		v.isUndersteering = false
		v.driftTime = 0
		return
	}

	velocityAngle := v.velocity.Angle()
	v.driftAngle = vmath.RadToDeg(vmath.NormalizeAngle(velocityAngle - v.rotation))

	slipDiff := v.rearSlipAngle - v.frontSlipAngle
	frontGrip := (v.tires[FrontLeft].grip + v.tires[FrontRight].grip) / 2

	v.isOversteering = slipDiff > parameter.OversteerSlipMarginDeg &&
		v.rearGripMult < parameter.OversteerGripThreshold &&
		v.speed > parameter.OversteerMinSpeed
	v.isUndersteering = !v.isOversteering &&
		v.frontSlipAngle > parameter.UndersteerFrontSlipDeg &&
		frontGrip < parameter.UndersteerGripMax &&
		v.rearGripMult >= parameter.OversteerGripThreshold

	wasDrifting := v.isDrifting
	v.isDrifting = math.Abs(v.driftAngle) > parameter.DriftAngleThresholdDeg &&
		v.speed > parameter.DriftMinSpeed &&
		v.throttleInput > parameter.DriftMinThrottle

	if v.isDrifting && wasDrifting {
		v.driftTime += dt
	} else {
		v.driftTime = 0
	}
}

func (v *Vehicle) effectiveMass() float64 {
	return parameter.CarMass * v.upgrades.Weight
}

// Input setters. Each clamps to its valid range; everything else about
// the tick is driven from Update.

func (v *Vehicle) SetThrottle(value float64) {
	v.throttleInput = vmath.Clamp(value, 0, 1)
	v.engine.SetThrottle(v.throttleInput)
}

func (v *Vehicle) SetBrake(value float64) {
	v.brakeInput = vmath.Clamp(value, 0, 1)
}

func (v *Vehicle) SetSteering(value float64) {
	v.steeringInput = vmath.Clamp(value, -1, 1)
}

func (v *Vehicle) SetHandbrake(active bool) {
	v.handbrake = active
}

func (v *Vehicle) ShiftUp()   { v.engine.ShiftUp() }
func (v *Vehicle) ShiftDown() { v.engine.ShiftDown() }

// Read accessors; all return already-computed state.

func (v *Vehicle) Position() vmath.Vec2     { return v.position }
func (v *Vehicle) Rotation() float64        { return v.rotation }
func (v *Vehicle) RotationDegrees() float64 { return vmath.RadToDeg(v.rotation) }
func (v *Vehicle) Velocity() vmath.Vec2     { return v.velocity }
func (v *Vehicle) AngularVelocity() float64 { return v.angularVelocity }
func (v *Vehicle) Speed() float64           { return v.speed }
func (v *Vehicle) SpeedMph() float64        { return v.speedMph }
func (v *Vehicle) LateralG() float64        { return v.lateralG }
func (v *Vehicle) SteeringAngle() float64   { return v.steeringAngle }
func (v *Vehicle) IsDrifting() bool         { return v.isDrifting }
func (v *Vehicle) IsOversteering() bool     { return v.isOversteering }
func (v *Vehicle) IsUndersteering() bool    { return v.isUndersteering }
func (v *Vehicle) DriftAngle() float64      { return v.driftAngle }
func (v *Vehicle) DriftTime() float64       { return v.driftTime }
func (v *Vehicle) FrontWeight() float64     { return v.frontWeight }
func (v *Vehicle) RearWeight() float64      { return v.rearWeight }
func (v *Vehicle) IsHandbrakeActive() bool  { return v.handbrake }

// IsWheelspinning reports whether either rear tire is spinning up.
func (v *Vehicle) IsWheelspinning() bool {
	return v.tires[RearLeft].isSpinning || v.tires[RearRight].isSpinning
}

// RearSlip is the average absolute rear slip ratio.
func (v *Vehicle) RearSlip() float64 {
	return (math.Abs(v.tires[RearLeft].slipRatio) + math.Abs(v.tires[RearRight].slipRatio)) / 2
}
