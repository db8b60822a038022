package physics

import (
	"math"

	"github.com/driftworks/driftline/parameter"
	"github.com/driftworks/driftline/vmath"
)

// Engine models RPM, the torque curve, and drivetrain state. With the
// clutch engaged and a gear selected, the drivetrain is a rigid link:
// RPM follows wheel speed instantly, so shifts and wheelspin move the
// needle the way a real manual does.
type Engine struct {
	rpm      float64
	throttle float64
	gear     int // -1 reverse, 0 neutral, 1..6 forward
	clutch   float64

	currentTorque float64
	currentPower  float64

	isBogging    bool
	bogIntensity float64

	revLimiterActive bool
	revLimiterTimer  float64

	// Needle bounce on the limiter: spring-damper oscillator
	bounce      float64
	bounceVel   float64
	bounceCount int

	// Upgrade multiplier on peak torque
	powerModifier float64
}

func NewEngine() *Engine {
	return &Engine{
		rpm:           parameter.IdleRPM,
		gear:          1,
		clutch:        1.0,
		powerModifier: 1.0,
	}
}

// Update advances RPM, limiter, bogging, and torque by one timestep.
// wheelAngVel is the previous tick's average rear wheel angular velocity.
func (e *Engine) Update(dt, wheelAngVel float64) {
	if e.revLimiterActive {
		e.revLimiterTimer -= dt
		if e.revLimiterTimer <= 0 {
			e.revLimiterActive = false
		}
	}

	// Clutch re-engages after a shift or kick dip
	e.clutch = vmath.Approach(e.clutch, 1.0, parameter.ClutchEngageRate*dt)

	if e.clutch > parameter.ClutchLinkThreshold && e.gear != 0 {
		wheelRPM := math.Abs(wheelAngVel/(2*math.Pi)) * 60
		e.rpm = wheelRPM * math.Abs(e.GearRatio()) * parameter.FinalDriveRatio

		// Stall guard: slip the clutch instead of dropping under idle
		if e.rpm < parameter.IdleRPM {
			if e.throttle > 0 {
				e.rpm = parameter.IdleRPM + e.throttle*parameter.ClutchSlipThrottleBand*
					(parameter.RedlineRPM-parameter.IdleRPM)*0.1
			} else {
				e.rpm = parameter.IdleRPM
			}
		}
	} else {
		// Free-revving: chase the throttle target quickly
		target := parameter.IdleRPM + e.throttle*(parameter.RedlineRPM-parameter.IdleRPM)*
			parameter.FreeRevTargetFraction
		e.rpm = vmath.Approach(e.rpm, target, parameter.FreeRevRate*dt)
	}

	e.updateBogging(dt)

	if e.rpm >= parameter.RevLimiterRPM {
		e.revLimiterActive = true
		e.revLimiterTimer = parameter.RevLimiterCutTime
		e.rpm = parameter.RevLimiterRPM

		// Kick the needle only once the previous bounce has settled
		if math.Abs(e.bounce) < parameter.BounceArmThreshold && e.bounceVel == 0 {
			e.bounceVel = parameter.BounceKickVelocity
			e.bounceCount = 0
		}
	}

	e.updateBounce(dt)

	e.rpm = vmath.Clamp(e.rpm, parameter.IdleRPM, parameter.MaxRPM)

	e.currentTorque = e.calculateTorque()
	e.currentPower = e.currentTorque * e.rpm / 5252
}

// Bogging: near idle, on throttle, in a tall gear — the engine cannot
// pull. Intensity ramps rather than snapping so the penalty (and the
// audio cue built on it) fades in.
func (e *Engine) updateBogging(dt float64) {
	bogThreshold := parameter.IdleRPM + parameter.BogRPMWindow
	target := 0.0
	if e.rpm < bogThreshold && e.throttle > parameter.BogThrottleMin && e.gear >= parameter.BogMinGear {
		target = vmath.Clamp((bogThreshold-e.rpm)/parameter.BogRPMWindow, 0, 1)
	}
	e.bogIntensity = vmath.Approach(e.bogIntensity, target, parameter.BogRampRate*dt)
	e.isBogging = e.bogIntensity > 0.05
}

func (e *Engine) updateBounce(dt float64) {
	if e.bounce == 0 && e.bounceVel == 0 {
		return
	}

	springForce := -e.bounce * parameter.BounceSpring
	dampingForce := -e.bounceVel * parameter.BounceDamping
	e.bounceVel += (springForce + dampingForce) * dt
	e.bounce += e.bounceVel * dt

	if e.bounce < -0.02 && e.bounceVel > 0 {
		e.bounceCount++
	}
	settled := math.Abs(e.bounce) < parameter.BounceSettleOffset &&
		math.Abs(e.bounceVel) < parameter.BounceSettleVel
	if e.bounceCount > parameter.BounceMaxCount || settled {
		e.bounce = 0
		e.bounceVel = 0
	}
	e.bounce = vmath.Clamp(e.bounce, parameter.BounceMinOffset, parameter.BounceMaxOffset)
}

// Two-segment curve over the idle→redline band: 60%→100% to the
// midpoint, then down to 75% at redline. Zero while the limiter cuts.
func (e *Engine) calculateTorque() float64 {
	if e.revLimiterActive {
		return 0
	}

	rpmNorm := (e.rpm - parameter.IdleRPM) / (parameter.RedlineRPM - parameter.IdleRPM)
	rpmNorm = vmath.Clamp(rpmNorm, 0, 1)

	var curve float64
	if rpmNorm < 0.5 {
		curve = parameter.TorqueCurveFloor + (1-parameter.TorqueCurveFloor)*(rpmNorm/0.5)
	} else {
		curve = 1.0 - (1-parameter.TorqueCurveRedline)*((rpmNorm-0.5)/0.5)
	}

	torque := parameter.EnginePeakTorque * e.powerModifier * curve * e.throttle * e.clutch
	torque *= 1.0 - e.bogIntensity*parameter.BogMaxPenalty
	return torque
}

// GearRatio returns the ratio for the current gear; out-of-range gears
// yield zero rather than indexing out of bounds.
func (e *Engine) GearRatio() float64 {
	if e.gear == -1 {
		return parameter.ReverseGearRatio
	}
	if e.gear >= 0 && e.gear < len(parameter.GearRatios) {
		return parameter.GearRatios[e.gear]
	}
	return 0
}

// WheelTorque is engine torque through the gearbox and final drive.
func (e *Engine) WheelTorque() float64 {
	if e.gear == 0 {
		return 0
	}
	return e.currentTorque * math.Abs(e.GearRatio()) * parameter.FinalDriveRatio
}

// DriveForce is the tractive force at the contact patch.
func (e *Engine) DriveForce() float64 {
	return e.WheelTorque() / parameter.TireRadius
}

func (e *Engine) ShiftUp() {
	if e.gear < len(parameter.GearRatios)-1 {
		e.gear++
		e.clutch = parameter.ClutchKickClutchDip
	}
}

func (e *Engine) ShiftDown() {
	if e.gear > 1 {
		e.gear--
		e.clutch = parameter.ClutchKickClutchDip
	}
}

func (e *Engine) SetReverse() {
	if e.gear != -1 {
		e.gear = -1
	}
}

func (e *Engine) SetNeutral() { e.gear = 0 }

func (e *Engine) SetThrottle(value float64) {
	e.throttle = vmath.Clamp(value, 0, 1)
}

func (e *Engine) SetClutch(value float64) {
	e.clutch = vmath.Clamp(value, 0, 1)
}

func (e *Engine) SetPowerModifier(mod float64) { e.powerModifier = mod }

func (e *Engine) RPM() float64              { return e.rpm }
func (e *Engine) CurrentGear() int          { return e.gear }
func (e *Engine) CurrentTorque() float64    { return e.currentTorque }
func (e *Engine) IsRevLimiterActive() bool  { return e.revLimiterActive }
func (e *Engine) RevLimiterBounce() float64 { return e.bounce }
func (e *Engine) IsBogging() bool           { return e.isBogging }
func (e *Engine) BogIntensity() float64     { return e.bogIntensity }

// GearTopSpeed is the road speed at redline in the current gear (m/s).
func (e *Engine) GearTopSpeed() float64 {
	if e.gear <= 0 {
		return 0
	}
	redlineWheelRPM := parameter.RedlineRPM / (math.Abs(e.GearRatio()) * parameter.FinalDriveRatio)
	return redlineWheelRPM * 2 * math.Pi / 60 * parameter.TireRadius
}

// RPMPercentage maps idle→limiter onto 0..1 for gauge display.
func (e *Engine) RPMPercentage() float64 {
	return (e.rpm - parameter.IdleRPM) / (parameter.RevLimiterRPM - parameter.IdleRPM)
}

// State snapshots the engine for cross-thread readers.
func (e *Engine) State() EngineState {
	return EngineState{
		RPM:              e.rpm,
		Throttle:         e.throttle,
		Gear:             e.gear,
		Clutch:           e.clutch,
		Torque:           e.currentTorque,
		Power:            e.currentPower,
		RevLimiterActive: e.revLimiterActive,
		RevLimiterBounce: e.bounce,
		IsBogging:        e.isBogging,
		BogIntensity:     e.bogIntensity,
		RPMPercentage:    e.RPMPercentage(),
	}
}
