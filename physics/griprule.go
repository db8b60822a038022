package physics

import (
	"math"

	"github.com/driftworks/driftline/parameter"
	"github.com/driftworks/driftline/vmath"
)

// gripRule is one named drift-initiation mechanic. Each returns a
// multiplicative adjustment for the rear and front axle grip; inactive
// rules return (1, 1). The rules are folded left-to-right in a fixed
// order so the tuning surface stays explicit and each mechanic can be
// tested on its own.
type gripRule struct {
	name  string
	apply func(v *Vehicle) (rear, front float64)
}

var gripRules = []gripRule{
	{"handbrake", ruleHandbrake},
	{"power-oversteer", rulePowerOversteer},
	{"clutch-kick", ruleClutchKick},
	{"feint", ruleFeint},
	{"lift-off", ruleLiftOff},
	{"braking-drift", ruleBrakingDrift},
	{"drift-sustain", ruleDriftSustain},
}

// Handbrake locks the rears out of lateral grip almost entirely.
func ruleHandbrake(v *Vehicle) (float64, float64) {
	if v.handbrake && v.speed > parameter.DriftClassifyMinSpeed {
		return parameter.HandbrakeRearGrip, 1
	}
	return 1, 1
}

// Heavy throttle with the rears already spun up keeps them loose.
func rulePowerOversteer(v *Vehicle) (float64, float64) {
	rearSlip := (math.Abs(v.tires[RearLeft].slipRatio) + math.Abs(v.tires[RearRight].slipRatio)) / 2
	if v.throttleInput > parameter.PowerOverThrottleMin &&
		rearSlip > parameter.PowerOverSlipRatio &&
		v.speed > parameter.OversteerMinSpeed {
		return parameter.PowerOverRearGrip, 1
	}
	return 1, 1
}

// Clutch kick shocks the rear tires loose for its active window.
func ruleClutchKick(v *Vehicle) (float64, float64) {
	if v.clutchKickActive {
		return parameter.ClutchKickRearGrip, 1
	}
	return 1, 1
}

// Feint: the weight transfer of a rapid steering reversal unloads the
// rear axle briefly.
func ruleFeint(v *Vehicle) (float64, float64) {
	if v.feintActive {
		return parameter.FeintRearGrip, 1
	}
	return 1, 1
}

// Lift-off oversteer scales with the accumulated throttle-release shift.
func ruleLiftOff(v *Vehicle) (float64, float64) {
	if v.liftOffAccum > 0.3 && v.speed > parameter.LiftOffMinSpeed {
		rear := 1 - (1-parameter.LiftOffRearGrip)*v.liftOffAccum
		return rear, 1
	}
	return 1, 1
}

// Trail-braking into a corner loosens the rear and lightly scrubs the
// front as load moves forward.
func ruleBrakingDrift(v *Vehicle) (float64, float64) {
	if !v.handbrake &&
		v.brakeInput > parameter.BrakingDriftBrakeMin &&
		math.Abs(v.steeringInput) > parameter.BrakingDriftSteerMin &&
		v.speed > parameter.BrakingDriftMinSpeed {
		return parameter.BrakingDriftRearGrip, 0.9
	}
	return 1, 1
}

// An established slide holds the rear loose while power stays on.
// Reads the previous tick's classification: applyGripRules runs before
// updateDriftState, so the sustain drops one tick after the slide ends.
func ruleDriftSustain(v *Vehicle) (float64, float64) {
	if (v.isOversteering || v.isDrifting) &&
		v.throttleInput > parameter.DriftMinThrottle &&
		v.speed > parameter.OversteerMinSpeed {
		return parameter.DriftSustainRearGrip, 1
	}
	return 1, 1
}

// applyGripRules folds the rule list into the per-axle multipliers and
// pushes them onto the tires for this tick's force computation.
func (v *Vehicle) applyGripRules() {
	rear, front := 1.0, 1.0
	for _, rule := range gripRules {
		r, f := rule.apply(v)
		rear *= r
		front *= f
	}

	v.rearGripMult = vmath.Clamp(rear, parameter.GripMultiplierMin, parameter.GripMultiplierMax)
	v.frontGripMult = vmath.Clamp(front, parameter.GripMultiplierMin, parameter.GripMultiplierMax)

	for _, t := range v.tires {
		if t.pos.IsRear() {
			t.setDriftGripMultiplier(v.rearGripMult)
		} else {
			t.setDriftGripMultiplier(v.frontGripMult)
		}
	}
}
