package physics

import (
	"math"
	"testing"

	"github.com/driftworks/driftline/parameter"
	"github.com/driftworks/driftline/vmath"
)

// drive runs the vehicle for ticks at 60 Hz with fixed inputs.
func drive(v *Vehicle, ticks int, throttle, brake, steering float64, handbrake bool) {
	v.SetThrottle(throttle)
	v.SetBrake(brake)
	v.SetSteering(steering)
	v.SetHandbrake(handbrake)
	for i := 0; i < ticks; i++ {
		v.Update(dt60)
	}
}

// launch puts a parked vehicle directly into a rolling state so drift
// scenarios don't need a scripted warm-up lap.
func launch(v *Vehicle, speed float64) {
	v.velocity = vmath.FromAngle(v.rotation).Scale(speed)
	v.speed = speed
}

func TestVehicleStartsAtRest(t *testing.T) {
	v := NewVehicle(100, 50)

	if v.Position() != (vmath.Vec2{X: 100, Y: 50}) {
		t.Errorf("spawn position = %+v", v.Position())
	}
	if v.Speed() != 0 || v.Velocity() != (vmath.Vec2{}) {
		t.Errorf("spawn not at rest: speed %v velocity %+v", v.Speed(), v.Velocity())
	}
	if v.Snapshot() == nil {
		t.Fatal("no snapshot published at construction")
	}
}

func TestVehicleAtRestStaysAtRest(t *testing.T) {
	v := NewVehicle(0, 0)
	drive(v, 300, 0, 0, 0, false)

	if v.Speed() != 0 {
		t.Errorf("speed after 5s of no input = %v, want 0", v.Speed())
	}
	if v.Position() != (vmath.Vec2{}) {
		t.Errorf("position crept to %+v with no input", v.Position())
	}
	if v.Rotation() != 0 {
		t.Errorf("rotation crept to %v with no input", v.Rotation())
	}
}

func TestStraightLineAcceleration(t *testing.T) {
	v := NewVehicle(0, 0)
	drive(v, 180, 1, 0, 0, false)

	forward := v.Velocity().Dot(vmath.FromAngle(v.Rotation()))
	if forward < 3 {
		t.Errorf("forward speed after 3s full throttle = %v, want > 3", forward)
	}
	if v.Position().X <= 0 {
		t.Errorf("position.X = %v, want forward progress", v.Position().X)
	}
	// Symmetric inputs must not induce yaw or lateral drift
	if math.Abs(v.Rotation()) > 0.02 {
		t.Errorf("rotation = %v after straight-line run, want ~0", v.Rotation())
	}
	if math.Abs(v.Position().Y) > 0.5 {
		t.Errorf("lateral displacement = %v after straight-line run", v.Position().Y)
	}
}

func TestCoastToFullStop(t *testing.T) {
	v := NewVehicle(0, 0)
	launch(v, 10)

	drive(v, 600, 0, 0, 0, false)

	if v.Speed() != 0 {
		t.Errorf("speed after 10s coast = %v, want exact 0", v.Speed())
	}
	if v.Velocity() != (vmath.Vec2{}) {
		t.Errorf("velocity after coast = %+v, want zero", v.Velocity())
	}
}

func TestResistiveForcesNeverReverseMotion(t *testing.T) {
	// Even at the largest supported timestep, drag and friction must not
	// push the car backward through zero
	v := NewVehicle(0, 0)
	launch(v, 2)

	for i := 0; i < 40; i++ {
		v.Update(parameter.MaxTickDelta)
		forward := v.Velocity().Dot(vmath.FromAngle(v.Rotation()))
		if forward < -0.01 {
			t.Fatalf("coasting car reversed to %v m/s at step %d", forward, i)
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	script := func(v *Vehicle) {
		drive(v, 120, 1, 0, 0, false)
		drive(v, 60, 0.8, 0, 1, false)
		drive(v, 40, 0.5, 0, 1, true)
		drive(v, 60, 0.9, 0, -0.7, false)
		v.ShiftUp()
		drive(v, 120, 1, 0, 0.3, false)
		drive(v, 90, 0, 1, 0, false)
	}

	a := NewVehicle(10, 20)
	b := NewVehicle(10, 20)
	script(a)
	script(b)

	if a.Position() != b.Position() {
		t.Errorf("positions diverged: %+v vs %+v", a.Position(), b.Position())
	}
	if a.Rotation() != b.Rotation() {
		t.Errorf("rotations diverged: %v vs %v", a.Rotation(), b.Rotation())
	}
	if a.Speed() != b.Speed() {
		t.Errorf("speeds diverged: %v vs %v", a.Speed(), b.Speed())
	}
	if a.Snapshot().Engine.RPM != b.Snapshot().Engine.RPM {
		t.Errorf("RPM diverged: %v vs %v", a.Snapshot().Engine.RPM, b.Snapshot().Engine.RPM)
	}
}

func TestAggressiveInputsStayBounded(t *testing.T) {
	v := NewVehicle(0, 0)

	for i := 0; i < 3000; i++ {
		// Deterministic but hostile input pattern
		v.SetThrottle(math.Abs(math.Sin(float64(i) * 0.11)))
		v.SetBrake(math.Max(0, math.Sin(float64(i)*0.07)))
		v.SetSteering(math.Sin(float64(i) * 0.23))
		v.SetHandbrake(i%37 == 0)
		if i%211 == 0 {
			v.ShiftUp()
		}
		if i%307 == 0 {
			v.ShiftDown()
		}
		v.Update(dt60)

		if math.IsNaN(v.Speed()) || math.IsInf(v.Speed(), 0) {
			t.Fatalf("speed not finite at step %d", i)
		}
		if v.Speed() > 150 {
			t.Fatalf("speed %v diverged at step %d", v.Speed(), i)
		}
		if r := v.Rotation(); r <= -math.Pi-1e-9 || r > math.Pi+1e-9 {
			t.Fatalf("rotation %v left (-π, π] at step %d", r, i)
		}
		if math.Abs(v.DriftAngle()) > 180 {
			t.Fatalf("drift angle %v outside ±180 at step %d", v.DriftAngle(), i)
		}
		snap := v.Snapshot()
		if snap.RearGripMult < parameter.GripMultiplierMin || snap.RearGripMult > parameter.GripMultiplierMax {
			t.Fatalf("rear grip multiplier %v outside band at step %d", snap.RearGripMult, i)
		}
		if snap.Engine.RPM > parameter.MaxRPM {
			t.Fatalf("RPM %v above max at step %d", snap.Engine.RPM, i)
		}
	}
}

func TestHandbrakeInitiatesSlide(t *testing.T) {
	v := NewVehicle(0, 0)
	launch(v, 20)

	drive(v, 90, 0.3, 0, 1, true)

	snap := v.Snapshot()
	if snap.RearGripMult > parameter.HandbrakeRearGrip+1e-9 {
		t.Errorf("rear grip multiplier = %v, want <= %v under handbrake",
			snap.RearGripMult, parameter.HandbrakeRearGrip)
	}
	if math.Abs(v.AngularVelocity()) < 0.1 {
		t.Errorf("angular velocity = %v, handbrake turn did not rotate the car", v.AngularVelocity())
	}
	if math.Abs(v.DriftAngle()) < 2 {
		t.Errorf("drift angle = %v, body did not break away from velocity heading", v.DriftAngle())
	}
}

// A handbrake stab at speed with steering held must walk the state
// machine in order: rear axle slip overtakes the front, oversteer arms
// while the rear grip is degraded, and only then does the velocity
// heading break far enough away to count as drifting. With throttle
// held, the slide must outlive the handbrake window instead of the rear
// grip snapping back the tick it releases.
func TestHandbrakeDriftScenario(t *testing.T) {
	v := NewVehicle(0, 0)
	launch(v, 15)
	v.SetThrottle(0.6)
	v.SetSteering(0.8)
	v.SetHandbrake(true)

	const windowTicks = 30 // 0.5s at 60 Hz

	rearLedFront := false
	oversteerTick, driftTick := -1, -1
	minDriftAngle := 0.0
	sustainedAfterRelease := false

	for i := 0; i < 240; i++ {
		if i == windowTicks {
			v.SetHandbrake(false)
		}
		v.Update(dt60)

		if i < windowTicks && v.rearSlipAngle > v.frontSlipAngle {
			rearLedFront = true
		}
		if v.IsOversteering() && oversteerTick < 0 {
			oversteerTick = i
		}
		if v.IsDrifting() {
			if driftTick < 0 {
				driftTick = i
			}
			if v.DriftAngle() < minDriftAngle {
				minDriftAngle = v.DriftAngle()
			}
			if i >= windowTicks && v.rearGripMult < parameter.ThrottleModMinGrip {
				sustainedAfterRelease = true
			}
		}
	}

	if !rearLedFront {
		t.Errorf("rear slip never exceeded front during the handbrake window (front %v, rear %v)",
			v.frontSlipAngle, v.rearSlipAngle)
	}
	if oversteerTick < 0 {
		t.Fatal("oversteer never armed")
	}
	if driftTick < 0 {
		t.Fatal("drifting never armed")
	}
	if oversteerTick > driftTick {
		t.Errorf("drifting armed at tick %d before oversteer at tick %d", driftTick, oversteerTick)
	}
	// Positive steering turns the nose CCW past the velocity heading, so
	// driftAngle (velocity heading minus body heading) goes negative
	if minDriftAngle > -parameter.DriftAngleThresholdDeg {
		t.Errorf("drift angle reached only %v, want below -%v for positive steering",
			minDriftAngle, parameter.DriftAngleThresholdDeg)
	}
	if !sustainedAfterRelease {
		t.Error("rear grip snapped back after handbrake release while still drifting on power")
	}
}

func TestDriftStateExclusivity(t *testing.T) {
	v := NewVehicle(0, 0)
	launch(v, 18)

	for i := 0; i < 600; i++ {
		v.SetThrottle(0.8)
		v.SetSteering(math.Sin(float64(i) * 0.05))
		v.SetHandbrake(i > 100 && i < 160)
		v.Update(dt60)

		if v.IsOversteering() && v.IsUndersteering() {
			t.Fatalf("oversteer and understeer both set at step %d", i)
		}
	}
}

func TestDriftStateClearsAtLowSpeed(t *testing.T) {
	v := NewVehicle(0, 0)
	launch(v, 20)
	drive(v, 60, 0.5, 0, 1, true)

	// Brake to a stop; all drift state must clear below the classify floor
	drive(v, 600, 0, 1, 0, false)

	if v.IsDrifting() || v.IsOversteering() || v.IsUndersteering() {
		t.Error("drift flags survived a full stop")
	}
	if v.DriftAngle() != 0 || v.DriftTime() != 0 {
		t.Errorf("drift angle %v / time %v not cleared at rest", v.DriftAngle(), v.DriftTime())
	}
}

func TestWeightTransfer(t *testing.T) {
	v := NewVehicle(0, 0)
	drive(v, 30, 1, 0, 0, false)
	if v.RearWeight() <= 0.5 {
		t.Errorf("rear weight under throttle = %v, want > 0.5", v.RearWeight())
	}
	if math.Abs(v.FrontWeight()+v.RearWeight()-1) > 1e-9 {
		t.Errorf("weights do not sum to 1: %v + %v", v.FrontWeight(), v.RearWeight())
	}

	launch(v, 15)
	drive(v, 30, 0, 1, 0, false)
	if v.FrontWeight() <= 0.5 {
		t.Errorf("front weight under braking = %v, want > 0.5", v.FrontWeight())
	}
}

func TestClutchKickGating(t *testing.T) {
	v := NewVehicle(0, 0)

	// Parked: the kick must not arm
	v.SetThrottle(0.5)
	v.TriggerClutchKick()
	if v.clutchKickActive {
		t.Error("clutch kick armed at standstill")
	}

	// Rolling with throttle: arms, and the cooldown blocks a re-trigger
	launch(v, 10)
	v.TriggerClutchKick()
	if !v.clutchKickActive {
		t.Fatal("clutch kick did not arm while rolling on throttle")
	}

	// Let the active window lapse but not the cooldown
	drive(v, int(parameter.ClutchKickDuration/dt60)+2, 0.5, 0, 0, false)
	if v.clutchKickActive {
		t.Fatal("kick window did not expire")
	}
	v.TriggerClutchKick()
	if v.clutchKickActive {
		t.Error("clutch kick re-armed inside the cooldown")
	}
}

func TestFeintDetection(t *testing.T) {
	v := NewVehicle(0, 0)
	launch(v, 15)

	// Gentle steady steering never arms the feint
	drive(v, 30, 0.5, 0, 0.8, false)
	if v.feintActive {
		t.Fatal("feint armed by steady steering")
	}

	// A hard flick across center does
	v.SetSteering(-1)
	v.Update(dt60)
	if !v.feintActive {
		t.Error("feint did not arm on a fast steering reversal at speed")
	}

	// And it expires on its own
	drive(v, int(parameter.FeintDuration/dt60)+2, 0.5, 0, -1, false)
	if v.feintActive {
		t.Error("feint did not expire")
	}
}

func TestUpdateZeroDtIsNoOp(t *testing.T) {
	v := NewVehicle(0, 0)
	launch(v, 12)
	before := *v.Snapshot()

	v.Update(0)
	v.Update(-1)

	after := v.Snapshot()
	if before.Position != after.Position || before.Speed != after.Speed {
		t.Error("zero or negative dt changed vehicle state")
	}
}

func TestOversizedDtIsClamped(t *testing.T) {
	v := NewVehicle(0, 0)
	launch(v, 15)
	v.SetThrottle(1)

	// A 2-second stall frame must behave like the clamp ceiling, not
	// integrate a full 2 seconds in one step
	v.Update(2.0)

	if math.IsNaN(v.Speed()) || v.Speed() > 60 {
		t.Errorf("speed after oversized dt = %v", v.Speed())
	}
	if v.Position().Magnitude() > 15*parameter.MaxTickDelta*2 {
		t.Errorf("position jumped %v in one clamped tick", v.Position().Magnitude())
	}
}

func TestResetRestoresRestAndKeepsUpgrades(t *testing.T) {
	v := NewVehicle(0, 0)
	tuned := StockUpgrades()
	tuned.Power = 1.4
	tuned.Grip = 1.2
	v.ApplyUpgrades(tuned)

	drive(v, 200, 1, 0, 0.5, false)
	v.Reset(300, 400)

	if v.Position() != (vmath.Vec2{X: 300, Y: 400}) {
		t.Errorf("reset position = %+v", v.Position())
	}
	if v.Speed() != 0 || v.Rotation() != 0 || v.AngularVelocity() != 0 {
		t.Error("reset did not return the car to rest")
	}
	if v.Upgrades() != tuned {
		t.Errorf("upgrades lost on reset: %+v", v.Upgrades())
	}
	snap := v.Snapshot()
	if snap.Position != v.Position() || snap.Speed != 0 {
		t.Error("reset did not publish a fresh snapshot")
	}
	if snap.Engine.RPM != parameter.IdleRPM {
		t.Errorf("engine RPM after reset = %v, want idle", snap.Engine.RPM)
	}
}

func TestRevLimiterContainsTopSpeed(t *testing.T) {
	v := NewVehicle(0, 0)

	// Full throttle pinned in 1st gear: the limiter must hold both the
	// engine and the road speed
	drive(v, 3600, 1, 0, 0, false)

	snap := v.Snapshot()
	if snap.Engine.RPM > parameter.MaxRPM {
		t.Errorf("RPM = %v above max %v", snap.Engine.RPM, parameter.MaxRPM)
	}
	if v.Speed() > 40 {
		t.Errorf("speed = %v in 1st gear, limiter not containing it", v.Speed())
	}
	if v.Speed() < 5 {
		t.Errorf("speed = %v after a minute of full throttle, car barely moved", v.Speed())
	}
}

func TestSnapshotMatchesAccessors(t *testing.T) {
	v := NewVehicle(5, 6)
	drive(v, 90, 0.9, 0, 0.4, false)

	snap := v.Snapshot()
	if snap.Position != v.Position() {
		t.Errorf("snapshot position %+v vs accessor %+v", snap.Position, v.Position())
	}
	if snap.Speed != v.Speed() {
		t.Errorf("snapshot speed %v vs accessor %v", snap.Speed, v.Speed())
	}
	if snap.IsDrifting != v.IsDrifting() {
		t.Error("snapshot drift flag mismatch")
	}
	if snap.Engine.Gear != 1 {
		t.Errorf("snapshot gear = %d, want 1", snap.Engine.Gear)
	}
	if len(snap.Tires) != TireCount {
		t.Fatalf("snapshot tire count = %d", len(snap.Tires))
	}
	for i, ts := range snap.Tires {
		if ts.Position != TirePosition(i) {
			t.Errorf("tire %d snapshot position = %v", i, ts.Position)
		}
	}
}

func TestUpgradesChangeBehavior(t *testing.T) {
	stock := NewVehicle(0, 0)
	tuned := NewVehicle(0, 0)
	up := StockUpgrades()
	up.Power = 1.5
	up.Weight = 0.85
	tuned.ApplyUpgrades(up)

	drive(stock, 180, 1, 0, 0, false)
	drive(tuned, 180, 1, 0, 0, false)

	if tuned.Speed() <= stock.Speed() {
		t.Errorf("tuned car (%v m/s) not faster than stock (%v m/s)", tuned.Speed(), stock.Speed())
	}
}
