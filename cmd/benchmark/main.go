// Headless scripted runs of the vehicle simulation: throughput,
// trajectory stats, and a determinism check over two identical runs.
package main

import (
	"flag"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/driftworks/driftline/parameter"
	"github.com/driftworks/driftline/physics"
)

var (
	duration = flag.Duration("duration", 30*time.Second, "Simulated time per script")
	script   = flag.String("script", "all", "Script: accel|drift|all")
)

type stepFunc func(v *physics.Vehicle, tick int)

// accelScript holds full throttle and shifts near the limiter.
func accelScript(v *physics.Vehicle, tick int) {
	v.SetThrottle(1.0)
	snap := v.Snapshot()
	if snap.Engine.RPMPercentage > 0.95 && snap.Engine.Gear < 6 {
		v.ShiftUp()
	}
}

// driftScript accelerates, then throws the car sideways with steering
// plus a handbrake stab, repeating every ten seconds.
func driftScript(v *physics.Vehicle, tick int) {
	phase := tick % 600
	switch {
	case phase < 240:
		v.SetThrottle(1.0)
		v.SetSteering(0)
		v.SetHandbrake(false)
	case phase < 300:
		v.SetThrottle(0.5)
		v.SetSteering(1.0)
		v.SetHandbrake(true)
	default:
		v.SetThrottle(0.8)
		v.SetSteering(0.4)
		v.SetHandbrake(false)
	}
	snap := v.Snapshot()
	if snap.Engine.RPMPercentage > 0.9 && snap.Engine.Gear < 3 {
		v.ShiftUp()
	}
}

// runScript executes one scripted run and returns a state checksum.
func runScript(step stepFunc, ticks int) (checksum uint64, stats string) {
	v := physics.NewVehicle(0, 0)
	h := fnv.New64a()

	var maxSpeed, maxAngle, driftTime float64
	start := time.Now()

	for tick := 0; tick < ticks; tick++ {
		step(v, tick)
		v.Update(parameter.FixedTimestep)

		snap := v.Snapshot()
		if snap.Speed > maxSpeed {
			maxSpeed = snap.Speed
		}
		if a := math.Abs(snap.DriftAngle); a > maxAngle {
			maxAngle = a
		}
		if snap.IsDrifting {
			driftTime += parameter.FixedTimestep
		}

		fmt.Fprintf(h, "%x%x%x%x",
			math.Float64bits(snap.Position.X),
			math.Float64bits(snap.Position.Y),
			math.Float64bits(snap.Rotation),
			math.Float64bits(snap.Engine.RPM))
	}
	elapsed := time.Since(start)

	snap := v.Snapshot()
	stats = fmt.Sprintf(
		"  ticks=%d wall=%v (%.0f ticks/s)\n"+
			"  final: pos=(%.1f, %.1f) speed=%.1f m/s gear=%d rpm=%.0f\n"+
			"  peaks: speed=%.1f m/s angle=%.1f deg drift=%.1fs",
		ticks, elapsed.Round(time.Millisecond),
		float64(ticks)/elapsed.Seconds(),
		snap.Position.X, snap.Position.Y, snap.Speed,
		snap.Engine.Gear, snap.Engine.RPM,
		maxSpeed, maxAngle, driftTime)
	return h.Sum64(), stats
}

func runBoth(name string, step stepFunc, ticks int) {
	fmt.Printf("%s:\n", name)
	first, stats := runScript(step, ticks)
	fmt.Println(stats)

	second, _ := runScript(step, ticks)
	if first == second {
		fmt.Printf("  determinism: OK (%016x)\n", first)
	} else {
		fmt.Printf("  determinism: MISMATCH %016x != %016x\n", first, second)
	}
}

func main() {
	flag.Parse()
	ticks := int(duration.Seconds() / parameter.FixedTimestep)

	if *script == "accel" || *script == "all" {
		runBoth("accel", accelScript, ticks)
	}
	if *script == "drift" || *script == "all" {
		runBoth("drift", driftScript, ticks)
	}
}
