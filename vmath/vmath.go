package vmath

import "math"

// Float64 scalar helpers for the vehicle dynamics hot path.
// Everything here is pure and allocation-free.

// Clamp limits value to [min, max]
func Clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}

// Lerp linearly interpolates from a to b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep eases t in [0,1] with zero slope at both ends
func Smoothstep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// Map remaps value from [inMin, inMax] to [outMin, outMax]
func Map(value, inMin, inMax, outMin, outMax float64) float64 {
	return outMin + (outMax-outMin)*((value-inMin)/(inMax-inMin))
}

// DegToRad converts degrees to radians
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// RadToDeg converts radians to degrees
func RadToDeg(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// NormalizeAngle wraps an angle into (-π, π]
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// Sign returns -1, 0, or 1
func Sign(value float64) float64 {
	if value > 0 {
		return 1
	}
	if value < 0 {
		return -1
	}
	return 0
}

// Approach moves current toward target by at most maxDelta.
// The rate-limited smoothing primitive used for steering, RPM, and
// bounce settling — never overshoots the target.
func Approach(current, target, maxDelta float64) float64 {
	diff := target - current
	if math.Abs(diff) <= maxDelta {
		return target
	}
	return current + Sign(diff)*maxDelta
}

// NearZero reports whether value is within epsilon of zero
func NearZero(value, epsilon float64) bool {
	return math.Abs(value) < epsilon
}
