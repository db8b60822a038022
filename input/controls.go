package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/driftworks/driftline/parameter"
	"github.com/driftworks/driftline/vmath"
)

// Controls converts key events into driving inputs. Terminals send key
// repeats, not releases, so each axis carries a hold timer refreshed by
// every matching event; the axis reads as pressed while the timer is
// live. Analog values then ramp toward the pressed target so throttle
// and steering feel progressive instead of binary.
//
// HandleEvent runs on the event goroutine, Update on the tick loop; the
// caller serializes them through its event channel.
type Controls struct {
	table *KeyTable

	hold [axisCount]float64

	throttle float64
	brake    float64
	steering float64
}

func NewControls(table *KeyTable) *Controls {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Controls{table: table}
}

// HandleEvent refreshes axis holds and returns the one-shot intent for
// non-axis keys (IntentNone for axis keys and unbound keys).
func (c *Controls) HandleEvent(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if axis, ok := c.table.AxisRunes[r]; ok {
			c.hold[axis] = parameter.InputHoldTime
			return IntentNone
		}
		if intent, ok := c.table.IntentRunes[r]; ok {
			return intent
		}
		return IntentNone
	}

	if axis, ok := c.table.AxisKeys[ev.Key()]; ok {
		c.hold[axis] = parameter.InputHoldTime
		return IntentNone
	}
	if intent, ok := c.table.IntentKeys[ev.Key()]; ok {
		return intent
	}
	return IntentNone
}

// Update decays the hold timers and ramps the analog axes by dt.
func (c *Controls) Update(dt float64) {
	for i := range c.hold {
		if c.hold[i] > 0 {
			c.hold[i] -= dt
		}
	}

	c.throttle = ramp(c.throttle, boolTarget(c.pressed(AxisThrottle)), dt)
	c.brake = ramp(c.brake, boolTarget(c.pressed(AxisBrake)), dt)

	steerTarget := 0.0
	if c.pressed(AxisSteerLeft) {
		steerTarget -= 1
	}
	if c.pressed(AxisSteerRight) {
		steerTarget += 1
	}
	c.steering = ramp(c.steering, steerTarget, dt)
}

// ramp attacks toward a pressed target and releases faster toward
// neutral, never overshooting either way.
func ramp(current, target, dt float64) float64 {
	rate := parameter.InputReleaseRate
	if target != 0 {
		rate = parameter.InputAttackRate
	}
	return vmath.Approach(current, target, rate*dt)
}

func boolTarget(pressed bool) float64 {
	if pressed {
		return 1
	}
	return 0
}

func (c *Controls) pressed(axis Axis) bool {
	return c.hold[axis] > 0
}

func (c *Controls) Throttle() float64 { return c.throttle }
func (c *Controls) Brake() float64    { return c.brake }
func (c *Controls) Steering() float64 { return c.steering }
func (c *Controls) Handbrake() bool   { return c.pressed(AxisHandbrake) }

// Clear zeroes all holds and axes, used when entering an overlay so the
// car does not keep driving on stale input.
func (c *Controls) Clear() {
	for i := range c.hold {
		c.hold[i] = 0
	}
	c.throttle = 0
	c.brake = 0
	c.steering = 0
}
