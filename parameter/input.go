package parameter

// Keyboard control feel. Terminals deliver key repeats rather than
// press/release pairs, so held controls are modeled as a hold window
// refreshed by every repeat event.
const (
	// Seconds a key counts as held after its last event. Must exceed the
	// slowest typical terminal repeat interval.
	InputHoldTime = 0.25

	// Axis ramp rates, per second of full range
	InputAttackRate  = 5.0 // Toward the pressed target
	InputReleaseRate = 8.0 // Back toward neutral
)
