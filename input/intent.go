// Package input translates terminal key events into driving controls:
// smoothed analog axes for throttle, brake, and steering, a held
// handbrake, and discrete one-shot intents for everything else.
package input

// Intent discriminates one-shot semantic actions. Axis keys never
// produce an intent; they feed the hold/ramp state instead.
type Intent uint8

const (
	IntentNone Intent = iota

	// System
	IntentQuit
	IntentPause
	IntentReset
	IntentToggleMute

	// Drivetrain
	IntentShiftUp
	IntentShiftDown
	IntentClutchKick

	// Shop overlay
	IntentShopToggle
	IntentShopNext
	IntentShopPrev
	IntentShopConfirm
)

// Axis identifies one held driving control.
type Axis uint8

const (
	AxisThrottle Axis = iota
	AxisBrake
	AxisSteerLeft
	AxisSteerRight
	AxisHandbrake
	axisCount
)
