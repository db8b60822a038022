package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to axes and one-shot intents. Kept as plain maps
// so alternate layouts are a table swap, not a code change.
type KeyTable struct {
	AxisRunes   map[rune]Axis
	AxisKeys    map[tcell.Key]Axis
	IntentRunes map[rune]Intent
	IntentKeys  map[tcell.Key]Intent
}

// DefaultKeyTable returns the default bindings: WASD/arrows to drive,
// space for handbrake, e/c for gears, k for clutch kick.
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		AxisRunes: map[rune]Axis{
			'w': AxisThrottle,
			's': AxisBrake,
			'a': AxisSteerLeft,
			'd': AxisSteerRight,
			' ': AxisHandbrake,
		},
		AxisKeys: map[tcell.Key]Axis{
			tcell.KeyUp:    AxisThrottle,
			tcell.KeyDown:  AxisBrake,
			tcell.KeyLeft:  AxisSteerLeft,
			tcell.KeyRight: AxisSteerRight,
		},
		IntentRunes: map[rune]Intent{
			'q': IntentQuit,
			'p': IntentPause,
			'r': IntentReset,
			'm': IntentToggleMute,
			'e': IntentShiftUp,
			'c': IntentShiftDown,
			'k': IntentClutchKick,
			'b': IntentShopToggle,
			'j': IntentShopNext,
			'u': IntentShopPrev,
		},
		IntentKeys: map[tcell.Key]Intent{
			tcell.KeyCtrlC:   IntentQuit,
			tcell.KeyCtrlQ:   IntentQuit,
			tcell.KeyEscape:  IntentShopToggle,
			tcell.KeyTab:     IntentShopNext,
			tcell.KeyBacktab: IntentShopPrev,
			tcell.KeyEnter:   IntentShopConfirm,
		},
	}
}
