package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/driftworks/driftline/parameter"
)

const dt = 1.0 / 60.0

func runeEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func keyEvent(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestAxisKeysProduceNoIntent(t *testing.T) {
	c := NewControls(nil)
	for _, r := range []rune{'w', 's', 'a', 'd', ' '} {
		if got := c.HandleEvent(runeEvent(r)); got != IntentNone {
			t.Errorf("axis rune %q produced intent %v", r, got)
		}
	}
	if got := c.HandleEvent(keyEvent(tcell.KeyUp)); got != IntentNone {
		t.Errorf("arrow axis key produced intent %v", got)
	}
}

func TestIntentMapping(t *testing.T) {
	c := NewControls(nil)
	tests := []struct {
		ev   *tcell.EventKey
		want Intent
	}{
		{runeEvent('e'), IntentShiftUp},
		{runeEvent('c'), IntentShiftDown},
		{runeEvent('k'), IntentClutchKick},
		{runeEvent('r'), IntentReset},
		{runeEvent('q'), IntentQuit},
		{keyEvent(tcell.KeyCtrlC), IntentQuit},
		{runeEvent('z'), IntentNone},
	}
	for _, tt := range tests {
		if got := c.HandleEvent(tt.ev); got != tt.want {
			t.Errorf("event %v → %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestThrottleRampsUpWhileHeld(t *testing.T) {
	c := NewControls(nil)

	c.HandleEvent(runeEvent('w'))
	c.Update(dt)

	first := c.Throttle()
	if first <= 0 {
		t.Fatal("throttle did not start ramping")
	}
	if first >= 1 {
		t.Fatalf("throttle jumped to %v in one tick", first)
	}

	// Keep refreshing the hold, as terminal key repeat would
	for i := 0; i < 60; i++ {
		c.HandleEvent(runeEvent('w'))
		c.Update(dt)
	}
	if c.Throttle() != 1 {
		t.Errorf("throttle after a second of holding = %v, want 1", c.Throttle())
	}
}

func TestThrottleDecaysAfterHoldExpires(t *testing.T) {
	c := NewControls(nil)
	for i := 0; i < 60; i++ {
		c.HandleEvent(runeEvent('w'))
		c.Update(dt)
	}

	// No more events: hold expires, then the axis releases to zero
	window := (parameter.InputHoldTime + 1.0/parameter.InputReleaseRate) / dt
	ticks := int(window) + 5
	for i := 0; i < ticks; i++ {
		c.Update(dt)
	}
	if c.Throttle() != 0 {
		t.Errorf("throttle after release window = %v, want 0", c.Throttle())
	}
}

func TestSteeringCombinesBothDirections(t *testing.T) {
	c := NewControls(nil)

	for i := 0; i < 60; i++ {
		c.HandleEvent(runeEvent('d'))
		c.Update(dt)
	}
	if c.Steering() != 1 {
		t.Fatalf("steering right = %v, want 1", c.Steering())
	}

	// Both held: targets cancel to neutral
	for i := 0; i < 120; i++ {
		c.HandleEvent(runeEvent('a'))
		c.HandleEvent(runeEvent('d'))
		c.Update(dt)
	}
	if c.Steering() != 0 {
		t.Errorf("steering with both directions held = %v, want 0", c.Steering())
	}
}

func TestHandbrakeIsHoldNotToggle(t *testing.T) {
	c := NewControls(nil)

	c.HandleEvent(runeEvent(' '))
	c.Update(dt)
	if !c.Handbrake() {
		t.Fatal("handbrake not engaged on space")
	}

	ticks := int(parameter.InputHoldTime/dt) + 2
	for i := 0; i < ticks; i++ {
		c.Update(dt)
	}
	if c.Handbrake() {
		t.Error("handbrake still engaged after hold expired")
	}
}

func TestClearZeroesEverything(t *testing.T) {
	c := NewControls(nil)
	for i := 0; i < 30; i++ {
		c.HandleEvent(runeEvent('w'))
		c.HandleEvent(runeEvent('d'))
		c.Update(dt)
	}

	c.Clear()

	if c.Throttle() != 0 || c.Steering() != 0 || c.Handbrake() {
		t.Errorf("state after Clear: throttle %v steering %v handbrake %v",
			c.Throttle(), c.Steering(), c.Handbrake())
	}
}
