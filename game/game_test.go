package game

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/driftworks/driftline/audio"
	"github.com/driftworks/driftline/parameter"
)

func newTestGame() *Game {
	// Uninitialized sound manager: one-shots and frames are no-ops
	return New(audio.NewSoundManager())
}

func press(g *Game, r rune) bool {
	return g.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func TestNewGameStartState(t *testing.T) {
	g := newTestGame()

	if g.Shop().Money() != parameter.StartingMoney {
		t.Errorf("starting money = %d, want %d", g.Shop().Money(), parameter.StartingMoney)
	}
	if g.Paused() || g.ShopOpen() {
		t.Error("game starts paused or with shop open")
	}
	snap := g.Snapshot()
	if snap == nil || snap.Speed != 0 {
		t.Errorf("initial snapshot = %+v", snap)
	}
}

func TestQuitIntentStopsGame(t *testing.T) {
	g := newTestGame()
	if press(g, 'q') {
		t.Error("quit intent did not stop the game")
	}
	g2 := newTestGame()
	if g2.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)) {
		t.Error("ctrl-c did not stop the game")
	}
}

func TestAdvanceRunsFixedSteps(t *testing.T) {
	g := newTestGame()

	g.Advance(3 * parameter.FixedTimestep)
	got := g.Session().SessionTime()
	want := 3 * parameter.FixedTimestep
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("session time after 3 frames worth = %v, want %v", got, want)
	}

	// Leftover fraction stays in the accumulator
	g.Advance(parameter.FixedTimestep / 2)
	if g.Session().SessionTime() != want {
		t.Error("partial frame ran a step early")
	}
	g.Advance(parameter.FixedTimestep / 2)
	if math.Abs(g.Session().SessionTime()-(want+parameter.FixedTimestep)) > 1e-9 {
		t.Error("accumulated partial frames did not complete a step")
	}
}

func TestOversizedFrameIsClamped(t *testing.T) {
	g := newTestGame()
	g.Advance(10.0)
	if g.Session().SessionTime() > parameter.MaxFrameTime {
		t.Errorf("session advanced %v from one frame, clamp is %v",
			g.Session().SessionTime(), parameter.MaxFrameTime)
	}
}

func TestThrottleDrivesCar(t *testing.T) {
	g := newTestGame()

	for i := 0; i < 180; i++ {
		press(g, 'w')
		g.Step(parameter.FixedTimestep)
	}
	if speed := g.Snapshot().Speed; speed < 2 {
		t.Errorf("speed after 3s of throttle = %v", speed)
	}
	if g.Session().Distance() <= 0 {
		t.Error("no distance tracked while moving")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame()
	for i := 0; i < 60; i++ {
		press(g, 'w')
		g.Step(parameter.FixedTimestep)
	}
	posBefore := g.Snapshot().Position
	timeBefore := g.Session().SessionTime()

	press(g, 'p')
	for i := 0; i < 60; i++ {
		press(g, 'w')
		g.Step(parameter.FixedTimestep)
	}

	if g.Snapshot().Position != posBefore {
		t.Error("car moved while paused")
	}
	if g.Session().SessionTime() != timeBefore {
		t.Error("session time advanced while paused")
	}

	press(g, 'p')
	if g.Paused() {
		t.Error("second pause press did not resume")
	}
}

func TestShopOpensPausesAndNavigates(t *testing.T) {
	g := newTestGame()

	press(g, 'b')
	if !g.ShopOpen() || !g.Paused() {
		t.Fatal("shop toggle did not open and pause")
	}

	// Driving intents are swallowed while the shop is open
	press(g, 'e')
	if g.Snapshot().Engine.Gear != 1 {
		t.Error("gear shifted while shop open")
	}

	start := g.Cursor()
	press(g, 'j')
	if g.Cursor() == start {
		t.Error("shop-next did not move the cursor")
	}
	press(g, 'u')
	if g.Cursor() != start {
		t.Error("shop-prev did not move back")
	}

	// Backwards from the very first slot wraps to the last category
	press(g, 'u')
	if g.Cursor().Category != categoryCount-1 {
		t.Errorf("cursor after wrap = %+v", g.Cursor())
	}

	press(g, 'b')
	if g.ShopOpen() || g.Paused() {
		t.Error("shop toggle did not close and resume")
	}
}

func TestShopPurchaseAppliesUpgrade(t *testing.T) {
	g := newTestGame()
	g.Shop().SetMoney(20000)

	press(g, 'b')
	press(g, 'j') // First steering upgrade past stock
	g.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if g.Message() == "" {
		t.Error("purchase produced no message")
	}
	if g.Shop().Money() != 20000-500 {
		t.Errorf("money after purchase = %d", g.Shop().Money())
	}
	if g.Shop().Modifier(CategorySteering) != 1.15 {
		t.Errorf("steering modifier = %v", g.Shop().Modifier(CategorySteering))
	}

	// Message expires after its display window
	press(g, 'b')
	ticks := int(parameter.ShopMessageTime/parameter.FixedTimestep) + 2
	for i := 0; i < ticks; i++ {
		g.Step(parameter.FixedTimestep)
	}
	if g.Message() != "" {
		t.Errorf("message still shown: %q", g.Message())
	}
}

func TestResetRestoresSession(t *testing.T) {
	g := newTestGame()
	for i := 0; i < 120; i++ {
		press(g, 'w')
		g.Step(parameter.FixedTimestep)
	}

	press(g, 'r')

	snap := g.Snapshot()
	if snap.Speed != 0 {
		t.Errorf("reset snapshot speed = %v", snap.Speed)
	}
	if snap.Position.X != 0 || snap.Position.Y != 0 {
		t.Errorf("reset position = %+v", snap.Position)
	}
	if g.Session().SessionTime() != 0 || g.Session().Distance() != 0 {
		t.Error("session stats survived reset")
	}
}
