// Package game wires the simulation together: input controls feed the
// vehicle, the vehicle's snapshot feeds scoring, audio, and the HUD,
// all under a fixed-timestep accumulator loop.
package game

import (
	"github.com/gdamore/tcell/v2"

	"github.com/driftworks/driftline/audio"
	"github.com/driftworks/driftline/input"
	"github.com/driftworks/driftline/parameter"
	"github.com/driftworks/driftline/physics"
	"github.com/driftworks/driftline/scoring"
)

// ShopCursor is the selection state of the open shop overlay.
type ShopCursor struct {
	Category Category
	Index    int // Into ItemsByCategory(Category)
}

// Game owns one play session. Single goroutine: the main loop calls
// HandleEvent and Advance; everything else reads through Snapshot and
// the getters.
type Game struct {
	controls *input.Controls
	vehicle  *physics.Vehicle
	score    *scoring.DriftScore
	sound    *audio.SoundManager
	shop     *Shop
	session  *Session

	shopOpen     bool
	shopCursor   ShopCursor
	shopMessage  string
	messageTimer float64

	accumulator float64
}

func New(sound *audio.SoundManager) *Game {
	g := &Game{
		controls: input.NewControls(nil),
		vehicle:  physics.NewVehicle(0, 0),
		score:    scoring.NewDriftScore(),
		sound:    sound,
		shop:     NewShop(),
		session:  NewSession(),
	}
	g.shop.SetMoney(parameter.StartingMoney)
	return g
}

// HandleEvent feeds one terminal event through the key table and acts
// on the resulting intent. Returns false when the game should exit.
func (g *Game) HandleEvent(ev *tcell.EventKey) bool {
	intent := g.controls.HandleEvent(ev)

	if g.shopOpen {
		return g.handleShopIntent(intent)
	}

	switch intent {
	case input.IntentQuit:
		return false
	case input.IntentPause:
		g.session.TogglePause()
	case input.IntentReset:
		g.Reset()
	case input.IntentToggleMute:
		g.sound.ToggleMute()
	case input.IntentShiftUp:
		if g.session.Playing() {
			g.vehicle.ShiftUp()
			g.sound.PlayShift()
		}
	case input.IntentShiftDown:
		if g.session.Playing() {
			g.vehicle.ShiftDown()
			g.sound.PlayShift()
		}
	case input.IntentClutchKick:
		if g.session.Playing() {
			g.vehicle.TriggerClutchKick()
		}
	case input.IntentShopToggle:
		g.openShop()
	}
	return true
}

func (g *Game) handleShopIntent(intent input.Intent) bool {
	switch intent {
	case input.IntentQuit:
		return false
	case input.IntentShopToggle, input.IntentPause:
		g.closeShop()
	case input.IntentShopNext:
		g.moveShopCursor(1)
	case input.IntentShopPrev:
		g.moveShopCursor(-1)
	case input.IntentShopConfirm:
		item := g.shop.ItemsByCategory(g.shopCursor.Category)[g.shopCursor.Index]
		msg, ok := g.shop.Purchase(item)
		g.shopMessage = msg
		g.messageTimer = parameter.ShopMessageTime
		if ok {
			g.vehicle.ApplyUpgrades(g.shop.Modifiers())
			g.sound.PlayScore()
		}
	}
	return true
}

// moveShopCursor walks a flat cursor over every category's item list,
// wrapping across category boundaries in either direction.
func (g *Game) moveShopCursor(dir int) {
	c := &g.shopCursor
	c.Index += dir
	if c.Index < 0 {
		c.Category = (c.Category + categoryCount - 1) % categoryCount
		c.Index = len(g.shop.ItemsByCategory(c.Category)) - 1
	} else if c.Index >= len(g.shop.ItemsByCategory(c.Category)) {
		c.Category = (c.Category + 1) % categoryCount
		c.Index = 0
	}
}

func (g *Game) openShop() {
	g.shopOpen = true
	g.session.Pause()
	g.controls.Clear()
}

func (g *Game) closeShop() {
	g.shopOpen = false
	g.session.Resume()
	g.vehicle.ApplyUpgrades(g.shop.Modifiers())
}

// Advance consumes one wall-clock frame and runs as many fixed steps
// as it covers. Leftover time stays in the accumulator.
func (g *Game) Advance(frameTime float64) {
	if frameTime > parameter.MaxFrameTime {
		frameTime = parameter.MaxFrameTime
	}
	g.accumulator += frameTime
	for g.accumulator >= parameter.FixedTimestep {
		g.Step(parameter.FixedTimestep)
		g.accumulator -= parameter.FixedTimestep
	}
}

// Step runs exactly one fixed simulation tick.
func (g *Game) Step(dt float64) {
	g.controls.Update(dt)

	if g.messageTimer > 0 {
		g.messageTimer -= dt
		if g.messageTimer <= 0 {
			g.shopMessage = ""
		}
	}

	if g.shopOpen || g.session.Paused() {
		return
	}
	g.session.Update(dt)

	g.vehicle.SetThrottle(g.controls.Throttle())
	g.vehicle.SetBrake(g.controls.Brake())
	g.vehicle.SetSteering(g.controls.Steering())
	g.vehicle.SetHandbrake(g.controls.Handbrake())
	g.vehicle.Update(dt)

	snap := g.vehicle.Snapshot()
	g.score.Update(snap.IsDrifting, snap.DriftAngle, snap.Speed, dt)

	if earned := g.score.Consume() / parameter.PointsPerDollar; earned > 0 {
		g.shop.AddMoney(earned)
		g.sound.PlayScore()
	}

	g.session.AddDistance(snap.Speed * dt)
	g.sound.SetFrame(audioFrame(snap))
}

// audioFrame reduces a snapshot to what the engine voice needs.
func audioFrame(snap *physics.Snapshot) audio.Frame {
	skid := 0.0
	for _, t := range snap.Tires {
		if t.SmokeIntensity > skid {
			skid = t.SmokeIntensity
		}
	}
	return audio.Frame{
		RPMPercent:    snap.Engine.RPMPercentage,
		Throttle:      snap.Engine.Throttle,
		LimiterActive: snap.Engine.RevLimiterActive,
		BogIntensity:  snap.Engine.BogIntensity,
		SkidIntensity: skid,
	}
}

// Reset puts the car back at the origin and starts a fresh session.
// All-time best survives; upgrades stay installed.
func (g *Game) Reset() {
	g.vehicle.Reset(0, 0)
	g.score.Reset()
	g.session.Restart()
	g.controls.Clear()
	g.shopMessage = ""
	g.messageTimer = 0
}

// Read-side accessors for the HUD.

func (g *Game) Snapshot() *physics.Snapshot { return g.vehicle.Snapshot() }
func (g *Game) Stats() scoring.Stats        { return g.score.Stats() }
func (g *Game) Grade() string               { return g.score.Grade() }
func (g *Game) Shop() *Shop                 { return g.shop }
func (g *Game) ShopOpen() bool              { return g.shopOpen }
func (g *Game) Cursor() ShopCursor          { return g.shopCursor }
func (g *Game) Message() string             { return g.shopMessage }
func (g *Game) Paused() bool                { return g.session.Paused() }
func (g *Game) Session() *Session           { return g.session }
