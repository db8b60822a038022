// Package hud draws the telemetry overlay: RPM gauge, gear and speed,
// drift readout, tire panel, scoring, and the shop screen.
package hud

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/driftworks/driftline/game"
	"github.com/driftworks/driftline/physics"
	"github.com/driftworks/driftline/vmath"
)

const rpmBarWidth = 40

var (
	styleDefault = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGood    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWarn    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHot     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleDrift   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleMoney   = tcell.StyleDefault.Foreground(tcell.ColorLightGreen)
)

// HUD renders onto a tcell screen. It only reads snapshots and stats;
// it never touches live simulation state.
type HUD struct {
	screen tcell.Screen
}

func New(screen tcell.Screen) *HUD {
	return &HUD{screen: screen}
}

// Draw renders one full frame.
func (h *HUD) Draw(g *game.Game) {
	h.screen.Clear()

	if g.ShopOpen() {
		h.drawShop(g)
		h.screen.Show()
		return
	}

	snap := g.Snapshot()
	h.drawGround(snap)
	h.drawCar(snap)
	h.drawEngine(snap)
	h.drawDrift(snap, g)
	h.drawTires(snap)
	h.drawScore(g)

	if msg := g.Message(); msg != "" {
		w, hgt := h.screen.Size()
		h.text((w-len(msg))/2, hgt-3, msg, styleMoney)
	}
	if g.Paused() {
		h.drawPause()
	}

	h.screen.Show()
}

func (h *HUD) text(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		h.screen.SetContent(x+i, y, r, nil, style)
	}
}

// drawGround scrolls a dot grid under the car so motion reads even
// without a world to render.
func (h *HUD) drawGround(snap *physics.Snapshot) {
	w, hgt := h.screen.Size()
	const spacing = 6
	offX := int(math.Mod(snap.Position.X, spacing))
	offY := int(math.Mod(snap.Position.Y, spacing))
	for y := 6; y < hgt-8; y++ {
		for x := 0; x < w; x++ {
			if (x+offX)%spacing == 0 && (y+offY)%(spacing/2) == 0 {
				h.screen.SetContent(x, y, '·', nil, styleDim)
			}
		}
	}
}

// drawCar places a heading glyph at screen center with a velocity tail
// while drifting.
func (h *HUD) drawCar(snap *physics.Snapshot) {
	w, hgt := h.screen.Size()
	cx, cy := w/2, (hgt-2)/2

	glyph := headingGlyph(snap.Rotation)
	style := styleDefault.Bold(true)
	if snap.IsDrifting {
		style = styleDrift
		// Tail opposite the velocity vector
		tail := snap.Velocity.Normalize().Scale(-1)
		for i := 1; i <= 3; i++ {
			tx := cx + int(math.Round(tail.X*float64(i)*2))
			ty := cy + int(math.Round(tail.Y*float64(i)))
			h.screen.SetContent(tx, ty, '░', nil, styleDim)
		}
	}
	h.screen.SetContent(cx, cy, glyph, nil, style)
}

func headingGlyph(rotation float64) rune {
	dirs := []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	sector := vmath.NormalizeAngle(rotation) + math.Pi/8
	idx := int(math.Floor(sector/(math.Pi/4))) % 8
	if idx < 0 {
		idx += 8
	}
	return dirs[idx]
}

// drawEngine renders the RPM bar with the limiter-bounce needle, gear,
// and speed.
func (h *HUD) drawEngine(snap *physics.Snapshot) {
	e := snap.Engine

	// Needle position includes the post-cut bounce excursion
	pct := vmath.Clamp(e.RPMPercentage+e.RevLimiterBounce, 0, 1.05)
	filled := int(pct * rpmBarWidth)

	h.text(2, 1, "RPM [", styleDefault)
	for i := 0; i < rpmBarWidth; i++ {
		style := styleGood
		if i > rpmBarWidth*3/4 {
			style = styleWarn
		}
		if i > rpmBarWidth*9/10 {
			style = styleHot
		}
		r := ' '
		if i < filled {
			r = '|'
		}
		h.screen.SetContent(7+i, 1, r, nil, style)
	}
	h.text(7+rpmBarWidth, 1, "]", styleDefault)

	status := fmt.Sprintf(" %5.0f", e.RPM)
	style := styleDefault
	if e.RevLimiterActive {
		status += " CUT"
		style = styleHot
	} else if e.IsBogging {
		status += " BOG"
		style = styleWarn
	}
	h.text(9+rpmBarWidth, 1, status, style)

	gear := "N"
	switch {
	case e.Gear > 0:
		gear = fmt.Sprintf("%d", e.Gear)
	case e.Gear < 0:
		gear = "R"
	}
	h.text(2, 2, fmt.Sprintf("GEAR %s   %5.1f MPH   %4.2fg", gear, snap.SpeedMph, snap.LateralG), styleDefault)
}

func (h *HUD) drawDrift(snap *physics.Snapshot, g *game.Game) {
	if snap.IsDrifting {
		line := fmt.Sprintf("%s  %+6.1f°  %4.1fs", g.Grade(), snap.DriftAngle, snap.DriftTime)
		h.text(2, 4, line, styleDrift)
	} else if snap.IsOversteering {
		h.text(2, 4, "OVERSTEER", styleWarn)
	} else if snap.IsUndersteering {
		h.text(2, 4, "UNDERSTEER", styleWarn)
	}
}

// drawTires shows the four corners as a 2x2 panel with temperature
// color and slip markers.
func (h *HUD) drawTires(snap *physics.Snapshot) {
	_, hgt := h.screen.Size()
	base := hgt - 7
	h.text(2, base-1, "TIRES", styleDim)

	layout := [physics.TireCount]struct{ x, y int }{
		physics.FrontLeft:  {2, base},
		physics.FrontRight: {12, base},
		physics.RearLeft:   {2, base + 1},
		physics.RearRight:  {12, base + 1},
	}
	for pos, at := range layout {
		t := snap.Tires[pos]
		style := styleGood
		if t.Temperature > 100 {
			style = styleWarn
		}
		if t.Temperature > 130 {
			style = styleHot
		}
		marker := ' '
		switch {
		case t.IsLocked:
			marker = 'L'
		case t.IsSpinning:
			marker = 'S'
		case t.LeavingMarks:
			marker = '~'
		}
		h.text(at.x, at.y, fmt.Sprintf("%3.0f°%c", t.Temperature, marker), style)
	}
}

func (h *HUD) drawScore(g *game.Game) {
	w, _ := h.screen.Size()
	stats := g.Stats()

	h.text(w-26, 1, fmt.Sprintf("$%d", g.Shop().Money()), styleMoney)
	h.text(w-26, 2, fmt.Sprintf("SCORE %d", stats.TotalScore), styleDefault)
	if stats.InDrift {
		h.text(w-26, 3, fmt.Sprintf("+%0.0f", stats.CurrentScore), styleDrift)
	}
	if stats.ComboMultiplier > 1 {
		bar := int(stats.ComboRemaining * 10)
		h.text(w-26, 4, fmt.Sprintf("x%d %s", stats.ComboMultiplier,
			string(repeatRune('=', bar))), styleWarn)
	}
	h.text(w-26, 5, fmt.Sprintf("BEST %d", stats.SessionBest), styleDim)
}

func repeatRune(r rune, n int) []rune {
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func (h *HUD) drawPause() {
	w, hgt := h.screen.Size()
	msg := "PAUSED"
	h.text((w-len(msg))/2, hgt/2, msg, styleDefault.Bold(true).Reverse(true))
	hint := "p resume   r reset   q quit"
	h.text((w-len(hint))/2, hgt/2+2, hint, styleDim)
}

// drawShop renders the full-screen parts list grouped by category, with
// the cursor row reversed.
func (h *HUD) drawShop(g *game.Game) {
	shop := g.Shop()
	cursor := g.Cursor()

	h.text(2, 1, fmt.Sprintf("PARTS SHOP   $%d", shop.Money()), styleMoney.Bold(true))
	h.text(2, 2, "tab/j next   shift-tab/u prev   enter buy/equip   esc/b close", styleDim)

	row := 4
	for c := game.Category(0); c < game.CategoryCount(); c++ {
		h.text(2, row, c.String(), styleWarn.Bold(true))
		row++
		for i, it := range shop.ItemsByCategory(c) {
			style := styleDefault
			if it.Equipped {
				style = styleGood
			} else if !it.Owned && it.Price > shop.Money() {
				style = styleDim
			}
			if c == cursor.Category && i == cursor.Index {
				style = style.Reverse(true)
			}

			tag := "      "
			switch {
			case it.Equipped:
				tag = "  [EQ]"
			case it.Owned:
				tag = " [OWN]"
			case it.Price > 0:
				tag = fmt.Sprintf("%6d", it.Price)
			}
			h.text(4, row, fmt.Sprintf("%-24s %s  %s", it.Name, tag, it.Desc), style)
			row++
		}
		row++
	}

	if msg := g.Message(); msg != "" {
		h.text(2, row, msg, styleMoney)
	}
}
