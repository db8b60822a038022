package hud

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/driftworks/driftline/audio"
	"github.com/driftworks/driftline/game"
	"github.com/driftworks/driftline/parameter"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("simulation screen init: %v", err)
	}
	screen.SetSize(100, 30)
	return screen
}

func screenText(screen tcell.Screen) string {
	w, h := screen.Size()
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			sb.WriteRune(r)
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

func press(g *game.Game, r rune) {
	g.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func TestDrawTelemetryFrame(t *testing.T) {
	screen := newTestScreen(t)
	defer screen.Fini()

	g := game.New(audio.NewSoundManager())
	for i := 0; i < 120; i++ {
		press(g, 'w')
		g.Step(parameter.FixedTimestep)
	}

	h := New(screen)
	h.Draw(g)

	text := screenText(screen)
	for _, want := range []string{"RPM [", "GEAR 1", "MPH", "TIRES", "SCORE"} {
		if !strings.Contains(text, want) {
			t.Errorf("telemetry frame missing %q", want)
		}
	}
}

func TestDrawPauseOverlay(t *testing.T) {
	screen := newTestScreen(t)
	defer screen.Fini()

	g := game.New(audio.NewSoundManager())
	press(g, 'p')

	New(screen).Draw(g)

	if !strings.Contains(screenText(screen), "PAUSED") {
		t.Error("pause overlay not drawn")
	}
}

func TestDrawShopScreen(t *testing.T) {
	screen := newTestScreen(t)
	defer screen.Fini()

	g := game.New(audio.NewSoundManager())
	press(g, 'b')

	New(screen).Draw(g)

	text := screenText(screen)
	for _, want := range []string{"PARTS SHOP", "STEERING", "ENGINE", "TIRES", "Turbo Kit"} {
		if !strings.Contains(text, want) {
			t.Errorf("shop screen missing %q", want)
		}
	}
	// Telemetry is replaced by the shop, not drawn under it
	if strings.Contains(text, "RPM [") {
		t.Error("telemetry drawn behind shop screen")
	}
}

func TestDrawSurvivesTinyScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("simulation screen init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 4)

	g := game.New(audio.NewSoundManager())
	g.Step(parameter.FixedTimestep)

	// Must not panic with no room for the panels
	New(screen).Draw(g)
}
