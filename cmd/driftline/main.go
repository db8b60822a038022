// Interactive drift simulator in the terminal. WASD or arrows to
// drive, space handbrake, e/c gears, k clutch kick, b shop, p pause.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/driftworks/driftline/audio"
	"github.com/driftworks/driftline/game"
	"github.com/driftworks/driftline/hud"
)

type app struct {
	screen tcell.Screen
	sound  *audio.SoundManager
	game   *game.Game
	hud    *hud.HUD
}

func newApp() (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		// Non-fatal, the sim can run without sound
		log.Printf("Audio initialization failed: %v", err)
	}

	return &app{
		screen: screen,
		sound:  sound,
		game:   game.New(sound),
		hud:    hud.New(screen),
	}, nil
}

func (a *app) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- a.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.game.HandleEvent(ev) {
					return
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}

		case <-ticker.C:
			now := time.Now()
			a.game.Advance(now.Sub(last).Seconds())
			last = now
			a.hud.Draw(a.game)
		}
	}
}

func (a *app) cleanup() {
	a.sound.Cleanup()
	a.screen.Fini()
}

func main() {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.cleanup()

	a.run()
}
