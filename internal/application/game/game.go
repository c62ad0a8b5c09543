// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/salmonrun/internal/application/scene"
	"github.com/younwookim/salmonrun/internal/application/session"
	"github.com/younwookim/salmonrun/internal/application/state"
	"github.com/younwookim/salmonrun/internal/infrastructure/log"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	scenes  map[state.GameState]scene.Scene
	current scene.Scene
	screenW int
	screenH int
	ticker  *session.Ticker
}

// New registers scenes and activates the one for initial.
// The initial scene's OnEnter is called immediately.
func New(initial state.GameState, screenW, screenH int, scenes ...scene.Scene) (*Game, error) {
	g := &Game{
		scenes:  make(map[state.GameState]scene.Scene, len(scenes)),
		screenW: screenW,
		screenH: screenH,
		ticker:  session.NewTicker(60), // Default to 60 TPS
	}
	for _, s := range scenes {
		if _, dup := g.scenes[s.ID()]; dup {
			return nil, fmt.Errorf("scene %s registered twice", s.ID())
		}
		g.scenes[s.ID()] = s
	}

	first, ok := g.scenes[initial]
	if !ok {
		return nil, fmt.Errorf("no scene registered for %s", initial)
	}
	g.current = first
	g.current.OnEnter()
	return g, nil
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	trigger, err := g.current.Update(g.ticker.Next())
	if err != nil {
		return err
	}
	if trigger == state.TriggerNone {
		return nil
	}
	return g.transition(trigger)
}

func (g *Game) transition(trigger state.Trigger) error {
	from := g.current.ID()
	to, err := state.Next(from, trigger)
	if err != nil {
		return fmt.Errorf("failed to transition: %w", err)
	}
	next, ok := g.scenes[to]
	if !ok {
		return fmt.Errorf("no scene registered for %s", to)
	}

	log.Info("scene %s -> %s (%s)", from, to, trigger)
	g.current.OnExit()
	g.current = next
	g.current.OnEnter()
	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Current returns the state of the active scene
func (g *Game) Current() state.GameState {
	return g.current.ID()
}

// SetTPS sets the tick rate the steps passed to scenes add up to.
// Call it alongside ebiten.SetTPS.
func (g *Game) SetTPS(tps int) {
	g.ticker = session.NewTicker(tps)
}
