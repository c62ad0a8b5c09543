// Package scene defines the Scene interface for game screens.
//
// Each screen (title, playing, game over, clear) implements Scene to handle
// its own update logic and rendering. Scenes never construct each other:
// they return a state.Trigger and the game looks the next scene up in its
// registry.
package scene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/salmonrun/internal/application/state"
)

// Scene represents a game screen.
//
// The game loop delegates Update and Draw calls to the current scene.
type Scene interface {
	// ID returns the state this scene is registered under.
	ID() state.GameState

	// Update updates the scene state by one fixed tick of dt.
	// Returns a trigger other than TriggerNone to request a transition.
	// Returns an error to terminate the game.
	Update(dt time.Duration) (state.Trigger, error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called each time the scene becomes current.
	OnEnter()

	// OnExit is called when another scene becomes current.
	OnExit()
}
