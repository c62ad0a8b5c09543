package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSystem snapshots the cursor keys once per tick
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds the input for one tick.
// Level fields are true while the key is held; Pressed fields only on the
// tick the key goes down.
type InputState struct {
	Left        bool
	Right       bool
	Up          bool
	Down        bool
	UpPressed   bool
	DownPressed bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:        ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:       ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:          ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:        ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		UpPressed:   inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		DownPressed: inpututil.IsKeyJustPressed(ebiten.KeyArrowDown),
	}
}

// Axes converts held keys to -1/0/+1 per axis. Left wins over right and
// up wins over down when both are held.
func (in InputState) Axes() (x, y int) {
	switch {
	case in.Left:
		x = -1
	case in.Right:
		x = 1
	}
	switch {
	case in.Up:
		y = -1
	case in.Down:
		y = 1
	}
	return x, y
}
