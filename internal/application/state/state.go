// Package state names the scenes of the game and the transitions between them.
package state

import (
	"errors"
	"fmt"
)

// GameState represents the active scene of the game
type GameState int

const (
	StateTitle GameState = iota
	StatePlaying
	StateGameOver
	StateClear
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateTitle:
		return "Title"
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	case StateClear:
		return "Clear"
	default:
		return "Unknown"
	}
}

// Trigger is a named request to leave the current scene
type Trigger int

// Triggers in scene order: title button, obstacle hit (after the failure
// delay), goal reached, game over button, clear button.
const (
	TriggerNone Trigger = iota
	TriggerStart
	TriggerLose
	TriggerWin
	TriggerRetry
	TriggerContinue
)

func (t Trigger) String() string {
	switch t {
	case TriggerNone:
		return "None"
	case TriggerStart:
		return "Start"
	case TriggerLose:
		return "Lose"
	case TriggerWin:
		return "Win"
	case TriggerRetry:
		return "Retry"
	case TriggerContinue:
		return "Continue"
	default:
		return "Unknown"
	}
}

// ErrInvalidTransition is returned by Next for a trigger the state does not accept
var ErrInvalidTransition = errors.New("invalid transition")

type edge struct {
	from    GameState
	trigger Trigger
}

var transitions = map[edge]GameState{
	{StateTitle, TriggerStart}:    StatePlaying,
	{StatePlaying, TriggerLose}:   StateGameOver,
	{StatePlaying, TriggerWin}:    StateClear,
	{StateGameOver, TriggerRetry}: StatePlaying,
	{StateClear, TriggerContinue}: StateTitle,
}

// Next returns the state reached from "from" by trigger
func Next(from GameState, trigger Trigger) (GameState, error) {
	to, ok := transitions[edge{from, trigger}]
	if !ok {
		return from, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, trigger, from)
	}
	return to, nil
}
