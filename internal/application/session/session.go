// Package session implements one play of the game as a deterministic state
// machine.
//
// A Session owns the player, obstacles, goal, countdown and timers. It does
// not read devices, play audio or draw: the playing scene feeds it one input
// snapshot per tick through Step and carries out the Events it returns.
// Given the same seed and the same inputs, a session always reaches the same
// outcome, which is what replays rely on.
package session

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/younwookim/salmonrun/internal/application/state"
	"github.com/younwookim/salmonrun/internal/application/system"
	"github.com/younwookim/salmonrun/internal/ecs"
	"github.com/younwookim/salmonrun/internal/infrastructure/config"
)

// Phase is the lifecycle tag of a session. Lost and Won are terminal.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseLost
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "Running"
	case PhaseLost:
		return "Lost"
	case PhaseWon:
		return "Won"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further gameplay can happen in this phase
func (p Phase) Terminal() bool {
	return p != PhaseRunning
}

// EventKind identifies a side effect requested by the session
type EventKind int

const (
	EventMoveCue EventKind = iota
	EventFailCue
	EventStopAudio
	EventTransition
)

func (k EventKind) String() string {
	switch k {
	case EventMoveCue:
		return "MoveCue"
	case EventFailCue:
		return "FailCue"
	case EventStopAudio:
		return "StopAudio"
	case EventTransition:
		return "Transition"
	default:
		return "Unknown"
	}
}

// Event is a side effect for the driver. Trigger is set for EventTransition.
type Event struct {
	Kind    EventKind
	Trigger state.Trigger
}

// Session is one play from spawn to win or loss
type Session struct {
	config *config.GameConfig
	seed   int64
	world  *ecs.World
	clock  *Clock

	movement   *system.MovementSystem
	spawner    *system.SpawnSystem
	collisions *system.CollisionSystem
	animation  *system.AnimationSystem

	spawnTimer     *Timer
	countdownTimer *Timer

	phase         Phase
	physicsPaused bool
	remaining     int
	readout       string
	spawned       int

	events []Event
}

// New starts a session: player at the start position, full countdown and
// the normal spawn interval.
func New(cfg *config.GameConfig, seed int64) *Session {
	s := &Session{
		config:     cfg,
		seed:       seed,
		world:      ecs.NewWorld(),
		clock:      NewClock(),
		movement:   system.NewMovementSystem(cfg),
		spawner:    system.NewSpawnSystem(cfg, rand.New(rand.NewSource(seed))),
		collisions: system.NewCollisionSystem(cfg),
		animation:  system.NewAnimationSystem(),
		phase:      PhaseRunning,
		remaining:  cfg.Countdown.Seconds,
	}

	s.spawner.SpawnPlayer(s.world)
	s.collisions.Sync(s.world)

	// Registration order is firing order: spawns land before the countdown
	// on ticks where both are due.
	s.spawnTimer = s.clock.Every(cfg.Obstacle.Interval(), s.spawnObstacle)
	s.countdownTimer = s.clock.Every(cfg.Countdown.Tick(), s.tickCountdown)

	s.setReadout(s.remaining)
	return s
}

// Step advances the session by dt with one input snapshot. Timers fire
// first, then input steers the player, then bodies move and overlaps
// resolve. The returned events are valid until the next call.
func (s *Session) Step(dt time.Duration, in system.InputState) []Event {
	s.events = nil
	if s.phase == PhaseWon {
		return nil
	}

	s.clock.Advance(dt)

	if s.phase == PhaseRunning {
		s.update(dt, in)
	}

	if !s.physicsPaused {
		s.movement.Integrate(s.world, dt)
		s.movement.CullObstacles(s.world)
		s.collisions.Sync(s.world)
		s.resolveOverlaps()
	}

	return s.events
}

func (s *Session) update(dt time.Duration, in system.InputState) {
	player := s.world.PlayerID
	s.animation.Play(s.world, player)
	s.animation.Update(s.world, dt)

	if in.UpPressed {
		s.emit(Event{Kind: EventMoveCue})
	}
	if in.DownPressed {
		s.emit(Event{Kind: EventMoveCue})
	}

	s.movement.Steer(s.world, in)
}

func (s *Session) resolveOverlaps() {
	if s.phase != PhaseRunning {
		return
	}
	if len(s.collisions.PlayerOverlaps(s.world, system.TagObstacle)) > 0 {
		s.lose()
		return
	}
	if s.world.GoalID != 0 && len(s.collisions.PlayerOverlaps(s.world, system.TagGoal)) > 0 {
		s.win()
	}
}

// finish moves a running session into a terminal phase. It is the only
// place the phase changes, and it refuses to leave a terminal phase.
func (s *Session) finish(p Phase) bool {
	if s.phase.Terminal() || !p.Terminal() {
		return false
	}
	s.phase = p
	return true
}

func (s *Session) lose() {
	if !s.finish(PhaseLost) {
		return
	}
	s.emit(Event{Kind: EventStopAudio})
	s.emit(Event{Kind: EventFailCue})
	s.physicsPaused = true

	player := s.world.PlayerID
	tint, err := config.ParseHexColor(s.config.Player.Tint)
	if err == nil {
		sprite := s.world.Sprite[player]
		sprite.Tint = tint
		sprite.Tinted = true
		s.world.Sprite[player] = sprite
	}
	s.animation.Stop(s.world, player, 0)

	s.clock.After(s.config.GameOver.Delay(), func() {
		s.emit(Event{Kind: EventTransition, Trigger: state.TriggerLose})
	})
}

func (s *Session) win() {
	if !s.finish(PhaseWon) {
		return
	}
	s.emit(Event{Kind: EventTransition, Trigger: state.TriggerWin})
}

func (s *Session) spawnObstacle() {
	if s.phase != PhaseRunning {
		return
	}
	s.spawner.SpawnObstacle(s.world)
	s.spawned++
}

func (s *Session) tickCountdown() {
	if s.phase != PhaseRunning {
		return
	}
	s.remaining--
	s.setReadout(s.remaining)

	if s.remaining == s.config.Countdown.FastThreshold {
		s.spawnTimer.SetDelay(s.config.Obstacle.FastInterval())
	}

	if s.remaining <= 0 {
		s.remaining = 0
		s.setReadout(0)
		s.countdownTimer.Remove()
		s.spawnGoal()
	}
}

func (s *Session) spawnGoal() {
	if s.phase != PhaseRunning || s.world.GoalID != 0 {
		return
	}
	s.spawner.SpawnGoal(s.world)
	s.collisions.Sync(s.world)
}

func (s *Session) setReadout(seconds int) {
	s.readout = fmt.Sprintf(s.config.UI.ReadoutFormat, seconds)
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// Phase returns the lifecycle tag
func (s *Session) Phase() Phase {
	return s.phase
}

// Seed returns the RNG seed the session was created with
func (s *Session) Seed() int64 {
	return s.seed
}

// World exposes entities for rendering. Callers must not mutate it.
func (s *Session) World() *ecs.World {
	return s.world
}

// Remaining returns the countdown in seconds
func (s *Session) Remaining() int {
	return s.remaining
}

// Readout returns the countdown text
func (s *Session) Readout() string {
	return s.readout
}

// SpawnInterval returns the current obstacle period
func (s *Session) SpawnInterval() time.Duration {
	return s.spawnTimer.Delay()
}

// CountdownActive reports whether the countdown timer is still scheduled
func (s *Session) CountdownActive() bool {
	return s.countdownTimer.Active()
}

// PhysicsPaused reports whether bodies have stopped moving
func (s *Session) PhysicsPaused() bool {
	return s.physicsPaused
}

// Elapsed returns game time since the session started
func (s *Session) Elapsed() time.Duration {
	return s.clock.Now()
}

// Spawned returns how many obstacles have been created
func (s *Session) Spawned() int {
	return s.spawned
}
