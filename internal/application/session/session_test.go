package session

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/salmonrun/internal/application/state"
	"github.com/younwookim/salmonrun/internal/application/system"
	"github.com/younwookim/salmonrun/internal/ecs"
	"github.com/younwookim/salmonrun/internal/infrastructure/config"
)

// dt divides every configured period evenly
const dt = 10 * time.Millisecond

// safeConfig parks obstacles at the spawn column so an idle player is
// never hit.
func safeConfig() *config.GameConfig {
	cfg := config.Default()
	cfg.Obstacle.VelocityX = 0
	return cfg
}

// run steps s for d with no input and returns every event emitted
func run(s *Session, d time.Duration) []Event {
	var events []Event
	for i := 0; i < int(d/dt); i++ {
		events = append(events, s.Step(dt, system.InputState{})...)
	}
	return events
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func transitions(events []Event) []state.Trigger {
	var out []state.Trigger
	for _, e := range events {
		if e.Kind == EventTransition {
			out = append(out, e.Trigger)
		}
	}
	return out
}

func countGoals(s *Session) int {
	return len(s.World().IsGoal)
}

func TestNew(t *testing.T) {
	cfg := config.Default()
	s := New(cfg, 1)

	assert.Equal(t, PhaseRunning, s.Phase())
	assert.Equal(t, 30, s.Remaining())
	assert.Equal(t, "낳기까지: 30s", s.Readout())
	assert.Equal(t, 400*time.Millisecond, s.SpawnInterval())
	assert.True(t, s.CountdownActive())
	assert.False(t, s.PhysicsPaused())
	assert.Equal(t, int64(1), s.Seed())

	w := s.World()
	require.NotZero(t, w.PlayerID)
	assert.Equal(t, ecs.Position{X: 200 * ecs.PositionScale, Y: 400 * ecs.PositionScale}, w.Position[w.PlayerID])
	assert.Empty(t, w.Obstacles())
	assert.Zero(t, w.GoalID)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "Running", PhaseRunning.String())
	assert.Equal(t, "Lost", PhaseLost.String())
	assert.Equal(t, "Won", PhaseWon.String())
	assert.False(t, PhaseRunning.Terminal())
	assert.True(t, PhaseLost.Terminal())
	assert.True(t, PhaseWon.Terminal())
}

func TestSession_CountdownOncePerSecond(t *testing.T) {
	s := New(safeConfig(), 1)

	run(s, 990*time.Millisecond)
	assert.Equal(t, 30, s.Remaining())

	run(s, dt)
	assert.Equal(t, 29, s.Remaining())
	assert.Equal(t, "낳기까지: 29s", s.Readout())

	last := s.Remaining()
	decrements := 1
	for i := 0; i < int(35*time.Second/dt); i++ {
		s.Step(dt, system.InputState{})
		require.GreaterOrEqual(t, s.Remaining(), 0)
		if s.Remaining() != last {
			assert.Equal(t, last-1, s.Remaining())
			decrements++
			last = s.Remaining()
		}
	}

	assert.Equal(t, 30, decrements)
	assert.Equal(t, 0, s.Remaining())
	assert.Equal(t, "낳기까지: 0s", s.Readout())
}

func TestSession_SpawnIntervalChangesAtThreshold(t *testing.T) {
	s := New(safeConfig(), 1)

	run(s, 14*time.Second)
	assert.Equal(t, 16, s.Remaining())
	assert.Equal(t, 400*time.Millisecond, s.SpawnInterval())

	run(s, time.Second)
	assert.Equal(t, 15, s.Remaining())
	assert.Equal(t, 200*time.Millisecond, s.SpawnInterval())

	run(s, 5*time.Second)
	assert.Equal(t, 200*time.Millisecond, s.SpawnInterval())
}

func TestSession_ThresholdIsExactMatch(t *testing.T) {
	s := New(safeConfig(), 1)
	s.remaining = 15

	// skipping past the threshold never switches the interval
	run(s, time.Second)
	assert.Equal(t, 14, s.Remaining())
	assert.Equal(t, 400*time.Millisecond, s.SpawnInterval())
}

func TestSession_SpawnsObstacles(t *testing.T) {
	s := New(safeConfig(), 1)

	run(s, time.Second)
	assert.Equal(t, 2, s.Spawned())
	assert.Len(t, s.World().Obstacles(), 2)

	cfg := config.Default()
	for _, id := range s.World().Obstacles() {
		pos := s.World().Position[id]
		assert.Equal(t, ecs.ToIU(cfg.Obstacle.SpawnX), pos.X)
		assert.GreaterOrEqual(t, pos.Y, ecs.ToIU(cfg.Obstacle.MinY))
		assert.LessOrEqual(t, pos.Y, ecs.ToIU(cfg.Obstacle.MinY+cfg.Obstacle.RangeY))
	}
}

func TestSession_ObstaclesLeaveAndAreDestroyed(t *testing.T) {
	s := New(config.Default(), 1)
	w := s.World()
	cfg := config.Default()

	// far from the player's row
	id := w.CreateObstacle(20, 50, ecs.ToIU(cfg.Obstacle.VelocityX), system.ObstacleHitbox(cfg), cfg.Obstacle.Scale)

	s.Step(dt, system.InputState{})
	assert.True(t, w.Exists(id))

	run(s, 200*time.Millisecond)
	assert.False(t, w.Exists(id))
}

func TestSession_GoalSpawnsOnceAtZero(t *testing.T) {
	s := New(safeConfig(), 1)

	run(s, 29*time.Second)
	assert.Zero(t, countGoals(s))
	assert.True(t, s.CountdownActive())

	run(s, time.Second)
	assert.Equal(t, 0, s.Remaining())
	assert.Equal(t, 1, countGoals(s))
	assert.False(t, s.CountdownActive())

	goal := s.World().GoalID
	cfg := config.Default()
	assert.Equal(t, ecs.Position{X: ecs.ToIU(cfg.Goal.X), Y: ecs.ToIU(cfg.Goal.Y)}, s.World().Position[goal])

	run(s, 10*time.Second)
	assert.Equal(t, 1, countGoals(s))
	assert.Equal(t, goal, s.World().GoalID)
	assert.Equal(t, 0, s.Remaining())
}

func TestSession_IdleThirtySeconds(t *testing.T) {
	s := New(safeConfig(), 7)

	events := run(s, 30*time.Second)

	assert.Equal(t, PhaseRunning, s.Phase())
	assert.Equal(t, "낳기까지: 0s", s.Readout())
	assert.NotZero(t, s.World().GoalID)
	assert.Empty(t, transitions(events))
	assert.Equal(t, 30*time.Second, s.Elapsed())
}

func TestSession_CountdownAtTickRate(t *testing.T) {
	cfg := safeConfig()
	s := New(cfg, 1)
	ticker := NewTicker(cfg.Display.Framerate)
	idle := system.InputState{}

	for i := 0; i < 59; i++ {
		s.Step(ticker.Next(), idle)
	}
	assert.Equal(t, 30, s.Remaining())

	s.Step(ticker.Next(), idle)
	assert.Equal(t, 29, s.Remaining())
	assert.Equal(t, time.Second, s.Elapsed())

	for i := 60; i < 1799; i++ {
		s.Step(ticker.Next(), idle)
	}
	assert.Equal(t, 1, s.Remaining())
	assert.Zero(t, countGoals(s))

	s.Step(ticker.Next(), idle)
	assert.Equal(t, 0, s.Remaining())
	assert.Equal(t, 1, countGoals(s))
	assert.Equal(t, 30*time.Second, s.Elapsed())
}

func TestSession_GameOverDelayAtTickRate(t *testing.T) {
	cfg := safeConfig()
	s := New(cfg, 1)
	w := s.World()
	ticker := NewTicker(cfg.Display.Framerate)
	idle := system.InputState{}

	for i := 0; i < 7; i++ {
		s.Step(ticker.Next(), idle)
	}
	w.CreateObstacle(cfg.Player.StartX, cfg.Player.StartY, 0, system.ObstacleHitbox(cfg), cfg.Obstacle.Scale)
	s.Step(ticker.Next(), idle)
	require.Equal(t, PhaseLost, s.Phase())

	for i := 0; i < 59; i++ {
		assert.Empty(t, transitions(s.Step(ticker.Next(), idle)), "tick %d", i+1)
	}
	assert.Equal(t, []state.Trigger{state.TriggerLose}, transitions(s.Step(ticker.Next(), idle)))
}

func TestSession_CollisionAtFiveSeconds(t *testing.T) {
	cfg := safeConfig()
	s := New(cfg, 1)
	w := s.World()

	run(s, 5*time.Second)
	require.Equal(t, 25, s.Remaining())

	w.CreateObstacle(cfg.Player.StartX, cfg.Player.StartY, 0, system.ObstacleHitbox(cfg), cfg.Obstacle.Scale)
	events := s.Step(dt, system.InputState{})

	assert.Equal(t, []EventKind{EventStopAudio, EventFailCue}, kinds(events))
	assert.Equal(t, PhaseLost, s.Phase())
	assert.True(t, s.PhysicsPaused())

	player := w.PlayerID
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, w.Sprite[player].Tint)
	assert.True(t, w.Sprite[player].Tinted)
	assert.Equal(t, 0, w.Sprite[player].Frame)
	assert.False(t, w.Animation[player].Playing)

	// nothing for just under a second
	assert.Empty(t, run(s, 990*time.Millisecond))

	events = s.Step(dt, system.InputState{})
	assert.Equal(t, []state.Trigger{state.TriggerLose}, transitions(events))

	// once only
	assert.Empty(t, run(s, 3*time.Second))
}

func TestSession_FrozenAfterLoss(t *testing.T) {
	cfg := config.Default()
	s := New(cfg, 3)
	w := s.World()

	drifting := w.CreateObstacle(1000, 50, ecs.ToIU(cfg.Obstacle.VelocityX), system.ObstacleHitbox(cfg), cfg.Obstacle.Scale)
	w.CreateObstacle(cfg.Player.StartX, cfg.Player.StartY, 0, system.ObstacleHitbox(cfg), cfg.Obstacle.Scale)
	s.Step(dt, system.InputState{})
	require.Equal(t, PhaseLost, s.Phase())

	player := w.PlayerID
	playerPos := w.Position[player]
	playerVel := w.Velocity[player]
	driftPos := w.Position[drifting]
	remaining := s.Remaining()
	spawned := s.Spawned()

	held := system.InputState{Right: true, Down: true, DownPressed: true}
	for i := 0; i < int(3*time.Second/dt); i++ {
		for _, e := range s.Step(dt, held) {
			assert.NotEqual(t, EventMoveCue, e.Kind)
		}
	}

	assert.Equal(t, playerPos, w.Position[player])
	assert.Equal(t, playerVel, w.Velocity[player])
	assert.Equal(t, driftPos, w.Position[drifting])
	assert.Equal(t, remaining, s.Remaining())
	assert.Equal(t, spawned, s.Spawned())
	assert.Equal(t, PhaseLost, s.Phase())
}

func TestSession_ReachingGoalWins(t *testing.T) {
	s := New(safeConfig(), 1)
	w := s.World()

	run(s, 30*time.Second)
	require.NotZero(t, w.GoalID)

	w.Position[w.PlayerID] = w.Position[w.GoalID]
	events := s.Step(dt, system.InputState{})

	assert.Equal(t, PhaseWon, s.Phase())
	assert.Equal(t, []state.Trigger{state.TriggerWin}, transitions(events))
	assert.Nil(t, s.Step(dt, system.InputState{}))
}

func TestSession_AtMostOneOutcome(t *testing.T) {
	cfg := safeConfig()
	s := New(cfg, 1)
	w := s.World()

	w.CreateGoal(cfg.Player.StartX, cfg.Player.StartY, system.GoalHitbox(cfg), cfg.Goal.Scale)
	w.CreateObstacle(cfg.Player.StartX, cfg.Player.StartY, 0, system.ObstacleHitbox(cfg), cfg.Obstacle.Scale)

	events := s.Step(dt, system.InputState{})
	events = append(events, run(s, 2*time.Second)...)

	assert.Equal(t, PhaseLost, s.Phase())
	assert.Equal(t, []state.Trigger{state.TriggerLose}, transitions(events))
}

func TestSession_MoveCueOnRisingEdge(t *testing.T) {
	tests := []struct {
		name     string
		in       system.InputState
		expected int
	}{
		{"idle", system.InputState{}, 0},
		{"up held", system.InputState{Up: true}, 0},
		{"up pressed", system.InputState{Up: true, UpPressed: true}, 1},
		{"down pressed", system.InputState{Down: true, DownPressed: true}, 1},
		{"both pressed", system.InputState{Up: true, Down: true, UpPressed: true, DownPressed: true}, 2},
		{"left and right are silent", system.InputState{Left: true, Right: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(safeConfig(), 1)
			events := s.Step(dt, tt.in)

			cues := 0
			for _, e := range events {
				if e.Kind == EventMoveCue {
					cues++
				}
			}
			assert.Equal(t, tt.expected, cues)
		})
	}
}

func TestSession_SteersPlayer(t *testing.T) {
	s := New(safeConfig(), 1)
	w := s.World()
	start := w.Position[w.PlayerID]

	for i := 0; i < 100; i++ {
		s.Step(dt, system.InputState{Right: true, Up: true})
	}

	pos := w.Position[w.PlayerID]
	assert.Equal(t, start.X+300*ecs.PositionScale, pos.X)
	assert.Equal(t, start.Y-300*ecs.PositionScale, pos.Y)
}

func TestSession_AnimatesWhileRunning(t *testing.T) {
	s := New(safeConfig(), 1)
	w := s.World()

	run(s, 250*time.Millisecond)

	assert.True(t, w.Animation[w.PlayerID].Playing)
	assert.Equal(t, 2, w.Sprite[w.PlayerID].Frame)
}

func TestSession_Deterministic(t *testing.T) {
	inputs := func(i int) system.InputState {
		switch (i / 50) % 4 {
		case 0:
			return system.InputState{Up: true}
		case 1:
			return system.InputState{Left: true, Down: true}
		case 2:
			return system.InputState{Right: true}
		default:
			return system.InputState{}
		}
	}

	a := New(config.Default(), 42)
	b := New(config.Default(), 42)
	for i := 0; i < 1000; i++ {
		a.Step(dt, inputs(i))
		b.Step(dt, inputs(i))
	}

	assert.Equal(t, a.Phase(), b.Phase())
	assert.Equal(t, a.Remaining(), b.Remaining())
	assert.Equal(t, a.World().Position, b.World().Position)
}
