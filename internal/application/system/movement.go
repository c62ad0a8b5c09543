package system

import (
	"time"

	"github.com/younwookim/salmonrun/internal/ecs"
	"github.com/younwookim/salmonrun/internal/infrastructure/config"
)

// MovementSystem turns input into player velocity and integrates every
// moving entity. There is no acceleration or gravity: velocities are set
// directly, as in an arcade body.
type MovementSystem struct {
	speed         int // IU per second on each axis
	width, height int // world bounds in IU
	obstacleHalfW int // half of the drawn obstacle width in IU
}

// NewMovementSystem creates a new movement system
func NewMovementSystem(cfg *config.GameConfig) *MovementSystem {
	return &MovementSystem{
		speed:         ecs.ToIU(cfg.Player.Speed),
		width:         cfg.Display.ScreenWidth * ecs.PositionScale,
		height:        cfg.Display.ScreenHeight * ecs.PositionScale,
		obstacleHalfW: ecs.ToIU(float64(cfg.Obstacle.Width)*cfg.Obstacle.Scale) / 2,
	}
}

// Steer sets the player's velocity from held keys. Each axis is set
// independently, so diagonals move at full speed on both axes.
func (s *MovementSystem) Steer(w *ecs.World, in InputState) {
	id := w.PlayerID
	if _, ok := w.Velocity[id]; !ok {
		return
	}
	x, y := in.Axes()
	w.Velocity[id] = ecs.Velocity{X: x * s.speed, Y: y * s.speed}
}

// Integrate moves every entity with a velocity by dt, then keeps the player
// inside the world bounds.
func (s *MovementSystem) Integrate(w *ecs.World, dt time.Duration) {
	for _, id := range w.Moving() {
		dx, dy := w.Velocity[id].Step(dt)
		pos := w.Position[id]
		pos.X += dx
		pos.Y += dy
		w.Position[id] = pos
	}
	s.clampPlayer(w)
}

// clampPlayer pushes the player's hitbox back inside the world and stops
// motion on the blocked axis.
func (s *MovementSystem) clampPlayer(w *ecs.World) {
	id := w.PlayerID
	r, ok := w.Bounds(id)
	if !ok {
		return
	}
	pos := w.Position[id]
	vel := w.Velocity[id]

	switch {
	case r.MinX < 0:
		pos.X -= r.MinX
		vel.X = 0
	case r.MaxX > s.width:
		pos.X -= r.MaxX - s.width
		vel.X = 0
	}
	switch {
	case r.MinY < 0:
		pos.Y -= r.MinY
		vel.Y = 0
	case r.MaxY > s.height:
		pos.Y -= r.MaxY - s.height
		vel.Y = 0
	}

	w.Position[id] = pos
	w.Velocity[id] = vel
}

// CullObstacles destroys obstacles that have fully left the screen on the
// left side and returns how many were removed.
func (s *MovementSystem) CullObstacles(w *ecs.World) int {
	removed := 0
	for _, id := range w.Obstacles() {
		if w.Position[id].X+s.obstacleHalfW < 0 {
			w.DestroyEntity(id)
			removed++
		}
	}
	return removed
}
