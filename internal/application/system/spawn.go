package system

import (
	"math/rand"

	"github.com/younwookim/salmonrun/internal/ecs"
	"github.com/younwookim/salmonrun/internal/infrastructure/config"
)

// SpawnSystem creates the entities of a play session from config
type SpawnSystem struct {
	config *config.GameConfig
	rng    *rand.Rand
}

// NewSpawnSystem creates a spawn system drawing obstacle rows from rng
func NewSpawnSystem(cfg *config.GameConfig, rng *rand.Rand) *SpawnSystem {
	return &SpawnSystem{config: cfg, rng: rng}
}

// scaledHitbox sizes a hitbox from a source frame, a display scale and the
// hitbox fraction of the frame.
func scaledHitbox(frameW, frameH int, scale float64, hb config.HitboxScale) ecs.Hitbox {
	return ecs.Hitbox{
		Width:  ecs.ToIU(float64(frameW) * hb.Width * scale),
		Height: ecs.ToIU(float64(frameH) * hb.Height * scale),
	}
}

// PlayerHitbox returns the player's collision box
func PlayerHitbox(cfg *config.GameConfig) ecs.Hitbox {
	p := cfg.Player
	return scaledHitbox(p.Sprite.FrameWidth, p.Sprite.FrameHeight, p.Scale, p.Hitbox)
}

// ObstacleHitbox returns an obstacle's collision box
func ObstacleHitbox(cfg *config.GameConfig) ecs.Hitbox {
	o := cfg.Obstacle
	return scaledHitbox(o.Width, o.Height, o.Scale, o.Hitbox)
}

// GoalHitbox returns the goal's collision box (the whole scaled image)
func GoalHitbox(cfg *config.GameConfig) ecs.Hitbox {
	g := cfg.Goal
	return scaledHitbox(g.Width, g.Height, g.Scale, config.HitboxScale{Width: 1, Height: 1})
}

// SpawnPlayer creates the player at its start position
func (s *SpawnSystem) SpawnPlayer(w *ecs.World) ecs.EntityID {
	p := s.config.Player
	return w.CreatePlayer(p.StartX, p.StartY, PlayerHitbox(s.config), p.Scale, ecs.Animation{
		Frames:    p.Sprite.Frames,
		FrameRate: p.Sprite.FrameRate,
	})
}

// SpawnObstacle creates one obstacle off the right edge at a random row
func (s *SpawnSystem) SpawnObstacle(w *ecs.World) ecs.EntityID {
	o := s.config.Obstacle
	y := s.rng.Float64()*o.RangeY + o.MinY
	return w.CreateObstacle(o.SpawnX, y, ecs.ToIU(o.VelocityX), ObstacleHitbox(s.config), o.Scale)
}

// SpawnGoal creates the goal
func (s *SpawnSystem) SpawnGoal(w *ecs.World) ecs.EntityID {
	g := s.config.Goal
	return w.CreateGoal(g.X, g.Y, GoalHitbox(s.config), g.Scale)
}
