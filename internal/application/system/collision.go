package system

import (
	"sort"

	"github.com/solarlune/resolv"

	"github.com/younwookim/salmonrun/internal/ecs"
	"github.com/younwookim/salmonrun/internal/infrastructure/config"
)

// Collision space tags
const (
	TagPlayer   = "player"
	TagObstacle = "obstacle"
	TagGoal     = "goal"
)

// collisionCellSize is the resolv grid cell size in pixels
const collisionCellSize = 32

// CollisionSystem mirrors world hitboxes into a resolv space and answers
// player overlap queries. The space is the broad phase; candidates are
// confirmed with an exact rect test in internal units.
type CollisionSystem struct {
	space   *resolv.Space
	objects map[ecs.EntityID]*resolv.Object
	owners  map[*resolv.Object]ecs.EntityID
}

// NewCollisionSystem creates a space covering the screen
func NewCollisionSystem(cfg *config.GameConfig) *CollisionSystem {
	return &CollisionSystem{
		space:   resolv.NewSpace(cfg.Display.ScreenWidth, cfg.Display.ScreenHeight, collisionCellSize, collisionCellSize),
		objects: make(map[ecs.EntityID]*resolv.Object),
		owners:  make(map[*resolv.Object]ecs.EntityID),
	}
}

func tagOf(w *ecs.World, id ecs.EntityID) string {
	switch {
	case id == w.PlayerID:
		return TagPlayer
	case id == w.GoalID:
		return TagGoal
	default:
		return TagObstacle
	}
}

// Sync adds, moves and removes space objects to match the world
func (s *CollisionSystem) Sync(w *ecs.World) {
	for id, obj := range s.objects {
		if _, ok := w.Hitbox[id]; !ok {
			s.space.Remove(obj)
			delete(s.objects, id)
			delete(s.owners, obj)
		}
	}

	for id := range w.Hitbox {
		r, ok := w.Bounds(id)
		if !ok {
			continue
		}
		x, y := ecs.ToPixels(r.MinX), ecs.ToPixels(r.MinY)
		obj, ok := s.objects[id]
		if !ok {
			obj = resolv.NewObject(x, y, ecs.ToPixels(r.MaxX-r.MinX), ecs.ToPixels(r.MaxY-r.MinY), tagOf(w, id))
			s.space.Add(obj)
			s.objects[id] = obj
			s.owners[obj] = id
			continue
		}
		obj.Position.X, obj.Position.Y = x, y
		obj.Update()
	}
}

// Len returns the number of objects in the space
func (s *CollisionSystem) Len() int {
	return len(s.objects)
}

// PlayerOverlaps returns the IDs tagged tag that overlap the player, in
// creation order. Call Sync first.
func (s *CollisionSystem) PlayerOverlaps(w *ecs.World, tag string) []ecs.EntityID {
	obj, ok := s.objects[w.PlayerID]
	if !ok {
		return nil
	}
	playerRect, ok := w.Bounds(w.PlayerID)
	if !ok {
		return nil
	}

	collision := obj.Check(0, 0, tag)
	if collision == nil {
		return nil
	}

	var hits []ecs.EntityID
	seen := make(map[ecs.EntityID]struct{})
	for _, other := range collision.Objects {
		id, ok := s.owners[other]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		r, ok := w.Bounds(id)
		if ok && playerRect.Overlaps(r) {
			hits = append(hits, id)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i] < hits[j] })
	return hits
}
