package ecs

import "sort"

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// Components
	Position  map[EntityID]Position
	Velocity  map[EntityID]Velocity
	Hitbox    map[EntityID]Hitbox
	Sprite    map[EntityID]Sprite
	Animation map[EntityID]Animation

	// Tags
	IsPlayer   map[EntityID]struct{}
	IsObstacle map[EntityID]struct{}
	IsGoal     map[EntityID]struct{}

	// Singleton references (0 = none)
	PlayerID EntityID
	GoalID   EntityID
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:     1, // 0 is "nil"
		Position:   make(map[EntityID]Position),
		Velocity:   make(map[EntityID]Velocity),
		Hitbox:     make(map[EntityID]Hitbox),
		Sprite:     make(map[EntityID]Sprite),
		Animation:  make(map[EntityID]Animation),
		IsPlayer:   make(map[EntityID]struct{}),
		IsObstacle: make(map[EntityID]struct{}),
		IsGoal:     make(map[EntityID]struct{}),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	delete(w.Position, id)
	delete(w.Velocity, id)
	delete(w.Hitbox, id)
	delete(w.Sprite, id)
	delete(w.Animation, id)
	delete(w.IsPlayer, id)
	delete(w.IsObstacle, id)
	delete(w.IsGoal, id)

	if w.PlayerID == id {
		w.PlayerID = 0
	}
	if w.GoalID == id {
		w.GoalID = 0
	}
}

// Exists checks if an entity has Position component
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Position[id]
	return ok
}

// Bounds returns the entity's hitbox in world space
func (w *World) Bounds(id EntityID) (Rect, bool) {
	pos, ok := w.Position[id]
	if !ok {
		return Rect{}, false
	}
	hb, ok := w.Hitbox[id]
	if !ok {
		return Rect{}, false
	}
	return hb.RectAt(pos), true
}

// CreatePlayer creates the player entity at pixel coordinates
func (w *World) CreatePlayer(x, y float64, hitbox Hitbox, scale float64, anim Animation) EntityID {
	id := w.NewEntity()

	w.Position[id] = Position{X: ToIU(x), Y: ToIU(y)}
	w.Velocity[id] = Velocity{}
	w.Hitbox[id] = hitbox
	w.Sprite[id] = Sprite{Scale: scale}
	w.Animation[id] = anim
	w.IsPlayer[id] = struct{}{}

	w.PlayerID = id
	return id
}

// CreateObstacle creates an obstacle at pixel coordinates moving at vx (IU/s)
func (w *World) CreateObstacle(x, y float64, vx int, hitbox Hitbox, scale float64) EntityID {
	id := w.NewEntity()

	w.Position[id] = Position{X: ToIU(x), Y: ToIU(y)}
	w.Velocity[id] = Velocity{X: vx}
	w.Hitbox[id] = hitbox
	w.Sprite[id] = Sprite{Scale: scale}
	w.IsObstacle[id] = struct{}{}

	return id
}

// CreateGoal creates the goal entity at pixel coordinates
func (w *World) CreateGoal(x, y float64, hitbox Hitbox, scale float64) EntityID {
	id := w.NewEntity()

	w.Position[id] = Position{X: ToIU(x), Y: ToIU(y)}
	w.Hitbox[id] = hitbox
	w.Sprite[id] = Sprite{Scale: scale}
	w.IsGoal[id] = struct{}{}

	w.GoalID = id
	return id
}

// Obstacles returns obstacle IDs in creation order
func (w *World) Obstacles() []EntityID {
	ids := make([]EntityID, 0, len(w.IsObstacle))
	for id := range w.IsObstacle {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Moving returns IDs with a Velocity component in creation order
func (w *World) Moving() []EntityID {
	ids := make([]EntityID, 0, len(w.Velocity))
	for id := range w.Velocity {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
