package system

import (
	"time"

	"github.com/younwookim/salmonrun/internal/ecs"
)

// AnimationSystem advances looping sprite animations
type AnimationSystem struct{}

// NewAnimationSystem creates a new animation system
func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

// Play starts the animation of id. Playing an animation that already runs
// keeps its current frame.
func (s *AnimationSystem) Play(w *ecs.World, id ecs.EntityID) {
	anim, ok := w.Animation[id]
	if !ok || anim.Playing {
		return
	}
	anim.Playing = true
	w.Animation[id] = anim
}

// Stop halts the animation of id and shows frame
func (s *AnimationSystem) Stop(w *ecs.World, id ecs.EntityID, frame int) {
	anim, ok := w.Animation[id]
	if !ok {
		return
	}
	anim.Playing = false
	anim.Elapsed = 0
	w.Animation[id] = anim

	sprite := w.Sprite[id]
	sprite.Frame = frame
	w.Sprite[id] = sprite
}

// Update advances every playing animation by dt
func (s *AnimationSystem) Update(w *ecs.World, dt time.Duration) {
	for id, anim := range w.Animation {
		if !anim.Playing || anim.Frames <= 0 {
			continue
		}
		anim.Elapsed += dt
		w.Animation[id] = anim

		sprite := w.Sprite[id]
		sprite.Frame = int(anim.Elapsed.Seconds()*anim.FrameRate) % anim.Frames
		w.Sprite[id] = sprite
	}
}
