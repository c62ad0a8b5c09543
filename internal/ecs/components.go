package ecs

import (
	"image/color"
	"math"
	"time"
)

// PositionScale is the internal position scale factor.
// 1 pixel = 256 internal units for sub-pixel precision.
const PositionScale = 256

// ToIU converts a pixel value to internal units, rounding to nearest
func ToIU(pixels float64) int {
	return int(math.Round(pixels * PositionScale))
}

// ToPixels converts internal units to (fractional) pixels
func ToPixels(iu int) float64 {
	return float64(iu) / PositionScale
}

// Position is the center of an entity (256x scaled)
type Position struct {
	X, Y int
}

// Velocity is movement speed in internal units per second.
// Integer values keep replays deterministic.
type Velocity struct {
	X, Y int
}

// Step returns the displacement for dt, rounded half away from zero
func (v Velocity) Step(dt time.Duration) (dx, dy int) {
	return scaleRound(v.X, dt), scaleRound(v.Y, dt)
}

func scaleRound(perSecond int, dt time.Duration) int {
	n := int64(perSecond) * int64(dt)
	half := int64(time.Second) / 2
	if n < 0 {
		return int((n - half) / int64(time.Second))
	}
	return int((n + half) / int64(time.Second))
}

// Hitbox is a collision area centered on Position (internal units)
type Hitbox struct {
	Width, Height int
}

// Rect is an axis-aligned box in internal units
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// RectAt returns the hitbox placed around p
func (h Hitbox) RectAt(p Position) Rect {
	return Rect{
		MinX: p.X - h.Width/2,
		MinY: p.Y - h.Height/2,
		MaxX: p.X - h.Width/2 + h.Width,
		MaxY: p.Y - h.Height/2 + h.Height,
	}
}

// Overlaps reports whether two rects share interior area.
// Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.MinX < o.MaxX && o.MinX < r.MaxX && r.MinY < o.MaxY && o.MinY < r.MaxY
}

// Sprite is the drawing state of an entity
type Sprite struct {
	Scale  float64
	Frame  int
	Tint   color.RGBA
	Tinted bool
}

// Animation loops Sprite.Frame through [0, Frames)
type Animation struct {
	Frames    int
	FrameRate float64 // frames per second
	Elapsed   time.Duration
	Playing   bool
}
