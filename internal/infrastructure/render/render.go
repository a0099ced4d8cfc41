// Package render is the drawing backend used by scenes, the UI layer and
// the transition overlay.
//
// Everything above this package draws through the Renderer interface in
// scene units; the camera maps scene units onto whatever target is bound.
package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Target selects where draw calls land
type Target int

const (
	// TargetDefault is the frame's screen image
	TargetDefault Target = iota
	// TargetScene is the offscreen scene framebuffer, flushed to the screen by Flush
	TargetScene
)

// String returns the string representation of the target
func (t Target) String() string {
	switch t {
	case TargetDefault:
		return "Default"
	case TargetScene:
		return "Scene"
	default:
		return "Unknown"
	}
}

// Camera is an orthographic view over scene space.
// Position is the top-left corner of the view, Size its extent in scene units.
type Camera struct {
	Position mgl64.Vec2
	Size     mgl64.Vec2
}

// NewCamera creates a camera at the origin covering width x height scene units
func NewCamera(width, height float64) Camera {
	return Camera{Size: mgl64.Vec2{width, height}}
}

// Center returns the centre of the view in scene units
func (c Camera) Center() mgl64.Vec2 {
	return c.Position.Add(c.Size.Mul(0.5))
}

// Scale returns the scene-unit to pixel factors for a target of the given pixel size
func (c Camera) Scale(targetW, targetH int) (float64, float64) {
	if c.Size.X() <= 0 || c.Size.Y() <= 0 {
		return 1, 1
	}
	return float64(targetW) / c.Size.X(), float64(targetH) / c.Size.Y()
}

// ToTarget maps a scene-space point to target pixels
func (c Camera) ToTarget(p mgl64.Vec2, targetW, targetH int) mgl64.Vec2 {
	sx, sy := c.Scale(targetW, targetH)
	d := p.Sub(c.Position)
	return mgl64.Vec2{d.X() * sx, d.Y() * sy}
}

// FromTarget maps target pixels back to scene space
func (c Camera) FromTarget(p mgl64.Vec2, targetW, targetH int) mgl64.Vec2 {
	sx, sy := c.Scale(targetW, targetH)
	return mgl64.Vec2{p.X()/sx + c.Position.X(), p.Y()/sy + c.Position.Y()}
}

// Renderer is the drawing surface handed to Render calls.
//
// Rectangles and text are positioned by their centre, in the camera's
// scene units. Rotation is in degrees, clockwise.
type Renderer interface {
	SetTarget(t Target)
	SetClearColor(c color.RGBA)
	Clear()
	DrawRect(cam Camera, c color.RGBA, center, size mgl64.Vec2, rotation float64)
	DrawText(cam Camera, s string, c color.RGBA, fontSize float64, center mgl64.Vec2)
	MeasureText(s string, fontSize float64) (w, h float64)
	Flush()
}
