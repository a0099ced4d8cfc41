package scene

import "github.com/younwookim/squarerun/internal/infrastructure/render"

// Base provides the optional parts of Scene.
// Embed it and implement Init, Destroy, Update and Render.
type Base struct {
	camera            render.Camera
	updateWhilePaused bool
	renderWhilePaused bool
}

// NewBase creates a Base whose camera covers a width x height scene view.
// Paused scenes keep rendering but stop updating.
func NewBase(width, height float64) Base {
	return Base{
		camera:            render.NewCamera(width, height),
		updateWhilePaused: false,
		renderWhilePaused: true,
	}
}

// Pause does nothing (implements scene.Scene)
func (b *Base) Pause() {}

// Resume does nothing (implements scene.Scene)
func (b *Base) Resume() {}

// OnExitTransitionUpdate finishes at once (implements scene.Scene)
func (b *Base) OnExitTransitionUpdate(dt float64) bool { return false }

// OnStartTransitionUpdate finishes at once (implements scene.Scene)
func (b *Base) OnStartTransitionUpdate(dt float64) bool { return false }

// UpdateWhilePaused reports whether the scene updates below the top (implements scene.Scene)
func (b *Base) UpdateWhilePaused() bool { return b.updateWhilePaused }

// RenderWhilePaused reports whether the scene renders below the top (implements scene.Scene)
func (b *Base) RenderWhilePaused() bool { return b.renderWhilePaused }

// SetUpdateWhilePaused controls whether the scene updates below the top of the stack
func (b *Base) SetUpdateWhilePaused(v bool) { b.updateWhilePaused = v }

// SetRenderWhilePaused controls whether the scene renders below the top of the stack
func (b *Base) SetRenderWhilePaused(v bool) { b.renderWhilePaused = v }

// Camera returns the scene camera
func (b *Base) Camera() render.Camera { return b.camera }

// SetCamera replaces the scene camera
func (b *Base) SetCamera(c render.Camera) { b.camera = c }
