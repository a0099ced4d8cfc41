// Package scene defines the Scene interface for game screens.
//
// Each game screen (splash, menu, settings, etc.) implements the Scene
// interface. Scenes live on a stack: the topmost scene is active, the
// ones below it are paused but still alive.
package scene

import "github.com/younwookim/squarerun/internal/infrastructure/render"

// Scene represents a game screen (splash, menu, settings, etc.)
//
// A scene is owned by whoever constructed it; the stack only holds a
// reference. Init and Destroy are paired: every stack entry calls Init
// once and every permanent removal calls Destroy once.
type Scene interface {
	// Init is called when the scene enters the stack.
	Init()

	// Destroy is called when the scene is removed from the stack for good.
	Destroy()

	// Pause is called when another scene is pushed on top of this one.
	Pause()

	// Resume is called when this scene becomes topmost again.
	Resume()

	// Update advances the scene by dt seconds.
	Update(dt float64)

	// Render draws the scene.
	Render(r render.Renderer)

	// OnExitTransitionUpdate drives a custom exit animation when this scene
	// is paused or popped. Returning false ends the animation.
	OnExitTransitionUpdate(dt float64) bool

	// OnStartTransitionUpdate drives a custom enter animation when this scene
	// becomes topmost again after a pop. Returning false ends the animation.
	OnStartTransitionUpdate(dt float64) bool

	// UpdateWhilePaused reports whether the scene keeps updating below the top.
	UpdateWhilePaused() bool

	// RenderWhilePaused reports whether the scene keeps rendering below the top.
	RenderWhilePaused() bool
}

// Director requests stack changes on behalf of a scene.
// Requests made while another change is still pending are dropped.
type Director interface {
	Switch(s Scene, speed float64)
	Push(s Scene)
	Pop()
}
