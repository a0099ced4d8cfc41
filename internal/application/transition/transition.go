// Package transition drives the visible effect that hides a scene change.
//
// Two kinds of transition exist and never overlap. The default curtain
// sweeps two screen-sized rectangles over the view, holds while the next
// scene initializes, then sweeps them away. A custom transition hands
// each tick to one of a scene's own hooks until the hook reports it is done.
package transition

import (
	"image/color"
	"io"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/squarerun/internal/application/scene"
	"github.com/younwookim/squarerun/internal/application/state"
	"github.com/younwookim/squarerun/internal/infrastructure/render"
)

const (
	// DefaultSpeed is the curtain sweep rate in scene units per second
	DefaultSpeed = 1000.0

	// streakSpeedFactor scales the accent streaks relative to the curtain
	streakSpeedFactor = 4.0
	// streakOffscreen is how far outside the view the streaks start
	streakOffscreen = 300.0
	// streakTravel is how far past the centre streak0 runs before the curtain retreats
	streakTravel = 1000.0
	// streakGap is the vertical offset of each streak from the view centre
	streakGap = 25.0
)

var (
	colorCurtain = color.RGBA{0, 0, 0, 255}
	colorStreakA = color.RGBA{0, 0, 255, 255}
	colorStreakB = color.RGBA{0, 255, 0, 255}

	streakSize = mgl64.Vec2{600, 25}
)

// Orchestrator owns the transition state machine
type Orchestrator struct {
	camera render.Camera
	phase  state.Phase
	speed  float64

	// Curtain geometry, as rectangle centres in camera space
	rects   [2]mgl64.Vec2
	streaks [2]mgl64.Vec2
	loaded  bool

	// Custom transition binding
	bound        scene.Scene
	trigger      state.Trigger
	recentCustom bool

	logger *slog.Logger
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLogger sets the structured logger for phase changes
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithSpeed sets the initial curtain speed
func WithSpeed(speed float64) Option {
	return func(o *Orchestrator) {
		o.SetSpeed(speed)
	}
}

// New creates an idle orchestrator covering the camera's view
func New(cam render.Camera, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		camera: cam,
		phase:  state.PhaseIdle,
		speed:  DefaultSpeed,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	o.resetGeometry()
	return o
}

// SetSpeed sets the curtain sweep rate for subsequent curtains.
// Non-positive speeds are ignored.
func (o *Orchestrator) SetSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	o.speed = speed
}

// Speed returns the curtain sweep rate
func (o *Orchestrator) Speed() float64 {
	return o.speed
}

// Play arms the default curtain. It does nothing while a curtain is already playing.
func (o *Orchestrator) Play() {
	if o.phase.Curtain() {
		return
	}
	o.resetGeometry()
	o.loaded = false
	o.recentCustom = false
	o.setPhase(state.PhaseCovering)
}

// PlayCustom binds s so that its hook selected by trigger drives the next
// transition. It does nothing while another scene is bound.
func (o *Orchestrator) PlayCustom(s scene.Scene, trigger state.Trigger) {
	if s == nil || o.bound != nil {
		return
	}
	o.bound = s
	o.trigger = trigger
	o.recentCustom = false
	o.logger.Debug("custom transition bound", "trigger", trigger.String())
}

// NotifyGameStateLoaded signals that the scene switched to has finished
// Init, releasing the curtain to uncover.
func (o *Orchestrator) NotifyGameStateLoaded() {
	o.loaded = true
	if o.phase == state.PhaseCovered {
		o.setPhase(state.PhaseUncovering)
	}
}

// Update advances the transition by dt seconds.
// A bound scene only runs while the curtain is idle.
func (o *Orchestrator) Update(dt float64) {
	if o.bound != nil && !o.phase.Curtain() {
		o.updateCustom(dt)
		return
	}
	if o.phase.Curtain() {
		o.updateCurtain(dt)
	}
}

func (o *Orchestrator) updateCustom(dt float64) {
	var running bool
	if o.trigger == state.TriggerExit {
		o.setPhase(state.PhaseCustomExit)
		running = o.bound.OnExitTransitionUpdate(dt)
	} else {
		o.setPhase(state.PhaseCustomEnter)
		running = o.bound.OnStartTransitionUpdate(dt)
	}

	if !running {
		o.bound = nil
		o.recentCustom = true
		o.setPhase(state.PhaseIdle)
	}
}

func (o *Orchestrator) updateCurtain(dt float64) {
	w, h := o.camera.Size.X(), o.camera.Size.Y()
	step := o.speed * dt

	switch o.phase {
	case state.PhaseCovering:
		o.rects[0][1] += step
		o.rects[1][1] -= step

		// The rectangles meet once each covers its half of the view
		if o.rects[0].Y() >= h/4 {
			o.rects[0][1] = h / 4
			o.rects[1][1] = h * 3 / 4
			if o.loaded {
				o.setPhase(state.PhaseUncovering)
			} else {
				o.setPhase(state.PhaseCovered)
			}
		}

	case state.PhaseUncovering:
		o.streaks[0][0] += step * streakSpeedFactor
		o.streaks[1][0] -= step * streakSpeedFactor

		if o.streaks[0].X() > w/2+streakTravel {
			o.rects[0][1] -= step
			o.rects[1][1] += step
		}
		if o.rects[0].Y() < -h/2 {
			o.setPhase(state.PhaseIdle)
		}
	}
}

// Render draws the curtain overlay while the curtain is playing
func (o *Orchestrator) Render(r render.Renderer) {
	if !o.phase.Curtain() {
		return
	}
	r.DrawRect(o.camera, colorCurtain, o.rects[0], o.camera.Size, 0)
	r.DrawRect(o.camera, colorCurtain, o.rects[1], o.camera.Size, 0)

	r.DrawRect(o.camera, colorStreakA, o.streaks[0], streakSize, 0)
	r.DrawRect(o.camera, colorStreakB, o.streaks[1], streakSize, 0)
}

// IsPlaying reports whether the default curtain is active
func (o *Orchestrator) IsPlaying() bool {
	return o.phase.Curtain()
}

// IsPlayingCustom reports whether a scene hook is driving a transition
func (o *Orchestrator) IsPlayingCustom() bool {
	return o.phase.Custom()
}

// ShouldChangeState reports whether the curtain fully covers the view and
// is waiting for the next scene to load
func (o *Orchestrator) ShouldChangeState() bool {
	return o.phase == state.PhaseCovered
}

// WasRecentTransitionCustom reports whether the last transition to finish
// was a custom one, with nothing armed since
func (o *Orchestrator) WasRecentTransitionCustom() bool {
	return o.recentCustom
}

// Phase returns the current phase
func (o *Orchestrator) Phase() state.Phase {
	return o.phase
}

// Trigger returns the hook selected for the bound scene
func (o *Orchestrator) Trigger() state.Trigger {
	return o.trigger
}

// Bound returns the scene driving the custom transition, or nil
func (o *Orchestrator) Bound() scene.Scene {
	return o.bound
}

// Curtain returns the centres of the top and bottom curtain rectangles
func (o *Orchestrator) Curtain() (top, bottom mgl64.Vec2) {
	return o.rects[0], o.rects[1]
}

// Covers reports whether the curtain rectangles together span the whole view
func (o *Orchestrator) Covers() bool {
	h := o.camera.Size.Y()
	topEdge := o.rects[0].Y() - h/2
	topBottom := o.rects[0].Y() + h/2
	bottomTop := o.rects[1].Y() - h/2
	bottomEdge := o.rects[1].Y() + h/2
	return topEdge <= 0 && bottomEdge >= h && topBottom >= bottomTop
}

func (o *Orchestrator) resetGeometry() {
	w, h := o.camera.Size.X(), o.camera.Size.Y()

	// Start fully outside the view, one above and one below
	o.rects[0] = mgl64.Vec2{w / 2, -h / 2}
	o.rects[1] = mgl64.Vec2{w / 2, h * 1.5}

	o.streaks[0] = mgl64.Vec2{-streakOffscreen, h/2 - streakGap}
	o.streaks[1] = mgl64.Vec2{w + streakOffscreen, h/2 + streakGap}
}

func (o *Orchestrator) setPhase(p state.Phase) {
	if o.phase == p {
		return
	}
	o.logger.Debug("transition phase", "from", o.phase.String(), "to", p.String())
	o.phase = p
}
