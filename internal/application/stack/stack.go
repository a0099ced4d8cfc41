// Package stack manages the live scenes and the changes between them.
//
// Switch, Push and Pop only record an intent. Update commits it once the
// transition orchestrator allows: a switch waits for the curtain to cover
// the view, a push or pop waits for the affected scene's custom transition
// to finish. Only one change may be pending; requests made meanwhile are
// dropped and must be repeated by the caller.
package stack

import (
	"io"
	"log/slog"

	"github.com/younwookim/squarerun/internal/application/scene"
	"github.com/younwookim/squarerun/internal/application/state"
	"github.com/younwookim/squarerun/internal/application/transition"
	"github.com/younwookim/squarerun/internal/infrastructure/render"
)

// DefaultSwitchSpeed is the curtain speed used when Switch is given a non-positive speed
const DefaultSwitchSpeed = 3000.0

// UILayer is the interactive overlay updated and drawn on top of the scenes
type UILayer interface {
	UpdateActive(dt float64)
	RenderActive(r render.Renderer)
}

// pendingChange is a stack mutation waiting on the transition gate.
// For Switch and Push, target is the scene to install; for Pop it is the
// scene to resume once the transitions finish (nil when the stack emptied).
type pendingChange struct {
	kind   state.ChangeKind
	target scene.Scene
	speed  float64

	// armed is set once the curtain for a Switch has been started
	armed bool
	// entering is set once a Pop has moved on to the resumed scene's enter transition
	entering bool
}

// Stack is the scene stack. The last scene is the topmost, active one.
type Stack struct {
	scenes     []scene.Scene
	pending    pendingChange
	transition *transition.Orchestrator
	ui         UILayer
	logger     *slog.Logger
}

var _ scene.Director = (*Stack)(nil)

// Option configures a Stack
type Option func(*Stack)

// WithUI sets the UI layer driven between transitions
func WithUI(ui UILayer) Option {
	return func(s *Stack) {
		s.ui = ui
	}
}

// WithLogger sets the structured logger for stack changes
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stack) {
		s.logger = logger
	}
}

// New creates an empty stack driving the given orchestrator
func New(t *transition.Orchestrator, opts ...Option) *Stack {
	s := &Stack{transition: t}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Switch replaces every scene on the stack with next.
// On a non-empty stack the change happens behind the curtain.
func (s *Stack) Switch(next scene.Scene, speed float64) {
	if !s.accept(state.ChangeSwitch, next != nil) {
		return
	}
	if speed <= 0 {
		speed = DefaultSwitchSpeed
	}
	s.pending = pendingChange{kind: state.ChangeSwitch, target: next, speed: speed}
	if len(s.scenes) > 0 {
		s.armCurtain()
	}
}

// Push pauses the topmost scene and puts next above it once the paused
// scene's exit transition finishes.
func (s *Stack) Push(next scene.Scene) {
	if !s.accept(state.ChangePush, next != nil) {
		return
	}
	s.pending = pendingChange{kind: state.ChangePush, target: next}

	if top := s.Top(); top != nil {
		top.Pause()
		s.transition.PlayCustom(top, state.TriggerExit)
	}
}

// Pop destroys and removes the topmost scene immediately. The scene below
// is resumed after the removed scene's exit transition and its own enter
// transition have both finished.
func (s *Stack) Pop() {
	if !s.accept(state.ChangePop, len(s.scenes) > 0) {
		return
	}

	n := len(s.scenes)
	removed := s.scenes[n-1]
	s.scenes[n-1] = nil
	s.scenes = s.scenes[:n-1]

	// pending is set before Destroy so requests made from it are dropped
	s.pending = pendingChange{kind: state.ChangePop, target: s.Top()}
	removed.Destroy()
	s.transition.PlayCustom(removed, state.TriggerExit)
}

// accept reports whether a request may become the pending change
func (s *Stack) accept(kind state.ChangeKind, valid bool) bool {
	if s.pending.kind != state.ChangeNone {
		s.logger.Debug("change dropped", "kind", kind.String(), "pending", s.pending.kind.String())
		return false
	}
	if !valid {
		s.logger.Debug("change rejected", "kind", kind.String(), "depth", len(s.scenes))
		return false
	}
	s.logger.Debug("change requested", "kind", kind.String(), "depth", len(s.scenes))
	return true
}

// armCurtain starts the curtain for a pending Switch once the previous curtain has finished
func (s *Stack) armCurtain() {
	if s.transition.IsPlaying() {
		return
	}
	s.transition.SetSpeed(s.pending.speed)
	s.transition.Play()
	s.pending.armed = true
}

// Update advances the transition, commits the pending change when its gate
// opens, then updates the topmost scene and any scene that updates while paused.
func (s *Stack) Update(dt float64) {
	s.transition.Update(dt)
	s.commit()

	// Scenes may push or pop during their update, so the length is re-read each step
	for i := 0; i < len(s.scenes); i++ {
		sc := s.scenes[i]
		if i == len(s.scenes)-1 || sc.UpdateWhilePaused() {
			sc.Update(dt)
		}
	}

	if s.ui != nil && !s.transition.IsPlaying() && !s.transition.IsPlayingCustom() {
		s.ui.UpdateActive(dt)
	}
}

func (s *Stack) commit() {
	switch s.pending.kind {
	case state.ChangeSwitch:
		s.commitSwitch()
	case state.ChangePush:
		s.commitPush()
	case state.ChangePop:
		s.commitPop()
	}
}

func (s *Stack) commitSwitch() {
	if len(s.scenes) > 0 {
		if !s.pending.armed {
			s.armCurtain()
			return
		}
		if !s.transition.ShouldChangeState() {
			return
		}
	}

	for _, sc := range s.scenes {
		sc.Destroy()
	}
	clear(s.scenes)
	s.scenes = s.scenes[:0]

	next := s.pending.target
	next.Init()
	s.scenes = append(s.scenes, next)
	s.finish()

	s.transition.NotifyGameStateLoaded()
}

func (s *Stack) commitPush() {
	if len(s.scenes) > 0 && !s.customFinished() {
		return
	}

	next := s.pending.target
	next.Init()
	s.scenes = append(s.scenes, next)
	s.finish()
}

func (s *Stack) commitPop() {
	if !s.customFinished() {
		return
	}

	resumed := s.pending.target
	if resumed == nil {
		s.finish()
		return
	}
	if !s.pending.entering {
		s.transition.PlayCustom(resumed, state.TriggerEnter)
		s.pending.entering = true
		return
	}

	resumed.Resume()
	s.finish()
}

// customFinished reports whether the custom transition bound for the pending change has run to completion
func (s *Stack) customFinished() bool {
	return !s.transition.IsPlayingCustom() && s.transition.WasRecentTransitionCustom()
}

func (s *Stack) finish() {
	s.logger.Debug("change committed", "kind", s.pending.kind.String(), "depth", len(s.scenes))
	s.pending = pendingChange{}
}

// Render draws the topmost scene and any scene that renders while paused,
// then the UI layer and the transition overlay, into the scene framebuffer.
func (s *Stack) Render(r render.Renderer) {
	r.SetTarget(render.TargetScene)
	r.Clear()

	for i, sc := range s.scenes {
		if i == len(s.scenes)-1 || sc.RenderWhilePaused() {
			sc.Render(r)
		}
	}

	if s.ui != nil {
		s.ui.RenderActive(r)
	}
	s.transition.Render(r)

	r.Flush()
}

// IsActive reports whether the stack has scenes or a change still pending.
// The game loop stops once this turns false.
func (s *Stack) IsActive() bool {
	return len(s.scenes) > 0 || s.pending.kind != state.ChangeNone
}

// Len returns the number of live scenes
func (s *Stack) Len() int {
	return len(s.scenes)
}

// Top returns the topmost scene, or nil for an empty stack
func (s *Stack) Top() scene.Scene {
	if len(s.scenes) == 0 {
		return nil
	}
	return s.scenes[len(s.scenes)-1]
}

// Scenes returns the live scenes, bottom first
func (s *Stack) Scenes() []scene.Scene {
	out := make([]scene.Scene, len(s.scenes))
	copy(out, s.scenes)
	return out
}

// Pending returns the kind of change waiting to be committed
func (s *Stack) Pending() state.ChangeKind {
	return s.pending.kind
}

// Transition returns the orchestrator driven by the stack
func (s *Stack) Transition() *transition.Orchestrator {
	return s.transition
}
