package stack

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/squarerun/internal/application/scene"
	"github.com/younwookim/squarerun/internal/application/state"
	"github.com/younwookim/squarerun/internal/application/transition"
	"github.com/younwookim/squarerun/internal/infrastructure/render"
)

const (
	viewW = 1920.0
	viewH = 1080.0
	dt    = 1.0 / 60.0
)

// eventLog collects lifecycle calls across scenes in order
type eventLog struct {
	events []string
}

func (l *eventLog) add(name, event string) {
	l.events = append(l.events, name+"."+event)
}

func (l *eventLog) index(event string) int {
	for i, e := range l.events {
		if e == event {
			return i
		}
	}
	return -1
}

func (l *eventLog) count(event string) int {
	n := 0
	for _, e := range l.events {
		if e == event {
			n++
		}
	}
	return n
}

// mockScene is a test double for the Scene interface
type mockScene struct {
	scene.Base
	name string
	log  *eventLog

	// hooks keep returning true for this many calls
	exitTicks  int
	enterTicks int
	exitCalls  int
	enterCalls int

	updates int
	renders int
	live    bool

	onUpdate  func()
	onDestroy func()
}

func newMockScene(name string, log *eventLog) *mockScene {
	return &mockScene{Base: scene.NewBase(viewW, viewH), name: name, log: log}
}

func (m *mockScene) Init() {
	m.live = true
	m.log.add(m.name, "Init")
}

func (m *mockScene) Destroy() {
	m.live = false
	m.log.add(m.name, "Destroy")
	if m.onDestroy != nil {
		m.onDestroy()
	}
}

func (m *mockScene) Pause()  { m.log.add(m.name, "Pause") }
func (m *mockScene) Resume() { m.log.add(m.name, "Resume") }

func (m *mockScene) Update(dt float64) {
	m.updates++
	if m.onUpdate != nil {
		m.onUpdate()
	}
}

func (m *mockScene) Render(r render.Renderer) {
	m.renders++
}

func (m *mockScene) OnExitTransitionUpdate(dt float64) bool {
	m.exitCalls++
	if m.exitCalls > m.exitTicks {
		m.log.add(m.name, "ExitDone")
		return false
	}
	return true
}

func (m *mockScene) OnStartTransitionUpdate(dt float64) bool {
	m.enterCalls++
	if m.enterCalls > m.enterTicks {
		m.log.add(m.name, "EnterDone")
		return false
	}
	return true
}

// mockUI counts calls from the stack
type mockUI struct {
	updates int
	renders int
}

func (u *mockUI) UpdateActive(dt float64)        { u.updates++ }
func (u *mockUI) RenderActive(r render.Renderer) { u.renders++ }

func newTestStack() (*Stack, *mockUI) {
	ui := &mockUI{}
	return New(transition.New(render.NewCamera(viewW, viewH)), WithUI(ui)), ui
}

// settle ticks until no change is pending and no transition plays
func settle(t *testing.T, s *Stack) int {
	t.Helper()
	for i := 1; i <= 2000; i++ {
		s.Update(dt)
		tr := s.Transition()
		if s.Pending() == state.ChangeNone && !tr.IsPlaying() && !tr.IsPlayingCustom() {
			return i
		}
	}
	t.Fatalf("stack did not settle (pending %s, phase %s)", s.Pending(), s.Transition().Phase())
	return 0
}

func TestNew_Empty(t *testing.T) {
	s, _ := newTestStack()

	assert.False(t, s.IsActive())
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Top())
	assert.Equal(t, state.ChangeNone, s.Pending())
}

func TestSwitch_EmptyStackHasNoVisibleTransition(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	menu := newMockScene("Menu", log)

	s.Switch(menu, 1000)
	assert.True(t, s.IsActive(), "a pending change keeps the stack active")
	assert.Equal(t, state.ChangeSwitch, s.Pending())
	assert.False(t, s.Transition().IsPlaying())

	s.Update(dt)
	assert.False(t, s.Transition().IsPlaying())
	assert.False(t, s.Transition().IsPlayingCustom())
	assert.Equal(t, state.ChangeNone, s.Pending())
	assert.Equal(t, menu, s.Top())
	assert.Equal(t, []string{"Menu.Init"}, log.events)
	assert.Equal(t, 1, menu.updates, "a committed scene updates in the same tick")
}

func TestSwitch_WaitsForCover(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	a := newMockScene("A", log)
	b := newMockScene("B", log)
	c := newMockScene("C", log)

	s.Switch(a, 0)
	s.Update(dt)
	s.Push(b)
	settle(t, s)
	require.Equal(t, 2, s.Len())

	s.Switch(c, 1000)
	tr := s.Transition()
	assert.True(t, tr.IsPlaying())
	assert.Equal(t, 1000.0, tr.Speed())

	for i := 0; log.index("A.Destroy") == -1; i++ {
		require.Less(t, i, 1000, "switch never committed")
		require.Equal(t, 2, s.Len(), "nothing is destroyed before the curtain covers")
		s.Update(dt)
	}

	// The commit happens on the tick the cover is reached
	assert.True(t, tr.Covers(), "committed behind a covering curtain")
	assert.Equal(t, []scene.Scene{c}, s.Scenes())
	assert.Equal(t, 1, log.count("A.Destroy"))
	assert.Equal(t, 1, log.count("B.Destroy"))
	assert.Equal(t, 1, log.count("C.Init"))
	assert.Greater(t, log.index("C.Init"), log.index("A.Destroy"))
	assert.Greater(t, log.index("C.Init"), log.index("B.Destroy"))
	assert.Equal(t, state.PhaseUncovering, tr.Phase(), "loading the new scene releases the curtain")

	settle(t, s)
	assert.False(t, tr.IsPlaying())
}

func TestSwitch_DefaultSpeed(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	s.Switch(newMockScene("A", log), 0)
	s.Update(dt)

	s.Switch(newMockScene("B", log), -1)
	assert.Equal(t, DefaultSwitchSpeed, s.Transition().Speed())
}

func TestSwitch_NilDropped(t *testing.T) {
	s, _ := newTestStack()
	s.Switch(nil, 1000)
	s.Push(nil)

	assert.Equal(t, state.ChangeNone, s.Pending())
	assert.False(t, s.IsActive())
}

func TestSwitch_WhileCurtainUncoveringWaits(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	a := newMockScene("A", log)
	b := newMockScene("B", log)
	c := newMockScene("C", log)

	s.Switch(a, 0)
	s.Update(dt)
	s.Switch(b, 1000)
	for s.Pending() != state.ChangeNone {
		s.Update(dt)
	}
	require.True(t, s.Transition().IsPlaying(), "curtain still uncovering")

	s.Switch(c, 1000)
	assert.Equal(t, state.ChangeSwitch, s.Pending())

	settle(t, s)
	assert.Equal(t, c, s.Top())
	assert.Equal(t, 1, log.count("B.Destroy"))
	assert.Equal(t, 1, log.count("C.Init"))
}

func TestRequestsWhilePendingAreDropped(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	menu := newMockScene("Menu", log)
	s.Switch(menu, 0)
	s.Update(dt)

	settings := newMockScene("Settings", log)
	settings.exitTicks = 0
	menu.exitTicks = 10
	s.Push(settings)

	other := newMockScene("Other", log)
	for i := 0; i < 5; i++ {
		switch i % 3 {
		case 0:
			s.Switch(other, 1000)
		case 1:
			s.Push(other)
		case 2:
			s.Pop()
		}
		s.Update(dt)
		assert.Equal(t, state.ChangePush, s.Pending())
		assert.Equal(t, menu, s.Top())
	}

	settle(t, s)
	assert.Equal(t, []scene.Scene{menu, settings}, s.Scenes())
	assert.Equal(t, 0, log.count("Other.Init"))
	assert.Equal(t, 0, log.count("Menu.Destroy"))
}

func TestPush_PausesThenInitsAfterExitTransition(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	menu := newMockScene("Menu", log)
	settings := newMockScene("Settings", log)
	s.Switch(menu, 0)
	s.Update(dt)

	menu.exitTicks = 3
	s.Push(settings)
	assert.Equal(t, 1, log.count("Menu.Pause"))
	assert.Equal(t, menu, s.Transition().Bound())
	assert.Equal(t, state.TriggerExit, s.Transition().Trigger())

	for i := 0; i < 3; i++ {
		s.Update(dt)
		assert.True(t, s.Transition().IsPlayingCustom())
		assert.Equal(t, 0, settings.updates)
		assert.Equal(t, -1, log.index("Settings.Init"))
	}

	s.Update(dt)
	assert.Equal(t, []scene.Scene{menu, settings}, s.Scenes())
	assert.Equal(t, 1, settings.updates)
	assert.Less(t, log.index("Menu.Pause"), log.index("Menu.ExitDone"))
	assert.Less(t, log.index("Menu.ExitDone"), log.index("Settings.Init"))
	assert.Equal(t, state.ChangeNone, s.Pending())
}

func TestPush_EmptyStackCommitsWithoutTransition(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	a := newMockScene("A", log)

	s.Push(a)
	s.Update(dt)

	assert.Equal(t, a, s.Top())
	assert.False(t, s.Transition().IsPlayingCustom())
	assert.Equal(t, []string{"A.Init"}, log.events)
}

func TestPop_DestroysImmediatelyAndResumesAfterEnter(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	menu := newMockScene("Menu", log)
	settings := newMockScene("Settings", log)
	s.Switch(menu, 0)
	s.Update(dt)
	s.Push(settings)
	settle(t, s)

	settings.exitTicks = 2
	menu.enterTicks = 2
	s.Pop()
	assert.Equal(t, 1, log.count("Settings.Destroy"))
	assert.Equal(t, []scene.Scene{menu}, s.Scenes())
	assert.Equal(t, state.ChangePop, s.Pending())
	assert.Equal(t, settings, s.Transition().Bound(), "the removed scene drives the exit")

	settle(t, s)
	assert.Equal(t, 1, log.count("Menu.Resume"))
	assert.Less(t, log.index("Settings.Destroy"), log.index("Settings.ExitDone"))
	assert.Less(t, log.index("Settings.ExitDone"), log.index("Menu.EnterDone"))
	assert.Less(t, log.index("Menu.EnterDone"), log.index("Menu.Resume"))
	assert.Equal(t, 1, s.Len())
}

func TestPop_LastSceneEndsTheStack(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	menu := newMockScene("Menu", log)
	s.Switch(menu, 0)
	s.Update(dt)

	menu.exitTicks = 1
	s.Pop()
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.IsActive(), "still active while the exit transition runs")

	s.Update(dt)
	assert.True(t, s.IsActive())
	s.Update(dt)
	assert.False(t, s.IsActive())
	assert.Equal(t, []string{"Menu.Init", "Menu.Destroy", "Menu.ExitDone"}, log.events)
}

func TestPop_RequestsFromDestroyAreDropped(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	menu := newMockScene("Menu", log)
	settings := newMockScene("Settings", log)
	other := newMockScene("Other", log)
	s.Switch(menu, 0)
	s.Update(dt)
	s.Push(settings)
	settle(t, s)
	require.Equal(t, 2, s.Len())

	destroys := 0
	settings.onDestroy = func() {
		destroys++
		s.Switch(other, 0)
		s.Pop()
	}
	s.Pop()

	assert.Equal(t, 1, destroys)
	assert.Equal(t, state.ChangePop, s.Pending())
	assert.False(t, s.Transition().IsPlaying(), "dropped switch never starts the curtain")
	assert.Equal(t, 1, s.Len())

	settle(t, s)
	assert.Same(t, menu, s.Top())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, log.count("Other.Init"))
	assert.Equal(t, 1, log.count("Menu.Resume"))
	assert.True(t, s.IsActive())
}

func TestPop_EmptyStackIgnored(t *testing.T) {
	s, _ := newTestStack()
	s.Pop()
	assert.Equal(t, state.ChangeNone, s.Pending())
	assert.False(t, s.IsActive())
}

func TestUpdate_PauseFiltering(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	bottom := newMockScene("Bottom", log)
	middle := newMockScene("Middle", log)
	top := newMockScene("Top", log)
	middle.SetUpdateWhilePaused(true)

	s.Switch(bottom, 0)
	s.Update(dt)
	s.Push(middle)
	settle(t, s)
	s.Push(top)
	settle(t, s)

	b0, m0, t0 := bottom.updates, middle.updates, top.updates
	for i := 0; i < 10; i++ {
		s.Update(dt)
	}
	assert.Equal(t, b0, bottom.updates, "occluded scenes stop updating")
	assert.Equal(t, m0+10, middle.updates, "update-while-paused scenes keep updating")
	assert.Equal(t, t0+10, top.updates)
}

func TestUpdate_PopDuringFanOutSkipsRemovedScene(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	bottom := newMockScene("Bottom", log)
	top := newMockScene("Top", log)
	bottom.SetUpdateWhilePaused(true)

	s.Switch(bottom, 0)
	s.Update(dt)
	s.Push(top)
	settle(t, s)

	before := top.updates
	bottom.onUpdate = func() { s.Pop() }
	s.Update(dt)
	bottom.onUpdate = nil

	assert.False(t, top.live)
	assert.Equal(t, before, top.updates, "a destroyed scene is never updated")
}

func TestUpdate_UIOnlyBetweenTransitions(t *testing.T) {
	s, ui := newTestStack()
	log := &eventLog{}
	a := newMockScene("A", log)
	s.Switch(a, 0)
	s.Update(dt)
	assert.Equal(t, 1, ui.updates)

	s.Switch(newMockScene("B", log), 1000)
	s.Update(dt)
	assert.Equal(t, 1, ui.updates, "no UI input while the curtain plays")

	settle(t, s)
	before := ui.updates
	s.Update(dt)
	assert.Equal(t, before+1, ui.updates)

	a2 := newMockScene("C", log)
	s.Top().(*mockScene).exitTicks = 5
	s.Push(a2)
	s.Update(dt)
	assert.True(t, s.Transition().IsPlayingCustom())
	assert.Equal(t, before+1, ui.updates, "no UI input during a custom transition")
}

func TestRender_OrderAndFiltering(t *testing.T) {
	s, ui := newTestStack()
	log := &eventLog{}
	bottom := newMockScene("Bottom", log)
	hidden := newMockScene("Hidden", log)
	top := newMockScene("Top", log)
	hidden.SetRenderWhilePaused(false)

	s.Switch(bottom, 0)
	s.Update(dt)
	s.Push(hidden)
	settle(t, s)
	s.Push(top)
	settle(t, s)

	r := render.NewRecording()
	s.Render(r)

	assert.Equal(t, 1, bottom.renders, "paused scenes render by default")
	assert.Equal(t, 0, hidden.renders)
	assert.Equal(t, 1, top.renders)
	assert.Equal(t, 1, ui.renders)

	require.GreaterOrEqual(t, len(r.Ops), 3)
	assert.Equal(t, render.OpSetTarget, r.Ops[0].Kind)
	assert.Equal(t, render.TargetScene, r.Ops[0].Target)
	assert.Equal(t, render.OpClear, r.Ops[1].Kind)
	assert.Equal(t, render.OpFlush, r.Ops[len(r.Ops)-1].Kind)
}

func TestRender_TransitionOverlayOnTop(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	s.Switch(newMockScene("A", log), 0)
	s.Update(dt)
	s.Switch(newMockScene("B", log), 1000)

	r := render.NewRecording()
	s.Render(r)
	assert.Equal(t, 4, r.Count(render.OpRect), "curtain and streaks")
	assert.Equal(t, render.OpFlush, r.Ops[len(r.Ops)-1].Kind)
	assert.Equal(t, render.OpRect, r.Ops[len(r.Ops)-2].Kind)
}

// TestMenuSettingsScenario walks the push/pop round trip between a menu and a settings overlay.
func TestMenuSettingsScenario(t *testing.T) {
	s, _ := newTestStack()
	log := &eventLog{}
	menu := newMockScene("Menu", log)
	settings := newMockScene("Settings", log)

	s.Switch(menu, 0)
	s.Update(dt)
	log.events = nil

	menu.exitTicks = 4
	s.Push(settings)
	assert.Equal(t, []string{"Menu.Pause"}, log.events)

	ticks := settle(t, s)
	assert.Equal(t, 5, ticks)
	assert.Equal(t, []string{"Menu.Pause", "Menu.ExitDone", "Settings.Init"}, log.events)
	assert.Equal(t, []scene.Scene{menu, settings}, s.Scenes())

	log.events = nil
	menu.enterTicks = 3
	s.Pop()
	assert.Equal(t, []string{"Settings.Destroy"}, log.events)

	settle(t, s)
	assert.Equal(t, []string{"Settings.Destroy", "Settings.ExitDone", "Menu.EnterDone", "Menu.Resume"}, log.events)
	assert.Equal(t, []scene.Scene{menu}, s.Scenes())
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Stack, log *eventLog)
		want  bool
	}{
		{"empty", func(s *Stack, log *eventLog) {}, false},
		{"pending switch", func(s *Stack, log *eventLog) { s.Switch(newMockScene("A", log), 0) }, true},
		{"one scene", func(s *Stack, log *eventLog) {
			s.Switch(newMockScene("A", log), 0)
			s.Update(dt)
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStack()
			tt.setup(s, &eventLog{})
			assert.Equal(t, tt.want, s.IsActive(), fmt.Sprintf("len=%d pending=%s", s.Len(), s.Pending()))
		})
	}
}
