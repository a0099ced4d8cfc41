package menu

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/squarerun/internal/application/scene"
	"github.com/younwookim/squarerun/internal/application/scene/settings"
	"github.com/younwookim/squarerun/internal/application/stack"
	"github.com/younwookim/squarerun/internal/application/state"
	"github.com/younwookim/squarerun/internal/application/system"
	"github.com/younwookim/squarerun/internal/application/transition"
	"github.com/younwookim/squarerun/internal/application/ui"
	"github.com/younwookim/squarerun/internal/infrastructure/render"
)

const (
	width  = 1600
	height = 900
	dt     = 1.0 / 60
)

type fakeMusic struct {
	plays  int
	pauses int
	closed int
	volume float64
}

func (m *fakeMusic) Play()               { m.plays++ }
func (m *fakeMusic) Pause()              { m.pauses++ }
func (m *fakeMusic) Close() error        { m.closed++; return nil }
func (m *fakeMusic) Volume() float64     { return m.volume }
func (m *fakeMusic) SetVolume(v float64) { m.volume = v }

type harness struct {
	t     *testing.T
	stack *stack.Stack
	ui    *ui.Manager
	input *system.StaticInput
	music *fakeMusic
	menu  *Menu
}

func newHarness(t *testing.T) *harness {
	in := &system.StaticInput{}
	manager := ui.NewManager(in, width, height)
	st := stack.New(transition.New(render.NewCamera(width, height)), stack.WithUI(manager))
	music := &fakeMusic{volume: 0.5}

	m := New(st, manager, Options{
		Width:  width,
		Height: height,
		Settings: func() scene.Scene {
			return settings.New(st, manager, music, width, height)
		},
		Music: music,
	})
	st.Push(m)
	st.Update(dt)

	return &harness{t: t, stack: st, ui: manager, input: in, music: music, menu: m}
}

// click presses and releases the left button at p, one tick each
func (h *harness) click(p mgl64.Vec2) {
	h.input.State = system.InputState{MouseX: int(p.X()), MouseY: int(p.Y()), Pressed: true, Down: true}
	h.stack.Update(dt)
	h.input.State = system.InputState{MouseX: int(p.X()), MouseY: int(p.Y()), Released: true}
	h.stack.Update(dt)
	h.input.State = system.InputState{MouseX: int(p.X()), MouseY: int(p.Y())}
}

func (h *harness) settle() {
	for i := 0; i < 600 && h.stack.Pending() != state.ChangeNone; i++ {
		h.stack.Update(dt)
	}
	require.Equal(h.t, state.ChangeNone, h.stack.Pending(), "change never committed")
}

func TestMenu_InitBuildsLayerAndStartsMusic(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 1, h.stack.Len())
	layer := h.ui.Active()
	require.NotNil(t, layer)
	assert.Same(t, h.ui.Get(LayerID), layer)
	for _, id := range []string{"play", "settings", "exit"} {
		assert.NotNil(t, layer.Button(id), id)
	}
	assert.Equal(t, 1, h.music.plays)
}

func TestMenu_SettingsRoundTrip(t *testing.T) {
	h := newHarness(t)
	settingsPos := h.ui.Get(LayerID).Button("settings").Position()

	h.click(settingsPos)
	assert.Equal(t, state.ChangePush, h.stack.Pending())
	assert.Equal(t, 1, h.music.pauses, "menu paused as soon as the push is requested")

	h.settle()
	require.Equal(t, 2, h.stack.Len())
	overlay, ok := h.stack.Top().(*settings.Settings)
	require.True(t, ok)
	assert.Same(t, h.ui.Get(settings.LayerID), h.ui.Active())
	assert.Zero(t, h.menu.BorderOpacity(), "exit transition faded the border out")

	// menu stays visible under the overlay
	rec := render.NewRecording()
	h.stack.Render(rec)
	assert.Greater(t, rec.Count(render.OpRect), 7)

	h.click(h.ui.Get(settings.LayerID).Button("volume-up").Position())
	assert.InDelta(t, 0.6, h.music.volume, 1e-9)

	h.click(h.ui.Get(settings.LayerID).Button("back").Position())
	assert.Equal(t, state.ChangePop, h.stack.Pending())
	assert.Equal(t, 1, h.stack.Len(), "popped scene leaves the stack at once")
	assert.Nil(t, h.ui.Get(settings.LayerID))
	assert.Greater(t, overlay.Opacity(), 0.0)

	plays := h.music.plays
	h.settle()
	assert.Zero(t, overlay.Opacity())
	assert.Equal(t, 255.0, h.menu.BorderOpacity(), "enter transition faded the border in")
	assert.Same(t, h.ui.Get(LayerID), h.ui.Active(), "resume reactivates the menu layer")
	assert.Equal(t, plays+1, h.music.plays)
}

func TestMenu_ExitEmptiesStack(t *testing.T) {
	h := newHarness(t)

	h.click(h.ui.Get(LayerID).Button("exit").Position())
	assert.Equal(t, 0, h.stack.Len())
	assert.Equal(t, 1, h.music.closed)
	assert.Nil(t, h.ui.Active())
	assert.True(t, h.stack.IsActive(), "exit transition still pending")

	h.settle()
	assert.False(t, h.stack.IsActive())
}

func TestMenu_PlaySwitchesBehindCurtain(t *testing.T) {
	in := &system.StaticInput{}
	manager := ui.NewManager(in, width, height)
	tr := transition.New(render.NewCamera(width, height))
	st := stack.New(tr, stack.WithUI(manager))

	next := New(st, manager, Options{Width: width, Height: height})
	m := New(st, manager, Options{
		Width:     width,
		Height:    height,
		Play:      func() scene.Scene { return next },
		PlaySpeed: 2500,
	})
	st.Push(m)
	st.Update(dt)

	pos := manager.Get(LayerID).Button("play").Position()
	in.State = system.InputState{MouseX: int(pos.X()), MouseY: int(pos.Y()), Pressed: true}
	st.Update(dt)
	in.State = system.InputState{MouseX: int(pos.X()), MouseY: int(pos.Y()), Released: true}
	st.Update(dt)

	assert.Equal(t, state.ChangeSwitch, st.Pending())
	assert.True(t, tr.IsPlaying())
	assert.Equal(t, 2500.0, tr.Speed())

	for i := 0; i < 600 && st.Pending() != state.ChangeNone; i++ {
		st.Update(dt)
	}
	assert.Same(t, next, st.Top())
	assert.Equal(t, 1, st.Len())
}

func TestMenu_EffectsWrap(t *testing.T) {
	m := New(nil, ui.NewManager(&system.StaticInput{}, width, height), Options{Width: width, Height: height})
	m.Init()
	start := m.effects[0]

	// 3420 units at 200/s wraps once
	for i := 0; i < 60*18; i++ {
		m.Update(dt)
	}
	assert.Less(t, m.effects[0].X(), width+1070.0)
	assert.NotEqual(t, start, m.effects[0])
	assert.Equal(t, 255.0, m.BorderOpacity())
}
