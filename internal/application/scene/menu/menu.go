// Package menu is the main menu scene
package menu

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/squarerun/internal/application/scene"
	"github.com/younwookim/squarerun/internal/application/ui"
	"github.com/younwookim/squarerun/internal/infrastructure/render"
)

// LayerID is the UI layer owned by the menu
const LayerID = "main-menu"

const (
	effectSpeed = 200.0
	// borderFadeIn is the opacity gained per second while the menu runs
	borderFadeIn = 150.0
	// borderFadeTransition is the opacity change per second during custom transitions
	borderFadeTransition = 600.0
)

var (
	colorBackground = color.RGBA{0, 120, 0, 255}
	colorBorder     = color.RGBA{0, 255, 0, 255}
	colorButton     = color.RGBA{255, 0, 0, 255}
	colorButtonText = color.RGBA{255, 255, 255, 255}
	effectColors    = [4]color.RGBA{
		{255, 0, 0, 255},
		{0, 0, 255, 255},
		{255, 0, 255, 255},
		{255, 255, 0, 255},
	}
)

// Music is the background track the menu owns
type Music interface {
	Play()
	Pause()
	Close() error
}

// Options wires the menu to the rest of the game
type Options struct {
	Width  float64
	Height float64
	// Play builds the scene switched to by PLAY. Nil leaves PLAY inert.
	Play func() scene.Scene
	// Settings builds the overlay pushed by SETTINGS
	Settings func() scene.Scene
	// PlaySpeed is the curtain speed for PLAY, zero for the stack default
	PlaySpeed float64
	// Music is started on Init and closed on Destroy. May be nil.
	Music Music
}

// Menu shows PLAY, SETTINGS and EXIT over a moving backdrop.
// EXIT pops the menu, which empties the stack and ends the game.
type Menu struct {
	scene.Base

	director scene.Director
	ui       *ui.Manager
	opts     Options

	borderOpacity float64
	effects       [4]mgl64.Vec2
	paused        bool
}

var _ scene.Scene = (*Menu)(nil)

// New creates the main menu
func New(director scene.Director, manager *ui.Manager, opts Options) *Menu {
	return &Menu{
		Base:     scene.NewBase(opts.Width, opts.Height),
		director: director,
		ui:       manager,
		opts:     opts,
	}
}

// Init builds the menu layer and starts the music (implements scene.Scene)
func (m *Menu) Init() {
	m.borderOpacity = 0
	m.paused = false
	m.resetHorizontalEffects()
	m.resetVerticalEffects()

	layer := m.ui.Create(LayerID, m.Camera())
	m.ui.SetActive(LayerID)

	size := mgl64.Vec2{m.opts.Width * 0.35, m.opts.Height * 0.36}
	left, right := m.opts.Width*0.3, m.opts.Width*0.7
	top, bottom := m.opts.Height*0.3, m.opts.Height*0.75

	play := layer.AddButton("play", m.button("PLAY", mgl64.Vec2{left, top}, size))
	settings := layer.AddButton("settings", m.button("SETTINGS", mgl64.Vec2{right, top}, size))
	exit := layer.AddButton("exit", m.button("EXIT", mgl64.Vec2{(left + right) / 2, bottom}, size))

	play.OnClick(func() {
		if m.opts.Play != nil {
			m.director.Switch(m.opts.Play(), m.opts.PlaySpeed)
		}
	})
	settings.OnClick(func() {
		if m.opts.Settings != nil {
			m.director.Push(m.opts.Settings())
		}
	})
	exit.OnClick(func() { m.director.Pop() })

	if m.opts.Music != nil {
		m.opts.Music.Play()
	}
}

func (m *Menu) button(label string, pos, size mgl64.Vec2) ui.ButtonOptions {
	return ui.ButtonOptions{
		Text:      label,
		TextColor: colorButtonText,
		FontSize:  size.Y() * 0.29,
		Position:  pos,
		Size:      size,
		Color:     colorButton,
		Hover:     ui.HoverEnlargeAllRound,
	}
}

// Destroy removes the menu layer and closes the music (implements scene.Scene)
func (m *Menu) Destroy() {
	m.ui.Remove(LayerID)
	if m.opts.Music != nil {
		_ = m.opts.Music.Close()
	}
}

// Pause stops the music while an overlay is on top (implements scene.Scene)
func (m *Menu) Pause() {
	m.paused = true
	if m.opts.Music != nil {
		m.opts.Music.Pause()
	}
}

// Resume reactivates the menu layer and the music (implements scene.Scene)
func (m *Menu) Resume() {
	m.paused = false
	m.ui.SetActive(LayerID)
	if m.opts.Music != nil {
		m.opts.Music.Play()
	}
}

// Update moves the effects and fades the border in (implements scene.Scene)
func (m *Menu) Update(dt float64) {
	m.updateEffects(dt)

	if !m.paused && m.borderOpacity < 255 {
		m.borderOpacity = math.Min(m.borderOpacity+borderFadeIn*dt, 255)
	}
}

// OnExitTransitionUpdate fades the border out
func (m *Menu) OnExitTransitionUpdate(dt float64) bool {
	m.borderOpacity = math.Max(m.borderOpacity-borderFadeTransition*dt, 0)
	return m.borderOpacity > 0
}

// OnStartTransitionUpdate fades the border back in
func (m *Menu) OnStartTransitionUpdate(dt float64) bool {
	m.borderOpacity = math.Min(m.borderOpacity+borderFadeTransition*dt, 255)
	return m.borderOpacity < 255
}

func (m *Menu) updateEffects(dt float64) {
	step := effectSpeed * dt
	m.effects[0] = m.effects[0].Add(mgl64.Vec2{step, 0})
	m.effects[1] = m.effects[1].Sub(mgl64.Vec2{step, 0})
	m.effects[2] = m.effects[2].Add(mgl64.Vec2{0, step})
	m.effects[3] = m.effects[3].Sub(mgl64.Vec2{0, step})

	if m.effects[0].X() >= m.opts.Width+1070 {
		m.resetHorizontalEffects()
	}
	if m.effects[2].Y() >= m.opts.Height+930 {
		m.resetVerticalEffects()
	}
}

func (m *Menu) resetHorizontalEffects() {
	m.effects[0] = mgl64.Vec2{-750, m.opts.Height/2 - 10}
	m.effects[1] = mgl64.Vec2{m.opts.Width + 1070, m.opts.Height/2 + 10}
}

func (m *Menu) resetVerticalEffects() {
	m.effects[2] = mgl64.Vec2{m.opts.Width/2 - 10, -750}
	m.effects[3] = mgl64.Vec2{m.opts.Width/2 + 10, m.opts.Height + 930}
}

// Render draws the backdrop, border and effects (implements scene.Scene)
func (m *Menu) Render(r render.Renderer) {
	cam := m.Camera()
	center := cam.Center()

	r.DrawRect(cam, colorBackground, center, cam.Size, 0)

	a := m.borderOpacity / 255
	border := color.RGBA{
		uint8(float64(colorBorder.R) * a),
		uint8(float64(colorBorder.G) * a),
		uint8(float64(colorBorder.B) * a),
		uint8(float64(colorBorder.A) * a),
	}
	r.DrawRect(cam, border, center, cam.Size.Mul(0.98), 0)
	r.DrawRect(cam, colorBackground, center, cam.Size.Mul(0.96), 0)

	for i, p := range m.effects {
		size := mgl64.Vec2{1000, 10}
		if i >= 2 {
			size = mgl64.Vec2{10, 1000}
		}
		r.DrawRect(cam, effectColors[i], p, size, 0)
	}
}

// BorderOpacity returns the border opacity, 0..255
func (m *Menu) BorderOpacity() float64 {
	return m.borderOpacity
}

// Options returns the options the menu was created with
func (m *Menu) Options() Options {
	return m.opts
}
