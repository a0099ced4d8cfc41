// Package ui is the interactive overlay drawn above the scenes.
//
// A Manager owns any number of named layers; exactly one (or none) is
// active at a time and only the active layer is updated and drawn. The
// scene stack forwards UpdateActive only while no transition is playing.
package ui

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/squarerun/internal/application/system"
	"github.com/younwookim/squarerun/internal/infrastructure/render"
)

type namedButton struct {
	id     string
	button *Button
}

// Layer is a set of buttons drawn with one camera
type Layer struct {
	camera  render.Camera
	buttons []namedButton
	onBack  func()
}

// OnBack sets the function called when the back key is pressed while the layer is active
func (l *Layer) OnBack(fn func()) {
	l.onBack = fn
}

// AddButton adds a button under id. If id is taken the existing button is returned unchanged.
func (l *Layer) AddButton(id string, opts ButtonOptions) *Button {
	if b := l.Button(id); b != nil {
		return b
	}
	b := newButton(opts)
	l.buttons = append(l.buttons, namedButton{id: id, button: b})
	return b
}

// Button returns the button with the given id, or nil
func (l *Layer) Button(id string) *Button {
	for _, nb := range l.buttons {
		if nb.id == id {
			return nb.button
		}
	}
	return nil
}

// Len returns the number of buttons
func (l *Layer) Len() int {
	return len(l.buttons)
}

func (l *Layer) update(dt float64, in system.InputState, cursor mgl64.Vec2) {
	// every button sees this tick's input, even if a callback switches layers
	for _, nb := range l.buttons {
		nb.button.update(dt, in, cursor)
	}
	if in.Back && l.onBack != nil {
		l.onBack()
	}
}

func (l *Layer) render(r render.Renderer) {
	for _, nb := range l.buttons {
		nb.button.render(r, l.camera)
	}
}

type namedLayer struct {
	id    string
	layer *Layer
}

// Manager holds the UI layers and tracks the active one
type Manager struct {
	input   system.InputSource
	screenW int
	screenH int
	layers  []namedLayer
	active  *Layer
}

// NewManager creates a manager reading input from source.
// screenW and screenH are the logical screen size the mouse coordinates refer to.
func NewManager(source system.InputSource, screenW, screenH int) *Manager {
	return &Manager{
		input:   source,
		screenW: screenW,
		screenH: screenH,
	}
}

// Create adds a layer under id. If id is taken the existing layer is returned.
func (m *Manager) Create(id string, cam render.Camera) *Layer {
	if l := m.Get(id); l != nil {
		return l
	}
	l := &Layer{camera: cam}
	m.layers = append(m.layers, namedLayer{id: id, layer: l})
	return l
}

// Remove deletes the layer under id, deactivating it if needed
func (m *Manager) Remove(id string) {
	for i, nl := range m.layers {
		if nl.id == id {
			if m.active == nl.layer {
				m.active = nil
			}
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			return
		}
	}
}

// SetActive makes the layer under id active. An unknown id leaves no layer active.
func (m *Manager) SetActive(id string) {
	m.active = m.Get(id)
}

// Get returns the layer under id, or nil
func (m *Manager) Get(id string) *Layer {
	for _, nl := range m.layers {
		if nl.id == id {
			return nl.layer
		}
	}
	return nil
}

// Active returns the active layer, or nil
func (m *Manager) Active() *Layer {
	return m.active
}

// UpdateActive polls input once and updates the active layer
func (m *Manager) UpdateActive(dt float64) {
	if m.active == nil {
		return
	}
	in := m.input.GetInput()
	cursor := m.active.camera.FromTarget(mgl64.Vec2{float64(in.MouseX), float64(in.MouseY)}, m.screenW, m.screenH)
	m.active.update(dt, in, cursor)
}

// RenderActive draws the active layer
func (m *Manager) RenderActive(r render.Renderer) {
	if m.active == nil {
		return
	}
	m.active.render(r)
}
