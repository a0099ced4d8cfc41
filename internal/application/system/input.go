package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState holds the pointer and key state for one tick.
// Mouse coordinates are in logical screen pixels.
type InputState struct {
	MouseX   int
	MouseY   int
	Pressed  bool // left button went down this tick
	Down     bool // left button is held
	Released bool // left button went up this tick
	Back     bool // escape went down this tick
}

// InputSource produces one InputState per tick
type InputSource interface {
	GetInput() InputState
}

// InputSystem polls ebiten for the UI layer
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	mx, my := ebiten.CursorPosition()
	return InputState{
		MouseX:   mx,
		MouseY:   my,
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Down:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		Back:     inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

// StaticInput is an InputSource that always returns the same state.
// Set State between ticks to script input.
type StaticInput struct {
	State InputState
}

// GetInput returns the scripted state
func (s *StaticInput) GetInput() InputState {
	return s.State
}
