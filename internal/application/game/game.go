// Package game adapts the scene stack to ebiten's game loop.
package game

import (
	"io"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/squarerun/internal/infrastructure/render"
)

// Stack is the part of the scene stack the loop drives
type Stack interface {
	Update(dt float64)
	Render(r render.Renderer)
	IsActive() bool
}

// Frame is a renderer bound to ebiten's screen image once per Draw
type Frame interface {
	render.Renderer
	BeginFrame(screen *ebiten.Image)
}

// Game implements ebiten.Game on top of a scene stack.
// Each ebiten tick is one fixed-step stack update.
type Game struct {
	stack   Stack
	frame   Frame
	screenW int
	screenH int
	dt      float64
	ticks   int
	logger  *slog.Logger
}

// Option configures a Game
type Option func(*Game)

// WithLogger sets the logger used for loop events
func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithTickRate sets the fixed update rate in ticks per second
func WithTickRate(tps int) Option {
	return func(g *Game) {
		if tps > 0 {
			g.dt = 1.0 / float64(tps)
		}
	}
}

// New creates a Game drawing through frame at screenW x screenH logical pixels
func New(stack Stack, frame Frame, screenW, screenH int, opts ...Option) *Game {
	g := &Game{
		stack:   stack,
		frame:   frame,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 FPS
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g
}

// Update advances the stack by one fixed step.
// Returns ebiten.Termination once the stack has nothing left to run.
func (g *Game) Update() error {
	if !g.stack.IsActive() {
		g.logger.Info("scene stack empty, stopping", "ticks", g.ticks)
		return ebiten.Termination
	}
	g.stack.Update(g.dt)
	g.ticks++
	return nil
}

// Draw renders the stack onto the screen.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.frame.BeginFrame(screen)
	g.stack.Render(g.frame)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Ticks returns the number of updates run so far
func (g *Game) Ticks() int {
	return g.ticks
}
