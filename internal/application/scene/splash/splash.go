// Package splash is the title card shown at startup
package splash

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/squarerun/internal/application/scene"
	"github.com/younwookim/squarerun/internal/infrastructure/render"
)

var (
	colorBackground = color.RGBA{0, 0, 0, 255}
	colorTitle      = color.RGBA{255, 255, 255, 255}
	colorSubtitle   = color.RGBA{160, 160, 160, 255}
)

// Options configures the splash screen
type Options struct {
	Title    string
	Subtitle string
	Duration float64 // seconds before switching on
	Speed    float64 // curtain speed for the switch, zero for the stack default
	Width    float64
	Height   float64
}

// Splash shows a title for a while, then switches to the scene built by next
type Splash struct {
	scene.Base

	director scene.Director
	next     func() scene.Scene
	opts     Options

	elapsed float64
	target  scene.Scene
	done    bool
}

var _ scene.Scene = (*Splash)(nil)

// New creates a splash screen. next is called once per run, when the duration has passed.
func New(director scene.Director, next func() scene.Scene, opts Options) *Splash {
	return &Splash{
		Base:     scene.NewBase(opts.Width, opts.Height),
		director: director,
		next:     next,
		opts:     opts,
	}
}

// Init restarts the timer (implements scene.Scene)
func (s *Splash) Init() {
	s.elapsed = 0
	s.target = nil
	s.done = false
}

// Destroy stops further switch requests (implements scene.Scene)
func (s *Splash) Destroy() {
	s.done = true
}

// Update advances the timer and requests the switch once it runs out.
// The request is repeated every tick until the stack replaces the splash,
// since a request made while another change is pending is dropped.
func (s *Splash) Update(dt float64) {
	s.elapsed += dt
	if s.done || s.elapsed < s.opts.Duration {
		return
	}
	if s.target == nil {
		s.target = s.next()
	}
	s.director.Switch(s.target, s.opts.Speed)
}

// Render draws the title card (implements scene.Scene)
func (s *Splash) Render(r render.Renderer) {
	cam := s.Camera()
	center := cam.Center()

	r.DrawRect(cam, colorBackground, center, cam.Size, 0)

	// title fades in over the first second
	alpha := math.Min(1, s.elapsed)
	title := colorTitle
	title.A = uint8(255 * alpha)
	title.R = uint8(float64(title.R) * alpha)
	title.G = uint8(float64(title.G) * alpha)
	title.B = uint8(float64(title.B) * alpha)
	r.DrawText(cam, s.opts.Title, title, 150, center)

	if s.opts.Subtitle != "" {
		r.DrawText(cam, s.opts.Subtitle, colorSubtitle, 40, center.Add(mgl64.Vec2{0, 150}))
	}
}

// Elapsed returns the seconds spent on screen
func (s *Splash) Elapsed() float64 {
	return s.elapsed
}
