// Package settings is the overlay pushed above the main menu
package settings

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/squarerun/internal/application/scene"
	"github.com/younwookim/squarerun/internal/application/ui"
	"github.com/younwookim/squarerun/internal/infrastructure/render"
)

// LayerID is the UI layer owned by the overlay
const LayerID = "settings"

const (
	volumeStep = 0.1
	fadeSpeed  = 600.0 // opacity per second
)

var (
	colorShade  = color.RGBA{0, 0, 0, 160}
	colorPanel  = color.RGBA{30, 30, 30, 255}
	colorButton = color.RGBA{255, 0, 0, 255}
	colorText   = color.RGBA{255, 255, 255, 255}
)

// Volume is the audio control the overlay adjusts
type Volume interface {
	Volume() float64
	SetVolume(volume float64)
}

// Settings shows the volume controls and a BACK button that pops it
type Settings struct {
	scene.Base

	director scene.Director
	ui       *ui.Manager
	volume   Volume

	opacity float64
}

var _ scene.Scene = (*Settings)(nil)

// New creates the overlay. volume may be nil, which hides the volume controls.
func New(director scene.Director, manager *ui.Manager, volume Volume, width, height float64) *Settings {
	return &Settings{
		Base:     scene.NewBase(width, height),
		director: director,
		ui:       manager,
		volume:   volume,
	}
}

// Init builds the settings layer (implements scene.Scene)
func (s *Settings) Init() {
	s.opacity = 0

	cam := s.Camera()
	w, h := cam.Size.X(), cam.Size.Y()
	layer := s.ui.Create(LayerID, cam)
	s.ui.SetActive(LayerID)

	back := layer.AddButton("back", ui.ButtonOptions{
		Text:      "BACK",
		TextColor: colorText,
		FontSize:  h * 0.06,
		Position:  mgl64.Vec2{w / 2, h * 0.75},
		Size:      mgl64.Vec2{w * 0.25, h * 0.12},
		Color:     colorButton,
		Hover:     ui.HoverEnlargeAllRound,
	})
	back.OnClick(s.director.Pop)
	layer.OnBack(s.director.Pop)

	if s.volume == nil {
		return
	}
	down := layer.AddButton("volume-down", ui.ButtonOptions{
		Text:      "-",
		TextColor: colorText,
		FontSize:  h * 0.08,
		Position:  mgl64.Vec2{w * 0.35, h * 0.5},
		Size:      mgl64.Vec2{h * 0.12, h * 0.12},
		Color:     colorButton,
		Hover:     ui.HoverEnlargeAllRound,
	})
	up := layer.AddButton("volume-up", ui.ButtonOptions{
		Text:      "+",
		TextColor: colorText,
		FontSize:  h * 0.08,
		Position:  mgl64.Vec2{w * 0.65, h * 0.5},
		Size:      mgl64.Vec2{h * 0.12, h * 0.12},
		Color:     colorButton,
		Hover:     ui.HoverEnlargeRight,
	})
	down.OnClick(func() { s.adjustVolume(-volumeStep) })
	up.OnClick(func() { s.adjustVolume(volumeStep) })
}

func (s *Settings) adjustVolume(delta float64) {
	v := math.Round((s.volume.Volume()+delta)*10) / 10
	s.volume.SetVolume(math.Max(0, math.Min(1, v)))
}

// Destroy removes the settings layer (implements scene.Scene)
func (s *Settings) Destroy() {
	s.ui.Remove(LayerID)
}

// Update fades the panel in (implements scene.Scene)
func (s *Settings) Update(dt float64) {
	s.opacity = math.Min(s.opacity+fadeSpeed*dt, 255)
}

// OnExitTransitionUpdate fades the panel out after BACK
func (s *Settings) OnExitTransitionUpdate(dt float64) bool {
	s.opacity = math.Max(s.opacity-fadeSpeed*dt, 0)
	return s.opacity > 0
}

// Render draws the shade, panel and volume label (implements scene.Scene)
func (s *Settings) Render(r render.Renderer) {
	cam := s.Camera()
	center := cam.Center()
	a := s.opacity / 255

	r.DrawRect(cam, scale(colorShade, a), center, cam.Size, 0)
	r.DrawRect(cam, scale(colorPanel, a), center, cam.Size.Mul(0.6), 0)
	r.DrawText(cam, "SETTINGS", scale(colorText, a), cam.Size.Y()*0.08, mgl64.Vec2{center.X(), cam.Size.Y() * 0.3})

	if s.volume != nil {
		label := fmt.Sprintf("VOLUME %d%%", int(math.Round(s.volume.Volume()*100)))
		r.DrawText(cam, label, scale(colorText, a), cam.Size.Y()*0.05, center)
	}
}

// Opacity returns the panel opacity, 0..255
func (s *Settings) Opacity() float64 {
	return s.opacity
}

func scale(c color.RGBA, a float64) color.RGBA {
	return color.RGBA{
		uint8(float64(c.R) * a),
		uint8(float64(c.G) * a),
		uint8(float64(c.B) * a),
		uint8(float64(c.A) * a),
	}
}

// Volume returns the audio control, or nil when there is none
func (s *Settings) Volume() Volume {
	return s.volume
}
