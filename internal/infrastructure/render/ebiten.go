package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// lineSpacing is the text line height relative to the font size
const lineSpacing = 1.2

// Ebiten renders onto ebiten images.
// The scene framebuffer has the fixed logical size passed to NewEbiten;
// Flush stretches it over the screen bound by BeginFrame.
type Ebiten struct {
	scene  *ebiten.Image
	screen *ebiten.Image
	pixel  *ebiten.Image
	target Target
	clear  color.RGBA

	fontSrc *text.GoTextFaceSource
	faces   map[float64]*text.GoTextFace
}

// NewEbiten creates a renderer with a width x height scene framebuffer
func NewEbiten(width, height int) (*Ebiten, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	return &Ebiten{
		scene:   ebiten.NewImage(width, height),
		pixel:   pixel,
		target:  TargetDefault,
		clear:   color.RGBA{0, 0, 0, 255},
		fontSrc: src,
		faces:   make(map[float64]*text.GoTextFace),
	}, nil
}

// BeginFrame binds the screen image for the current frame
func (e *Ebiten) BeginFrame(screen *ebiten.Image) {
	e.screen = screen
	e.target = TargetDefault
}

// SetTarget selects the image subsequent draw calls go to
func (e *Ebiten) SetTarget(t Target) {
	e.target = t
}

// SetClearColor sets the color used by Clear
func (e *Ebiten) SetClearColor(c color.RGBA) {
	e.clear = c
}

// Clear fills the current target with the clear color
func (e *Ebiten) Clear() {
	if dst := e.current(); dst != nil {
		dst.Fill(e.clear)
	}
}

// DrawRect draws a filled, optionally rotated rectangle
func (e *Ebiten) DrawRect(cam Camera, c color.RGBA, center, size mgl64.Vec2, rotation float64) {
	dst := e.current()
	if dst == nil || c.A == 0 {
		return
	}
	b := dst.Bounds()
	sx, sy := cam.Scale(b.Dx(), b.Dy())
	rel := center.Sub(cam.Position)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size.X(), size.Y())
	op.GeoM.Translate(-size.X()/2, -size.Y()/2)
	op.GeoM.Rotate(rotation * math.Pi / 180)
	op.GeoM.Translate(rel.X(), rel.Y())
	op.GeoM.Scale(sx, sy)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(e.pixel, op)
}

// DrawText draws s centred on center
func (e *Ebiten) DrawText(cam Camera, s string, c color.RGBA, fontSize float64, center mgl64.Vec2) {
	dst := e.current()
	if dst == nil || s == "" {
		return
	}
	face := e.face(fontSize)
	w, h := text.Measure(s, face, fontSize*lineSpacing)

	b := dst.Bounds()
	sx, sy := cam.Scale(b.Dx(), b.Dy())
	rel := center.Sub(cam.Position)

	op := &text.DrawOptions{}
	op.LineSpacing = fontSize * lineSpacing
	op.GeoM.Translate(rel.X()-w/2, rel.Y()-h/2)
	op.GeoM.Scale(sx, sy)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}

// MeasureText returns the size of s in scene units
func (e *Ebiten) MeasureText(s string, fontSize float64) (float64, float64) {
	return text.Measure(s, e.face(fontSize), fontSize*lineSpacing)
}

// Flush stretches the scene framebuffer over the screen and rebinds the default target
func (e *Ebiten) Flush() {
	e.target = TargetDefault
	if e.screen == nil {
		return
	}
	sb := e.scene.Bounds()
	db := e.screen.Bounds()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	op.Filter = ebiten.FilterLinear
	e.screen.DrawImage(e.scene, op)
}

// Size returns the scene framebuffer size in pixels
func (e *Ebiten) Size() (int, int) {
	b := e.scene.Bounds()
	return b.Dx(), b.Dy()
}

func (e *Ebiten) current() *ebiten.Image {
	if e.target == TargetScene {
		return e.scene
	}
	return e.screen
}

func (e *Ebiten) face(size float64) *text.GoTextFace {
	if f, ok := e.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: e.fontSrc, Size: size}
	e.faces[size] = f
	return f
}
