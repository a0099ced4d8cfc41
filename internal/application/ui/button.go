package ui

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/squarerun/internal/application/system"
	"github.com/younwookim/squarerun/internal/infrastructure/render"
)

// HoverReaction selects how a button grows while hovered
type HoverReaction int

const (
	// HoverEnlargeAllRound grows the button around its centre
	HoverEnlargeAllRound HoverReaction = iota
	// HoverEnlargeRight keeps the left edge fixed and grows to the right
	HoverEnlargeRight
)

const (
	hoverScale = 1.1
	// resizeRate is the fraction of the remaining size difference closed per second
	resizeRate = 12.0
)

// ButtonOptions describes a button. Position is the button centre in scene units.
type ButtonOptions struct {
	Text            string
	TextColor       color.RGBA
	FontSize        float64
	Position        mgl64.Vec2
	Size            mgl64.Vec2
	Color           color.RGBA
	Hover           HoverReaction
	ShadowColor     color.RGBA
	ShadowThickness float64
	Opacity         float64 // 0..255, zero means fully opaque
}

// Button is a clickable, hover-reactive rectangle with a label
type Button struct {
	opts     ButtonOptions
	position mgl64.Vec2
	baseSize mgl64.Vec2
	size     mgl64.Vec2
	opacity  float64

	onClick func()
	hovered bool
	pressed bool
}

func newButton(opts ButtonOptions) *Button {
	if opts.Opacity == 0 {
		opts.Opacity = 255
	}
	if opts.ShadowThickness == 0 {
		opts.ShadowThickness = 7.5
	}
	if opts.ShadowColor == (color.RGBA{}) {
		opts.ShadowColor = color.RGBA{0, 0, 0, 100}
	}
	return &Button{
		opts:     opts,
		position: opts.Position,
		baseSize: opts.Size,
		size:     opts.Size,
		opacity:  opts.Opacity,
	}
}

// update polls the cursor (in scene units) against the button
func (b *Button) update(dt float64, in system.InputState, cursor mgl64.Vec2) {
	b.hovered = b.contains(cursor)

	target := b.baseSize
	if b.hovered {
		target = b.baseSize.Mul(hoverScale)
	}
	k := math.Min(1, resizeRate*dt)
	b.size = b.size.Add(target.Sub(b.size).Mul(k))

	if in.Pressed && b.hovered {
		b.pressed = true
	}
	if in.Released {
		clicked := b.pressed && b.hovered
		b.pressed = false
		if clicked && b.onClick != nil {
			b.onClick()
		}
	}
}

func (b *Button) render(r render.Renderer, cam render.Camera) {
	center := b.center()
	shadow := center.Add(mgl64.Vec2{b.opts.ShadowThickness, b.opts.ShadowThickness})

	r.DrawRect(cam, b.fade(b.opts.ShadowColor), shadow, b.size, 0)
	r.DrawRect(cam, b.fade(b.opts.Color), center, b.size, 0)

	fontSize := b.opts.FontSize * b.size.X() / b.baseSize.X()
	r.DrawText(cam, b.opts.Text, b.fade(b.opts.TextColor), fontSize, center)
}

// center returns the drawn centre, which shifts right for HoverEnlargeRight
func (b *Button) center() mgl64.Vec2 {
	if b.opts.Hover == HoverEnlargeRight {
		return b.position.Add(mgl64.Vec2{(b.size.X() - b.baseSize.X()) / 2, 0})
	}
	return b.position
}

func (b *Button) contains(p mgl64.Vec2) bool {
	c := b.center()
	half := b.size.Mul(0.5)
	return p.X() >= c.X()-half.X() && p.X() <= c.X()+half.X() &&
		p.Y() >= c.Y()-half.Y() && p.Y() <= c.Y()+half.Y()
}

// fade scales a color's alpha by the button opacity
func (b *Button) fade(c color.RGBA) color.RGBA {
	f := b.opacity / 255
	return color.RGBA{
		uint8(float64(c.R) * f),
		uint8(float64(c.G) * f),
		uint8(float64(c.B) * f),
		uint8(float64(c.A) * f),
	}
}

// OnClick sets the function called when the button is clicked
func (b *Button) OnClick(fn func()) {
	b.onClick = fn
}

// SetPosition sets the centre of the button
func (b *Button) SetPosition(p mgl64.Vec2) {
	b.position = p
}

// SetSize sets the resting size of the button
func (b *Button) SetSize(size mgl64.Vec2) {
	b.baseSize = size
	b.size = size
}

// SetOpacity sets the opacity, clamped to 0..255
func (b *Button) SetOpacity(opacity float64) {
	b.opacity = math.Max(0, math.Min(255, opacity))
}

// Position returns the centre of the button
func (b *Button) Position() mgl64.Vec2 { return b.position }

// Size returns the current, possibly enlarged, size
func (b *Button) Size() mgl64.Vec2 { return b.size }

// Opacity returns the opacity
func (b *Button) Opacity() float64 { return b.opacity }

// IsFocused reports whether the cursor is over the button
func (b *Button) IsFocused() bool { return b.hovered }
