package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// OpKind identifies a recorded draw call
type OpKind int

const (
	OpSetTarget OpKind = iota
	OpClear
	OpRect
	OpText
	OpFlush
)

// Op is one recorded Renderer call
type Op struct {
	Kind     OpKind
	Target   Target
	Color    color.RGBA
	Center   mgl64.Vec2
	Size     mgl64.Vec2
	Rotation float64
	Text     string
}

// Recording is a headless Renderer that keeps every call it receives.
// Text is measured with a fixed advance so layouts stay deterministic.
type Recording struct {
	Ops        []Op
	ClearColor color.RGBA
	target     Target
}

// NewRecording creates an empty recording renderer
func NewRecording() *Recording {
	return &Recording{}
}

func (r *Recording) SetTarget(t Target) {
	r.target = t
	r.Ops = append(r.Ops, Op{Kind: OpSetTarget, Target: t})
}

func (r *Recording) SetClearColor(c color.RGBA) {
	r.ClearColor = c
}

func (r *Recording) Clear() {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Target: r.target, Color: r.ClearColor})
}

func (r *Recording) DrawRect(cam Camera, c color.RGBA, center, size mgl64.Vec2, rotation float64) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Target: r.target, Color: c, Center: center, Size: size, Rotation: rotation})
}

func (r *Recording) DrawText(cam Camera, s string, c color.RGBA, fontSize float64, center mgl64.Vec2) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Target: r.target, Color: c, Center: center, Text: s})
}

func (r *Recording) MeasureText(s string, fontSize float64) (float64, float64) {
	return float64(len(s)) * fontSize * 0.5, fontSize * lineSpacing
}

func (r *Recording) Flush() {
	r.target = TargetDefault
	r.Ops = append(r.Ops, Op{Kind: OpFlush})
}

// Count returns how many recorded calls have the given kind
func (r *Recording) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops all recorded calls
func (r *Recording) Reset() {
	r.Ops = r.Ops[:0]
}
