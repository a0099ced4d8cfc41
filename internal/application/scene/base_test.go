package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/younwookim/squarerun/internal/infrastructure/render"
)

// emptyScene is the smallest Scene built on Base
type emptyScene struct {
	Base
}

func (e *emptyScene) Init()                    {}
func (e *emptyScene) Destroy()                 {}
func (e *emptyScene) Update(dt float64)        {}
func (e *emptyScene) Render(r render.Renderer) {}

var _ Scene = (*emptyScene)(nil)

func TestNewBase_Defaults(t *testing.T) {
	s := &emptyScene{Base: NewBase(1920, 1080)}

	assert.False(t, s.UpdateWhilePaused(), "paused scenes stop updating by default")
	assert.True(t, s.RenderWhilePaused(), "paused scenes keep rendering by default")
	assert.Equal(t, mgl64.Vec2{1920, 1080}, s.Camera().Size)
}

func TestBase_HooksFinishImmediately(t *testing.T) {
	s := &emptyScene{Base: NewBase(100, 100)}

	assert.False(t, s.OnExitTransitionUpdate(1.0/60))
	assert.False(t, s.OnStartTransitionUpdate(1.0/60))

	// Pause and Resume are no-ops
	s.Pause()
	s.Resume()
}

func TestBase_Setters(t *testing.T) {
	s := &emptyScene{Base: NewBase(100, 100)}

	s.SetUpdateWhilePaused(true)
	s.SetRenderWhilePaused(false)
	assert.True(t, s.UpdateWhilePaused())
	assert.False(t, s.RenderWhilePaused())

	cam := render.NewCamera(50, 50)
	cam.Position = mgl64.Vec2{10, 10}
	s.SetCamera(cam)
	assert.Equal(t, cam, s.Camera())
}
