package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/render"
)

// fanRenderer draws triangle fans straight into the current raylib frame.
// The viewport is refreshed every frame so resizing keeps the aspect ratio.
type fanRenderer struct {
	viewport render.Viewport
	color    rl.Color
	buf      []rl.Vector2
}

func (r *fanRenderer) point(p dynamo.Vec2) rl.Vector2 {
	x, y := r.viewport.ToPixel(p)
	return rl.NewVector2(float32(x), float32(y))
}

// DrawFan keeps the vertex order. Counter-clockwise in the arena stays
// counter-clockwise on screen because the viewport flips y.
func (r *fanRenderer) DrawFan(vertices []dynamo.Vec2) {
	if len(vertices) < 3 {
		return
	}
	r.buf = r.buf[:0]
	for _, v := range vertices {
		r.buf = append(r.buf, r.point(v))
	}
	rl.DrawTriangleFan(r.buf, r.color)
}

func (a *App) drawArena() {
	v := a.renderer.viewport
	x, y, w, h := v.Bounds()
	rl.DrawRectangleLinesEx(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), 2, ColArena)
}
