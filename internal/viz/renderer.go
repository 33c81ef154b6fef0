package viz

import (
	"math"

	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/render"
)

// CanvasRenderer rasterises triangle fans onto a Canvas as perimeter
// outlines.
type CanvasRenderer struct {
	Canvas   *Canvas
	Viewport render.Viewport
	// Fill also draws every spoke from the center to the rim.
	Fill bool
}

func NewCanvasRenderer(c *Canvas) *CanvasRenderer {
	return &CanvasRenderer{
		Canvas:   c,
		Viewport: render.NewViewport(c.SubWidth(), c.SubHeight()),
	}
}

func (r *CanvasRenderer) pixel(p dynamo.Vec2) (int, int) {
	x, y := r.Viewport.ToPixel(p)
	return int(math.Round(x)), int(math.Round(y))
}

func (r *CanvasRenderer) DrawFan(vertices []dynamo.Vec2) {
	rim := render.Perimeter(vertices)
	if len(rim) == 0 {
		return
	}
	cx, cy := r.pixel(vertices[0])
	px, py := r.pixel(rim[0])
	for _, v := range rim[1:] {
		x, y := r.pixel(v)
		r.Canvas.DrawLine(px, py, x, y)
		if r.Fill {
			r.Canvas.DrawLine(cx, cy, x, y)
		}
		px, py = x, y
	}
}

// DrawArena outlines the world bounds.
func (r *CanvasRenderer) DrawArena() {
	x0, y0 := r.pixel(dynamo.V(dynamo.BoundLeft, dynamo.BoundTop))
	x1, y1 := r.pixel(dynamo.V(dynamo.BoundRight, dynamo.BoundBottom))
	r.Canvas.DrawRect(max(x0, 0), max(y0, 0), min(x1, r.Canvas.SubWidth()-1), min(y1, r.Canvas.SubHeight()-1))
}
