package render

import "github.com/san-kum/bouncesim/internal/dynamo"

// Viewport maps arena coordinates onto a pixel grid. The visible region spans
// x in [-aspect, aspect] and y in [-1, 1], with y pointing up in the arena and
// down on the grid.
type Viewport struct {
	Width, Height int
}

func NewViewport(width, height int) Viewport {
	return Viewport{Width: width, Height: height}
}

func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}

// ToPixel converts an arena point to grid coordinates.
func (v Viewport) ToPixel(p dynamo.Vec2) (float64, float64) {
	aspect := v.Aspect()
	x := (p.X + aspect) / (2 * aspect) * float64(v.Width)
	y := (1 - p.Y) / 2 * float64(v.Height)
	return x, y
}

// Bounds returns the arena rectangle in grid coordinates as the top-left
// corner and the size.
func (v Viewport) Bounds() (x, y, w, h float64) {
	x0, y0 := v.ToPixel(dynamo.V(dynamo.BoundLeft, dynamo.BoundTop))
	x1, y1 := v.ToPixel(dynamo.V(dynamo.BoundRight, dynamo.BoundBottom))
	return x0, y0, x1 - x0, y1 - y0
}
