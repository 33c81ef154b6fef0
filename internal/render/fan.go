// Package render turns shapes into drawable primitives and maps arena
// coordinates onto raster targets.
package render

import (
	"math"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

// TriangleFan tessellates a circle. The center comes first, followed by
// resolution+1 perimeter vertices evenly spaced over one full turn; the last
// vertex repeats the first so the fan is closed.
func TriangleFan(center dynamo.Vec2, radius float64, resolution int) []dynamo.Vec2 {
	if resolution <= 0 {
		return []dynamo.Vec2{center}
	}
	verts := make([]dynamo.Vec2, 0, resolution+2)
	verts = append(verts, center)
	for i := 0; i <= resolution; i++ {
		angle := 2 * math.Pi * (float64(i) / float64(resolution))
		verts = append(verts, dynamo.Vec2{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		})
	}
	return verts
}

// Perimeter returns the fan without its center vertex.
func Perimeter(fan []dynamo.Vec2) []dynamo.Vec2 {
	if len(fan) < 2 {
		return nil
	}
	return fan[1:]
}
