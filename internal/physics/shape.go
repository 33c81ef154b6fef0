package physics

import "github.com/san-kum/bouncesim/internal/dynamo"

// Kind tags the concrete shape behind a [Shape].
type Kind int

const (
	KindCircle Kind = iota + 1
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Renderer receives tessellated shapes. Vertices arrive in triangle-fan
// order: center first, then the closed perimeter.
type Renderer interface {
	DrawFan(vertices []dynamo.Vec2)
}

// Shape is the capability set every simulated entity exposes to a driver.
type Shape interface {
	Kind() Kind
	// Draw tessellates the shape into triangle-fan vertices.
	Draw() []dynamo.Vec2
	// Render hands the tessellation to r. A nil r is a no-op.
	Render(r Renderer)
	// Update advances the shape by dt seconds.
	Update(cfg dynamo.Config, dt float64)
	Snapshot() dynamo.Snapshot
}
