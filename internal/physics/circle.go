package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/render"
)

const (
	DefaultRadius      = 0.10
	DefaultResolution  = 100
	DefaultRestitution = 80
	MaxRestitution     = 99
)

// Circle is a body with a fixed radius.
type Circle struct {
	Body
	radius      float64
	resolution  int
	restitution int
}

type CircleOption func(*Circle) error

// WithRadius overrides the default radius. The radius cannot change after
// construction.
func WithRadius(r float64) CircleOption {
	return func(c *Circle) error {
		if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("physics: radius must be positive and finite, got %v", r)
		}
		c.radius = r
		return nil
	}
}

// WithResolution sets the number of perimeter segments used by Draw.
func WithResolution(n int) CircleOption {
	return func(c *Circle) error {
		if n < 3 {
			return fmt.Errorf("physics: resolution must be at least 3, got %d", n)
		}
		c.resolution = n
		return nil
	}
}

func WithRestitution(r int) CircleOption {
	return func(c *Circle) error {
		return c.SetRestitution(r)
	}
}

func NewCircle(mass float64, pos, vel dynamo.Vec2, opts ...CircleOption) (*Circle, error) {
	body, err := newBody(mass, pos, vel)
	if err != nil {
		return nil, err
	}
	c := &Circle{
		Body:        body,
		radius:      DefaultRadius,
		resolution:  DefaultResolution,
		restitution: DefaultRestitution,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Circle) Kind() Kind       { return KindCircle }
func (c *Circle) Radius() float64  { return c.radius }
func (c *Circle) Resolution() int  { return c.resolution }
func (c *Circle) Restitution() int { return c.restitution }

// SetRestitution stores r as the restitution percentage. Values outside
// [0, 99] are rejected and the previous value is kept.
func (c *Circle) SetRestitution(r int) error {
	if r < 0 || r > MaxRestitution {
		return fmt.Errorf("%w: got %d", dynamo.ErrRestitutionRange, r)
	}
	c.restitution = r
	return nil
}

func (c *Circle) Draw() []dynamo.Vec2 {
	return render.TriangleFan(c.position, c.radius, c.resolution)
}

func (c *Circle) Render(r Renderer) {
	if r == nil {
		return
	}
	r.DrawFan(c.Draw())
}

// OnGround reports resting contact: touching the floor with a vertical
// speed below the rest threshold.
func (c *Circle) OnGround(cfg dynamo.Config) bool {
	return c.position.Y-c.radius <= dynamo.BoundBottom && math.Abs(c.velocity.Y) < cfg.RestSpeed
}

// Update integrates one frame with explicit Euler and then resolves the four
// walls independently, in the order left, right, bottom, top.
func (c *Circle) Update(cfg dynamo.Config, dt float64) {
	// Gravity is suppressed while resting so the body does not jitter.
	if !c.OnGround(cfg) {
		c.velocity.Y -= cfg.Gravity * dt
	}

	c.position.X += c.velocity.X * dt
	c.position.Y += c.velocity.Y * dt

	if c.position.X-c.radius < dynamo.BoundLeft {
		c.position.X = dynamo.BoundLeft + c.radius
		c.velocity.X *= -cfg.WallDamping
	}
	if c.position.X+c.radius > dynamo.BoundRight {
		c.position.X = dynamo.BoundRight - c.radius
		c.velocity.X *= -cfg.WallDamping
	}
	if c.position.Y-c.radius < dynamo.BoundBottom {
		c.position.Y = dynamo.BoundBottom + c.radius
		if math.Abs(c.velocity.Y) < cfg.RestSpeed {
			c.velocity.Y = 0
			c.velocity.X *= cfg.GroundFriction
		} else {
			c.velocity.Y *= -cfg.WallDamping
		}
	}
	if c.position.Y+c.radius > dynamo.BoundTop {
		c.position.Y = dynamo.BoundTop - c.radius
		c.velocity.Y *= -cfg.WallDamping
	}
}

func (c *Circle) Snapshot() dynamo.Snapshot {
	return dynamo.Snapshot{
		Kind:        c.Kind().String(),
		Mass:        c.mass,
		Radius:      c.radius,
		Restitution: c.restitution,
		Position:    c.position,
		Velocity:    c.velocity,
	}
}
