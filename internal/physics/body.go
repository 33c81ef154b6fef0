package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

// Body is the minimal physical entity. Position is the center of the body.
type Body struct {
	mass     float64
	position dynamo.Vec2
	velocity dynamo.Vec2
}

func newBody(mass float64, pos, vel dynamo.Vec2) (Body, error) {
	if mass <= 0 || math.IsNaN(mass) || math.IsInf(mass, 0) {
		return Body{}, fmt.Errorf("%w: got %v", dynamo.ErrInvalidMass, mass)
	}
	return Body{mass: mass, position: pos, velocity: vel}, nil
}

func (b *Body) Mass() float64         { return b.mass }
func (b *Body) Position() dynamo.Vec2 { return b.position }
func (b *Body) Velocity() dynamo.Vec2 { return b.velocity }

// Momentum returns mass times velocity.
func (b *Body) Momentum() dynamo.Vec2 { return b.velocity.Scale(b.mass) }

func (b *Body) setPosition(p dynamo.Vec2) { b.position = p }
func (b *Body) setVelocity(v dynamo.Vec2) { b.velocity = v }
