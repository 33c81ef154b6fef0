package physics

import (
	"math"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

// pairState is the part of a circle the resolver reads and writes. Resolution
// functions take two values and return both updated values.
type pairState struct {
	mass        float64
	radius      float64
	restitution int
	position    dynamo.Vec2
	velocity    dynamo.Vec2
}

func stateOf(c *Circle) pairState {
	return pairState{
		mass:        c.mass,
		radius:      c.radius,
		restitution: c.restitution,
		position:    c.position,
		velocity:    c.velocity,
	}
}

func (s pairState) apply(c *Circle) {
	c.setPosition(s.position)
	c.setVelocity(s.velocity)
}

func (s pairState) momentum() dynamo.Vec2 { return s.velocity.Scale(s.mass) }

// resolveElastic scales the dominant body's velocity by its restitution and
// the mass ratio, then gives the recessive body whatever momentum remains.
func resolveElastic(dom, rec pairState, cfg dynamo.Config) (pairState, pairState) {
	total := dom.momentum().Add(rec.momentum())

	scale := cfg.RestitutionScale(dom.restitution) * (dom.mass / rec.mass)
	dom.velocity.X *= scale
	dom.velocity.Y *= scale

	rec.velocity.X = (total.X - dom.mass*dom.velocity.X) / rec.mass
	rec.velocity.Y = (total.Y - dom.mass*dom.velocity.Y) / rec.mass

	return separate(dom, rec)
}

// resolveInelastic moves both bodies with the damped common velocity plus a
// small push apart along the normal so they do not stick.
func resolveInelastic(a, b pairState, cfg dynamo.Config) (pairState, pairState) {
	n := normal(a, b)
	total := a.momentum().Add(b.momentum())
	combined := a.mass + b.mass
	final := dynamo.Vec2{
		X: total.X / combined * cfg.InelasticDamping,
		Y: total.Y / combined * cfg.InelasticDamping,
	}

	push := n.Scale(cfg.SeparationSpeed)
	a.velocity = final.Add(push)
	b.velocity = final.Sub(push)

	return separate(a, b)
}

// separate pushes a and b apart by half the penetration depth each.
func separate(a, b pairState) (pairState, pairState) {
	d := a.distance(b)
	n := normal(a, b)
	half := ((a.radius + b.radius) - d) * 0.5

	a.position.X += n.X * half
	a.position.Y += n.Y * half
	b.position.X -= n.X * half
	b.position.Y -= n.Y * half
	return a, b
}

// normal is the unit vector from b to a.
func normal(a, b pairState) dynamo.Vec2 {
	dx := a.position.X - b.position.X
	dy := a.position.Y - b.position.Y
	d := math.Hypot(dx, dy)
	return dynamo.Vec2{X: dx / d, Y: dy / d}
}
