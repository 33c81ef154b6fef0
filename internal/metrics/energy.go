package metrics

import (
	"github.com/san-kum/bouncesim/internal/dynamo"
)

// Series keeps every observed value so callers can plot it.
type Series struct {
	values []float64
}

func (s *Series) History() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

func (s *Series) last() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.values[len(s.values)-1]
}

func (s *Series) push(v float64) { s.values = append(s.values, v) }
func (s *Series) reset()         { s.values = s.values[:0] }

// Kinetic is the total kinetic energy 1/2 m v^2 of every body.
type Kinetic struct {
	Series
	name string
}

func NewKinetic() *Kinetic {
	return &Kinetic{name: "kinetic_energy"}
}

func (k *Kinetic) Name() string { return k.name }

func (k *Kinetic) Observe(bodies []dynamo.Snapshot, t float64) {
	k.push(KineticEnergy(bodies))
}

func (k *Kinetic) Value() float64 { return k.last() }
func (k *Kinetic) Reset()         { k.reset() }

// Potential is the total gravitational energy m g h, with h measured from
// the arena floor.
type Potential struct {
	Series
	name    string
	gravity float64
}

func NewPotential(gravity float64) *Potential {
	return &Potential{name: "potential_energy", gravity: gravity}
}

func (p *Potential) Name() string { return p.name }

func (p *Potential) Observe(bodies []dynamo.Snapshot, t float64) {
	p.push(PotentialEnergy(bodies, p.gravity))
}

func (p *Potential) Value() float64 { return p.last() }
func (p *Potential) Reset()         { p.reset() }

// Total is kinetic plus potential energy.
type Total struct {
	Series
	name    string
	gravity float64
}

func NewTotal(gravity float64) *Total {
	return &Total{name: "total_energy", gravity: gravity}
}

func (e *Total) Name() string { return e.name }

func (e *Total) Observe(bodies []dynamo.Snapshot, t float64) {
	e.push(KineticEnergy(bodies) + PotentialEnergy(bodies, e.gravity))
}

func (e *Total) Value() float64 { return e.last() }
func (e *Total) Reset()         { e.reset() }

func KineticEnergy(bodies []dynamo.Snapshot) float64 {
	sum := 0.0
	for _, b := range bodies {
		v := b.Velocity
		sum += 0.5 * b.Mass * v.Dot(v)
	}
	return sum
}

func PotentialEnergy(bodies []dynamo.Snapshot, gravity float64) float64 {
	sum := 0.0
	for _, b := range bodies {
		sum += b.Mass * gravity * (b.Position.Y - b.Radius - dynamo.BoundBottom)
	}
	return sum
}
