package metrics

import (
	"math"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

// Momentum tracks the magnitude of the summed linear momentum.
type Momentum struct {
	Series
	name string
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(bodies []dynamo.Snapshot, t float64) {
	total := dynamo.Vec2{}
	for _, b := range bodies {
		total = total.Add(b.Momentum())
	}
	m.push(total.Length())
}

func (m *Momentum) Value() float64 { return m.last() }
func (m *Momentum) Reset()         { m.reset() }

// MaxSpeed is the highest speed any body reached over the run.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (s *MaxSpeed) Name() string { return s.name }

func (s *MaxSpeed) Observe(bodies []dynamo.Snapshot, t float64) {
	for _, b := range bodies {
		s.max = math.Max(s.max, b.Velocity.Length())
	}
}

func (s *MaxSpeed) Value() float64 { return s.max }
func (s *MaxSpeed) Reset()         { s.max = 0 }

// Defaults returns the metric set reported by the CLI.
func Defaults(gravity float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewKinetic(),
		NewPotential(gravity),
		NewTotal(gravity),
		NewMomentum(),
		NewMaxSpeed(),
	}
}
