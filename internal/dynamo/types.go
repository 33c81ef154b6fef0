package dynamo

import (
	"fmt"
	"math"
)

// Arena bounds.
const (
	BoundLeft   = -1.125
	BoundRight  = 1.25
	BoundBottom = -0.875
	BoundTop    = 0.75
)

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y)
}

// RestitutionMode selects how the integer restitution percentage becomes a
// velocity scale in elastic resolution.
type RestitutionMode string

const (
	// RestitutionFraction scales by r/100.0.
	RestitutionFraction RestitutionMode = "fraction"
	// RestitutionTruncate reproduces integer division r/100, which is 0 for
	// every legal percentage.
	RestitutionTruncate RestitutionMode = "truncate"
)

// GapPolicy selects what happens to overlapping pairs that match neither the
// elastic nor the inelastic momentum predicate.
type GapPolicy string

const (
	// GapSkip leaves the pair untouched for the frame.
	GapSkip GapPolicy = "skip"
	// GapInelastic resolves the pair inelastically.
	GapInelastic GapPolicy = "inelastic"
)

// Config holds the tunables of one simulation. The driver owns a single
// value and passes it to every integrator and resolver call.
type Config struct {
	Gravity            float64
	WallDamping        float64
	RestSpeed          float64
	GroundFriction     float64
	HighEnergyMomentum float64
	InelasticDamping   float64
	SeparationSpeed    float64
	RestitutionMode    RestitutionMode
	GapPolicy          GapPolicy
}

func DefaultConfig() Config {
	return Config{
		Gravity:            9.81,
		WallDamping:        0.80,
		RestSpeed:          0.5,
		GroundFriction:     0.95,
		HighEnergyMomentum: 2,
		InelasticDamping:   0.95,
		SeparationSpeed:    0.1,
		RestitutionMode:    RestitutionFraction,
		GapPolicy:          GapSkip,
	}
}

// Validate reports whether every tunable is finite and in range.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"gravity", c.Gravity},
		{"wall_damping", c.WallDamping},
		{"rest_speed", c.RestSpeed},
		{"ground_friction", c.GroundFriction},
		{"high_energy_momentum", c.HighEnergyMomentum},
		{"inelastic_damping", c.InelasticDamping},
		{"separation_speed", c.SeparationSpeed},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, f.name, f.value)
		}
	}
	switch c.RestitutionMode {
	case RestitutionFraction, RestitutionTruncate:
	default:
		return fmt.Errorf("%w: restitution mode %q", ErrInvalidConfig, c.RestitutionMode)
	}
	switch c.GapPolicy {
	case GapSkip, GapInelastic:
	default:
		return fmt.Errorf("%w: gap policy %q", ErrInvalidConfig, c.GapPolicy)
	}
	return nil
}

// RestitutionScale converts a restitution percentage to the factor applied
// to the dominant body's velocity.
func (c Config) RestitutionScale(percent int) float64 {
	if c.RestitutionMode == RestitutionTruncate {
		return float64(percent / 100)
	}
	return float64(percent) / 100.0
}

// Snapshot is a read-only copy of one body's state.
type Snapshot struct {
	Index       int
	Kind        string
	Mass        float64
	Radius      float64
	Restitution int
	Position    Vec2
	Velocity    Vec2
}

// Momentum returns mass times velocity.
func (s Snapshot) Momentum() Vec2 { return s.Velocity.Scale(s.Mass) }

func (s Snapshot) IsValid() bool { return s.Position.IsValid() && s.Velocity.IsValid() }

type Metric interface {
	Name() string
	Observe(bodies []Snapshot, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(bodies []Snapshot, t float64)
}
