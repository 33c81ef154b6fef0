package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

const (
	DefaultDt       = 1.0 / 60
	DefaultDuration = 10.0
)

type Config struct {
	Name     string        `yaml:"name,omitempty"`
	Dt       float64       `yaml:"dt"`
	Duration float64       `yaml:"duration"`
	Physics  PhysicsConfig `yaml:"physics"`
	Bodies   []BodyConfig  `yaml:"bodies"`
}

type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity"`
	WallDamping        float64 `yaml:"wall_damping"`
	RestSpeed          float64 `yaml:"rest_speed"`
	GroundFriction     float64 `yaml:"ground_friction"`
	HighEnergyMomentum float64 `yaml:"high_energy_momentum"`
	InelasticDamping   float64 `yaml:"inelastic_damping"`
	SeparationSpeed    float64 `yaml:"separation_speed"`
	RestitutionMode    string  `yaml:"restitution_mode"`
	GapPolicy          string  `yaml:"gap_policy"`
}

// BodyConfig describes one circle. Zero radius and resolution mean the
// defaults; a nil restitution means the default percentage.
type BodyConfig struct {
	Mass        float64    `yaml:"mass"`
	Position    [2]float64 `yaml:"position,flow"`
	Velocity    [2]float64 `yaml:"velocity,flow"`
	Radius      float64    `yaml:"radius,omitempty"`
	Restitution *int       `yaml:"restitution,omitempty"`
	Resolution  int        `yaml:"resolution,omitempty"`
}

func (b BodyConfig) Pos() dynamo.Vec2 { return dynamo.V(b.Position[0], b.Position[1]) }
func (b BodyConfig) Vel() dynamo.Vec2 { return dynamo.V(b.Velocity[0], b.Velocity[1]) }

func DefaultPhysics() PhysicsConfig {
	d := dynamo.DefaultConfig()
	return PhysicsConfig{
		Gravity:            d.Gravity,
		WallDamping:        d.WallDamping,
		RestSpeed:          d.RestSpeed,
		GroundFriction:     d.GroundFriction,
		HighEnergyMomentum: d.HighEnergyMomentum,
		InelasticDamping:   d.InelasticDamping,
		SeparationSpeed:    d.SeparationSpeed,
		RestitutionMode:    string(d.RestitutionMode),
		GapPolicy:          string(d.GapPolicy),
	}
}

// DefaultConfig is the three-circle scene.
func DefaultConfig() *Config {
	return &Config{
		Name:     "default",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Physics:  DefaultPhysics(),
		Bodies: []BodyConfig{
			{Mass: 15, Position: [2]float64{-0.5, 1.0}, Velocity: [2]float64{2, 0}},
			{Mass: 10, Position: [2]float64{0.25, -0.75}, Velocity: [2]float64{-2, 5}},
			{Mass: 5, Position: [2]float64{0.75, -0.25}, Velocity: [2]float64{6, 3.5}},
		},
	}
}

// Load reads a YAML scene. Fields missing from the file keep their default
// values, except bodies, which replace the default scene when present.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Name = ""
	cfg.Bodies = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if len(cfg.Bodies) == 0 {
		cfg.Bodies = DefaultConfig().Bodies
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Clone deep-copies the scene, including per-body restitution overrides.
func (c *Config) Clone() (*Config, error) {
	out := &Config{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone scene: %w", err)
	}
	return out, nil
}

// Engine converts the physics section into the engine config.
func (c *Config) Engine() dynamo.Config {
	p := c.Physics
	return dynamo.Config{
		Gravity:            p.Gravity,
		WallDamping:        p.WallDamping,
		RestSpeed:          p.RestSpeed,
		GroundFriction:     p.GroundFriction,
		HighEnergyMomentum: p.HighEnergyMomentum,
		InelasticDamping:   p.InelasticDamping,
		SeparationSpeed:    p.SeparationSpeed,
		RestitutionMode:    dynamo.RestitutionMode(p.RestitutionMode),
		GapPolicy:          dynamo.GapPolicy(p.GapPolicy),
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Dt <= 0 {
		errs = append(errs, fmt.Errorf("dt must be positive, got %f", c.Dt))
	}
	if c.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive, got %f", c.Duration))
	}
	if err := c.Engine().Validate(); err != nil {
		errs = append(errs, err)
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 {
			errs = append(errs, fmt.Errorf("body %d: %w", i, dynamo.ErrInvalidMass))
		}
		if b.Radius < 0 {
			errs = append(errs, fmt.Errorf("body %d: radius must not be negative", i))
		}
		if b.Restitution != nil && (*b.Restitution < 0 || *b.Restitution > 99) {
			errs = append(errs, fmt.Errorf("body %d: %w", i, dynamo.ErrRestitutionRange))
		}
	}
	return errors.Join(errs...)
}
