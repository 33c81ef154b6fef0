package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/bouncesim/internal/config"
	"github.com/san-kum/bouncesim/internal/physics"
	"github.com/san-kum/bouncesim/internal/sim"
)

// Build constructs the circles described by cfg and places them in a new
// world. Body errors carry the index of the offending body.
func Build(cfg *config.Config, opts ...sim.Option) (*sim.World, error) {
	shapes, err := Shapes(cfg)
	if err != nil {
		return nil, err
	}
	return sim.New(cfg.Engine(), shapes, opts...)
}

func Shapes(cfg *config.Config) ([]physics.Shape, error) {
	shapes := make([]physics.Shape, 0, len(cfg.Bodies))
	for i, b := range cfg.Bodies {
		c, err := newCircle(b)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		shapes = append(shapes, c)
	}
	return shapes, nil
}

func newCircle(b config.BodyConfig) (*physics.Circle, error) {
	var opts []physics.CircleOption
	if b.Radius > 0 {
		opts = append(opts, physics.WithRadius(b.Radius))
	}
	if b.Resolution > 0 {
		opts = append(opts, physics.WithResolution(b.Resolution))
	}
	c, err := physics.NewCircle(b.Mass, b.Pos(), b.Vel(), opts...)
	if err != nil {
		return nil, err
	}
	if b.Restitution != nil {
		if err := c.SetRestitution(*b.Restitution); err != nil {
			return nil, err
		}
	}
	return c, nil
}

type Experiment struct {
	cfg   *config.Config
	world *sim.World
}

func New(cfg *config.Config, opts ...sim.Option) (*Experiment, error) {
	w, err := Build(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg, world: w}, nil
}

func (e *Experiment) RunConfig() sim.RunConfig {
	rc := sim.DefaultRunConfig()
	rc.Dt = e.cfg.Dt
	rc.Duration = e.cfg.Duration
	return rc
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.world.Run(ctx, e.RunConfig())
}

// World returns the underlying world for adding observers.
func (e *Experiment) World() *sim.World {
	return e.world
}
