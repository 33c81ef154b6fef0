package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/san-kum/bouncesim/internal/config"
	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/experiment"
	"github.com/san-kum/bouncesim/internal/metrics"
	"github.com/san-kum/bouncesim/internal/sim"
)

// ParameterSweep reruns a scene across evenly spaced values of one
// parameter. Param names a physics field by its yaml key, or "restitution"
// to set every body's percentage.
type ParameterSweep struct {
	Scene    *config.Config
	Param    string
	Min, Max float64
	Steps    int
	Log      *slog.Logger
}

type SweepResult struct {
	Value     float64
	Final     []dynamo.Snapshot
	Contacts  sim.Tally
	MaxEnergy float64
	MinEnergy float64
}

// Apply sets the named parameter on cfg.
func Apply(cfg *config.Config, param string, v float64) error {
	p := &cfg.Physics
	switch param {
	case "gravity":
		p.Gravity = v
	case "wall_damping":
		p.WallDamping = v
	case "rest_speed":
		p.RestSpeed = v
	case "ground_friction":
		p.GroundFriction = v
	case "high_energy_momentum":
		p.HighEnergyMomentum = v
	case "inelastic_damping":
		p.InelasticDamping = v
	case "separation_speed":
		p.SeparationSpeed = v
	case "restitution":
		r := int(math.Round(v))
		for i := range cfg.Bodies {
			cfg.Bodies[i].Restitution = &r
		}
	default:
		return fmt.Errorf("unknown parameter: %s", param)
	}
	return nil
}

func (s *ParameterSweep) values() []float64 {
	if s.Steps <= 1 {
		return []float64{s.Min}
	}
	out := make([]float64, s.Steps)
	step := (s.Max - s.Min) / float64(s.Steps-1)
	for i := range out {
		out[i] = s.Min + float64(i)*step
	}
	return out
}

// RunSweep runs one simulation per sweep value.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	log := sweep.Log
	if log == nil {
		log = slog.Default()
	}
	values := sweep.values()
	results := make([]SweepResult, 0, len(values))

	for i, v := range values {
		cfg, err := sweep.Scene.Clone()
		if err != nil {
			return results, err
		}
		if err := Apply(cfg, sweep.Param, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("%s=%.4f: %w", sweep.Param, v, err)
		}

		total := metrics.NewTotal(cfg.Physics.Gravity)
		exp, err := experiment.New(cfg, sim.WithMetric(total), sim.WithLogger(log))
		if err != nil {
			return results, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}

		lo, hi := extent(total.History())
		results = append(results, SweepResult{
			Value:     v,
			Final:     result.Final,
			Contacts:  result.Contacts,
			MaxEnergy: hi,
			MinEnergy: lo,
		})
		log.Info("sweep", "run", i+1, "of", len(values), "param", sweep.Param, "value", v)
	}

	return results, nil
}

// MonteCarloConfig perturbs every initial velocity component by a uniform
// offset in [-Perturbation, Perturbation].
type MonteCarloConfig struct {
	Scene        *config.Config
	Perturbation float64
	Trials       int
	Seed         int64
}

type MonteCarloResult struct {
	Trial    int
	Initial  []dynamo.Snapshot
	Final    []dynamo.Snapshot
	Contacts sim.Tally
	// Contained reports that every body stayed finite and inside the arena.
	Contained bool
}

func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig) ([]MonteCarloResult, error) {
	rng := rand.New(rand.NewSource(mc.Seed))
	results := make([]MonteCarloResult, 0, mc.Trials)

	for trial := 0; trial < mc.Trials; trial++ {
		cfg, err := mc.Scene.Clone()
		if err != nil {
			return results, err
		}
		for i := range cfg.Bodies {
			for k := range cfg.Bodies[i].Velocity {
				cfg.Bodies[i].Velocity[k] += (rng.Float64()*2 - 1) * mc.Perturbation
			}
		}

		exp, err := experiment.New(cfg)
		if err != nil {
			return results, err
		}
		initial := exp.World().Snapshots()
		result, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, MonteCarloResult{
			Trial:     trial,
			Initial:   initial,
			Final:     result.Final,
			Contacts:  result.Contacts,
			Contained: len(result.Errors) == 0 && contained(result.Final),
		})
	}

	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (contained, escaped int) {
	for _, r := range results {
		if r.Contained {
			contained++
		} else {
			escaped++
		}
	}
	return contained, escaped
}

// contained allows a small tolerance past a wall for the frame of impact.
func contained(bodies []dynamo.Snapshot) bool {
	const slack = 0.5
	for _, b := range bodies {
		if !b.IsValid() {
			return false
		}
		p := b.Position
		if p.X < dynamo.BoundLeft-slack || p.X > dynamo.BoundRight+slack ||
			p.Y < dynamo.BoundBottom-slack || p.Y > dynamo.BoundTop+slack {
			return false
		}
	}
	return true
}

func extent(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi
}
