package automation

import (
	"context"
	"testing"

	"github.com/san-kum/bouncesim/internal/config"
	"github.com/san-kum/bouncesim/internal/logging"
)

func shortScene(name string) *config.Config {
	cfg := config.GetPreset(name)
	cfg.Duration = 0.25
	return cfg
}

func TestApply(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := Apply(cfg, "gravity", 3); err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.Gravity != 3 {
		t.Errorf("gravity = %v, want 3", cfg.Physics.Gravity)
	}
	if err := Apply(cfg, "restitution", 49.6); err != nil {
		t.Fatal(err)
	}
	for i, b := range cfg.Bodies {
		if b.Restitution == nil || *b.Restitution != 50 {
			t.Errorf("body %d restitution = %v, want 50", i, b.Restitution)
		}
	}
	if err := Apply(cfg, "viscosity", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestRunSweep(t *testing.T) {
	scene := shortScene("default")
	sweep := &ParameterSweep{
		Scene: scene,
		Param: "gravity",
		Min:   0,
		Max:   10,
		Steps: 3,
		Log:   logging.Discard(),
	}

	results, err := RunSweep(context.Background(), sweep)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	want := []float64{0, 5, 10}
	for i, r := range results {
		if r.Value != want[i] {
			t.Errorf("result %d value = %v, want %v", i, r.Value, want[i])
		}
		if r.MaxEnergy < r.MinEnergy {
			t.Errorf("result %d energy extent inverted", i)
		}
		if len(r.Final) != len(scene.Bodies) {
			t.Errorf("result %d final bodies = %d", i, len(r.Final))
		}
	}
	if scene.Physics.Gravity != 9.81 {
		t.Error("sweep modified the input scene")
	}
}

func TestRunSweep_InvalidValue(t *testing.T) {
	sweep := &ParameterSweep{
		Scene: shortScene("default"),
		Param: "restitution",
		Min:   90,
		Max:   120,
		Steps: 2,
		Log:   logging.Discard(),
	}
	results, err := RunSweep(context.Background(), sweep)
	if err == nil {
		t.Fatal("expected error for restitution 120")
	}
	if len(results) != 1 {
		t.Errorf("results before failure = %d, want 1", len(results))
	}
}

func TestRunMonteCarlo(t *testing.T) {
	mc := &MonteCarloConfig{
		Scene:        shortScene("headon"),
		Perturbation: 0.5,
		Trials:       4,
		Seed:         42,
	}

	results, err := RunMonteCarlo(context.Background(), mc)
	if err != nil {
		t.Fatalf("RunMonteCarlo: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}
	if results[0].Initial[0].Velocity == results[1].Initial[0].Velocity {
		t.Error("trials should start from different velocities")
	}

	in, out := MonteCarloStats(results)
	if in+out != 4 {
		t.Errorf("stats = %d + %d, want 4", in, out)
	}
	if out != 0 {
		t.Errorf("expected every trial to stay in the arena, %d escaped", out)
	}

	again, err := RunMonteCarlo(context.Background(), mc)
	if err != nil {
		t.Fatal(err)
	}
	if again[3].Final[1].Position != results[3].Final[1].Position {
		t.Error("same seed should reproduce the run")
	}
}
