package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Bodies) != 3 {
		t.Errorf("expected 3 bodies, got %d", len(cfg.Bodies))
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.Engine() != dynamo.DefaultConfig() {
		t.Errorf("Engine() = %+v, want dynamo defaults", cfg.Engine())
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
dt: 0.005
physics:
  gap_policy: inelastic
  restitution_mode: truncate
bodies:
  - mass: 2
    position: [0.1, 0.2]
    velocity: [1, -1]
    restitution: 50
  - mass: 3
    position: [0.5, 0.2]
    velocity: [0, 0]
    radius: 0.2
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Dt != 0.005 {
		t.Errorf("dt = %v, want 0.005", cfg.Dt)
	}
	if cfg.Duration != DefaultDuration {
		t.Errorf("duration = %v, want default %v", cfg.Duration, DefaultDuration)
	}
	if cfg.Physics.Gravity != 9.81 {
		t.Errorf("gravity = %v, want default 9.81", cfg.Physics.Gravity)
	}
	eng := cfg.Engine()
	if eng.GapPolicy != dynamo.GapInelastic || eng.RestitutionMode != dynamo.RestitutionTruncate {
		t.Errorf("engine = %+v", eng)
	}
	if len(cfg.Bodies) != 2 {
		t.Fatalf("bodies = %d, want 2", len(cfg.Bodies))
	}
	b := cfg.Bodies[0]
	if b.Pos() != dynamo.V(0.1, 0.2) || b.Vel() != dynamo.V(1, -1) {
		t.Errorf("body 0 = %+v", b)
	}
	if b.Restitution == nil || *b.Restitution != 50 {
		t.Errorf("restitution = %v, want 50", b.Restitution)
	}
	if cfg.Bodies[1].Restitution != nil {
		t.Error("expected nil restitution for body 1")
	}
	if cfg.Bodies[1].Radius != 0.2 {
		t.Errorf("radius = %v, want 0.2", cfg.Bodies[1].Radius)
	}
}

func TestParse_NoBodiesUsesDefaultScene(t *testing.T) {
	cfg, err := Parse([]byte("duration: 2\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.Bodies) != 3 {
		t.Errorf("bodies = %d, want 3", len(cfg.Bodies))
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		is   error
	}{
		{"bad mass", "bodies:\n  - mass: 0\n    position: [0, 0]\n    velocity: [0, 0]\n", dynamo.ErrInvalidMass},
		{"bad restitution", "bodies:\n  - mass: 1\n    position: [0, 0]\n    velocity: [0, 0]\n    restitution: 100\n", dynamo.ErrRestitutionRange},
		{"bad mode", "physics:\n  restitution_mode: round\n", dynamo.ErrInvalidConfig},
		{"bad dt", "dt: -1\n", nil},
		{"bad yaml", "bodies: [", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("err = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data, err := Marshal(GetPreset("headon"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "headon" || len(cfg.Bodies) != 2 {
		t.Errorf("loaded %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("rest")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Bodies[0].Position[1] != -0.775 {
		t.Errorf("expected resting body at y=-0.775, got %f", cfg.Bodies[0].Position[1])
	}

	cfg.Bodies[0].Mass = 99
	if Presets["rest"].Bodies[0].Mass == 99 {
		t.Error("GetPreset returned shared bodies")
	}
}

func TestClone(t *testing.T) {
	src := GetPreset("headon")
	c, err := src.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	*c.Bodies[0].Restitution = 10
	c.Bodies[1].Velocity[0] = 42
	c.Physics.Gravity = 1

	if *src.Bodies[0].Restitution != 80 {
		t.Errorf("restitution shared with clone: %d", *src.Bodies[0].Restitution)
	}
	if src.Bodies[1].Velocity[0] != 1 || src.Physics.Gravity != 9.81 {
		t.Error("clone aliases the source")
	}
	if *Presets["headon"].Bodies[0].Restitution != 80 {
		t.Error("GetPreset shares restitution with the preset table")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}
