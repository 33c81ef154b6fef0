package config

import "sort"

func restitution(r int) *int { return &r }

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"headon": {
		Name: "headon", Dt: DefaultDt, Duration: 5.0, Physics: DefaultPhysics(),
		Bodies: []BodyConfig{
			{Mass: 10, Position: [2]float64{-0.6, 0}, Velocity: [2]float64{4, 2}, Restitution: restitution(80)},
			{Mass: 5, Position: [2]float64{0.6, 0}, Velocity: [2]float64{1, 2}, Restitution: restitution(60)},
		},
	},
	"rest": {
		Name: "rest", Dt: DefaultDt, Duration: 5.0, Physics: DefaultPhysics(),
		Bodies: []BodyConfig{
			{Mass: 1, Position: [2]float64{0, -0.775}, Velocity: [2]float64{0.5, 0}},
		},
	},
	"stack": {
		Name: "stack", Dt: DefaultDt, Duration: 10.0, Physics: DefaultPhysics(),
		Bodies: []BodyConfig{
			{Mass: 1, Position: [2]float64{-0.05, -0.6}, Velocity: [2]float64{0, 0}},
			{Mass: 1, Position: [2]float64{0.05, -0.35}, Velocity: [2]float64{0, 0}},
			{Mass: 1, Position: [2]float64{0, -0.1}, Velocity: [2]float64{0, 0}},
			{Mass: 1, Position: [2]float64{0.02, 0.15}, Velocity: [2]float64{0, 0}},
		},
	},
	"gap": {
		Name: "gap", Dt: DefaultDt, Duration: 3.0, Physics: DefaultPhysics(),
		Bodies: []BodyConfig{
			{Mass: 1, Position: [2]float64{-0.3, 0.2}, Velocity: [2]float64{3, 3}},
			{Mass: 1, Position: [2]float64{0.3, 0.2}, Velocity: [2]float64{1, 1}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if there is none.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c, err := cfg.Clone()
	if err != nil {
		return nil
	}
	return c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
