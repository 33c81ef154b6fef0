package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/bouncesim/internal/config"
	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/metrics"
	"github.com/san-kum/bouncesim/internal/physics"
	"github.com/san-kum/bouncesim/internal/render"
)

type Registry struct {
	scenes    map[string]func() *config.Config
	renderers map[string]func(width, height int) physics.Renderer
}

func NewRegistry() *Registry {
	r := &Registry{
		scenes:    make(map[string]func() *config.Config),
		renderers: make(map[string]func(int, int) physics.Renderer),
	}

	for _, name := range config.ListPresets() {
		r.scenes[name] = func() *config.Config { return config.GetPreset(name) }
	}

	r.renderers["svg"] = func(w, h int) physics.Renderer { return render.NewSVG(w, h) }
	r.renderers["none"] = func(int, int) physics.Renderer { return nil }

	return r
}

func (r *Registry) GetScene(name string) (*config.Config, error) {
	fn, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetRenderer(name string, width, height int) (physics.Renderer, error) {
	fn, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown renderer: %s", name)
	}
	return fn(width, height), nil
}

func (r *Registry) ListScenes() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(cfg *config.Config) []dynamo.Metric {
	return metrics.Defaults(cfg.Physics.Gravity)
}
