package sim

import (
	"log/slog"

	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/physics"
)

// RunConfig controls a fixed-step headless run.
type RunConfig struct {
	Dt            float64
	Duration      float64
	ValidateState bool
	// KeepFrames records a snapshot of every body after every frame.
	KeepFrames bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Dt:            1.0 / 60,
		Duration:      10.0,
		ValidateState: true,
		KeepFrames:    true,
	}
}

// Tally counts resolved contacts by regime.
type Tally struct {
	Elastic   int
	Inelastic int
	Gap       int
}

func (t Tally) Total() int { return t.Elastic + t.Inelastic + t.Gap }

func (t *Tally) record(c physics.Contact) {
	switch c.Regime {
	case physics.RegimeElastic:
		t.Elastic++
	case physics.RegimeInelastic:
		t.Inelastic++
	case physics.RegimeGap:
		t.Gap++
	}
}

type Result struct {
	Times      []float64
	Frames     [][]dynamo.Snapshot
	Final      []dynamo.Snapshot
	Metrics    map[string]float64
	Contacts   Tally
	StepsTaken int
	Errors     []error
}

type Option func(*World)

// WithRenderer sets the render collaborator that receives every body once
// per frame.
func WithRenderer(r physics.Renderer) Option {
	return func(w *World) { w.renderer = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *World) { w.log = l }
}

func WithMetric(m dynamo.Metric) Option {
	return func(w *World) { w.metrics = append(w.metrics, m) }
}

func WithObserver(o dynamo.Observer) Option {
	return func(w *World) { w.observers = append(w.observers, o) }
}
