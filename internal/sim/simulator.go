package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/logging"
	"github.com/san-kum/bouncesim/internal/physics"
)

// World is the frame driver. It owns the body list for the whole run.
type World struct {
	shapes    []physics.Shape
	cfg       dynamo.Config
	renderer  physics.Renderer
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	log       *slog.Logger

	time     float64
	frame    int
	contacts Tally
}

func New(cfg dynamo.Config, shapes []physics.Shape, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		shapes:    shapes,
		cfg:       cfg,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *World) AddMetric(m dynamo.Metric)      { w.metrics = append(w.metrics, m) }
func (w *World) AddObserver(o dynamo.Observer)  { w.observers = append(w.observers, o) }
func (w *World) SetRenderer(r physics.Renderer) { w.renderer = r }

func (w *World) Config() dynamo.Config { return w.cfg }
func (w *World) Time() float64         { return w.time }
func (w *World) Frame() int            { return w.frame }
func (w *World) Contacts() Tally       { return w.contacts }
func (w *World) Len() int              { return len(w.shapes) }

// Snapshots returns a copy of every body's state in list order.
func (w *World) Snapshots() []dynamo.Snapshot {
	out := make([]dynamo.Snapshot, len(w.shapes))
	for i, s := range w.shapes {
		out[i] = s.Snapshot()
		out[i].Index = i
	}
	return out
}

// Render hands every body to the renderer without advancing the world.
func (w *World) Render() {
	for _, s := range w.shapes {
		s.Render(w.renderer)
	}
}

// Step runs one frame. For each body i in order it renders i, resolves i
// against every later circle, and then advances i by dt.
func (w *World) Step(dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: got %v", dynamo.ErrNegativeDt, dt)
	}

	for i, s := range w.shapes {
		s.Render(w.renderer)
		switch a := s.(type) {
		case *physics.Circle:
			w.collideLater(i, a)
		}
		s.Update(w.cfg, dt)
	}

	w.time += dt
	w.frame++

	if len(w.metrics) > 0 || len(w.observers) > 0 {
		snaps := w.Snapshots()
		for _, m := range w.metrics {
			m.Observe(snaps, w.time)
		}
		for _, obs := range w.observers {
			obs.OnFrame(snaps, w.time)
		}
	}
	return nil
}

func (w *World) collideLater(i int, a *physics.Circle) {
	for j := i + 1; j < len(w.shapes); j++ {
		b, ok := w.shapes[j].(*physics.Circle)
		if !ok {
			continue
		}
		contact := physics.Collide(a, b, w.cfg)
		if !contact.Touching() {
			continue
		}
		w.contacts.record(contact)
		w.log.Debug("contact",
			"frame", w.frame,
			"a", i,
			"b", j,
			"regime", contact.Regime.String(),
			"overlap", contact.Overlap,
		)
	}
}

// Run advances the world with a fixed step until cfg.Duration has elapsed or
// ctx is done.
func (w *World) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
	if cfg.KeepFrames {
		result.Frames = make([][]dynamo.Snapshot, 0, steps+1)
		result.Frames = append(result.Frames, w.Snapshots())
	}
	result.Times = append(result.Times, w.time)

	for _, m := range w.metrics {
		m.Reset()
	}
	startContacts := w.contacts

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			w.finish(result, startContacts)
			return result, ctx.Err()
		default:
		}

		if err := w.Step(cfg.Dt); err != nil {
			return result, err
		}

		snaps := w.Snapshots()
		if cfg.ValidateState && !allValid(snaps) {
			err := &dynamo.SimulationError{Step: i, Time: w.time, Wrapped: dynamo.ErrInvalidState}
			w.log.Warn("stopping run", "step", i, "time", w.time, "error", err)
			result.Errors = append(result.Errors, err)
			break
		}

		result.StepsTaken++
		result.Times = append(result.Times, w.time)
		if cfg.KeepFrames {
			result.Frames = append(result.Frames, snaps)
		}
	}

	w.finish(result, startContacts)
	return result, nil
}

func (w *World) finish(result *Result, start Tally) {
	result.Final = w.Snapshots()
	result.Contacts = Tally{
		Elastic:   w.contacts.Elastic - start.Elastic,
		Inelastic: w.contacts.Inelastic - start.Inelastic,
		Gap:       w.contacts.Gap - start.Gap,
	}
	for _, m := range w.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// RunWithCallback steps the world until the duration elapses, ctx is done,
// or fn returns false. fn sees the state after each frame.
func (w *World) RunWithCallback(ctx context.Context, cfg RunConfig, fn func([]dynamo.Snapshot, float64) bool) error {
	if err := validateRunConfig(cfg); err != nil {
		return err
	}

	end := w.time + cfg.Duration
	for w.time < end {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := w.Step(cfg.Dt); err != nil {
			return err
		}

		snaps := w.Snapshots()
		if cfg.ValidateState && !allValid(snaps) {
			return &dynamo.SimulationError{Step: w.frame, Time: w.time, Wrapped: dynamo.ErrInvalidState}
		}
		if !fn(snaps, w.time) {
			return nil
		}
	}

	return nil
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 || math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func allValid(snaps []dynamo.Snapshot) bool {
	for _, s := range snaps {
		if !s.IsValid() {
			return false
		}
	}
	return true
}
