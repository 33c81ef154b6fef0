package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/bouncesim/internal/automation"
	"github.com/san-kum/bouncesim/internal/config"
	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/experiment"
	"github.com/san-kum/bouncesim/internal/gui"
	"github.com/san-kum/bouncesim/internal/logging"
	"github.com/san-kum/bouncesim/internal/metrics"
	"github.com/san-kum/bouncesim/internal/render"
	"github.com/san-kum/bouncesim/internal/sim"
	"github.com/san-kum/bouncesim/internal/viz"
)

var (
	dt         float64
	duration   float64
	preset     string
	configFile string
	truncate   bool
	gapInel    bool
	plot       bool
	snapTime   float64
	sweepSteps int
	trials     int
	perturb    float64
	seed       int64
	fixedStep  bool
	theme      string
	width      int
	height     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "bouncesim",
		Short:        "circles bouncing in a box",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&preset, "preset", "default", "scene preset")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scene file (yaml), overrides --preset")
	rootCmd.PersistentFlags().BoolVar(&truncate, "truncate-restitution", false, "use integer restitution division (always 0)")
	rootCmd.PersistentFlags().BoolVar(&gapInel, "gap-inelastic", false, "resolve gap-regime contacts inelastically")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the scene headless and print a summary",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep, overrides the scene")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration, overrides the scene")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot total energy")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the scene in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep used with --fixed")
	liveCmd.Flags().BoolVar(&fixedStep, "fixed", false, "step by --dt instead of wall-clock time")
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeNeon.Name, "color theme")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "animate the scene in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := loadScene(cmd)
			if err != nil {
				return err
			}
			return gui.Run(scene, sim.WithLogger(logging.Stderr()))
		},
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run the scene and print the last frame as SVG",
		RunE:  snapshot,
	}
	snapshotCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep, overrides the scene")
	snapshotCmd.Flags().Float64Var(&snapTime, "time", 1.0, "simulated time before the frame is taken")
	snapshotCmd.Flags().IntVar(&width, "width", gui.WindowWidth, "image width")
	snapshotCmd.Flags().IntVar(&height, "height", gui.WindowHeight, "image height")

	csvCmd := &cobra.Command{
		Use:   "csv",
		Short: "run the scene and write every frame as CSV to stdout",
		RunE:  exportCSV,
	}
	csvCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep, overrides the scene")
	csvCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration, overrides the scene")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the scene",
		RunE:  bench,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [param] [min] [max]",
		Short: "rerun the scene across a parameter range",
		Args:  cobra.ExactArgs(3),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration, overrides the scene")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "rerun the scene with perturbed initial velocities",
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturb, "perturb", 0.5, "max velocity perturbation")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	monteCarloCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration, overrides the scene")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scene presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tDURATION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.1fs\n", name, len(p.Bodies), p.Duration)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved scene as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := loadScene(cmd)
			if err != nil {
				return err
			}
			data, err := config.Marshal(scene)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, snapshotCmd, csvCmd, benchCmd, sweepCmd, monteCarloCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScene resolves the preset or scene file and applies flag overrides.
func loadScene(cmd *cobra.Command) (*config.Config, error) {
	var scene *config.Config
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		scene = cfg
	} else {
		scene = config.GetPreset(preset)
		if scene == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if f := cmd.Flags().Lookup("dt"); f != nil && f.Changed {
		scene.Dt = dt
	}
	if f := cmd.Flags().Lookup("time"); f != nil && f.Changed {
		scene.Duration = duration
	}
	if truncate {
		scene.Physics.RestitutionMode = string(dynamo.RestitutionTruncate)
	}
	if gapInel {
		scene.Physics.GapPolicy = string(dynamo.GapInelastic)
	}

	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(cmd)
	if err != nil {
		return err
	}

	log := logging.Stderr()
	total := metrics.NewTotal(scene.Physics.Gravity)
	opts := []sim.Option{sim.WithLogger(log), sim.WithMetric(total)}
	for _, m := range experiment.NewRegistry().DefaultMetrics(scene) {
		if m.Name() != total.Name() {
			opts = append(opts, sim.WithMetric(m))
		}
	}

	exp, err := experiment.New(scene, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.Info("running", "scene", scene.Name, "bodies", len(scene.Bodies), "dt", scene.Dt, "duration", scene.Duration)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	log.Info("done", "steps", result.StepsTaken, "elapsed", time.Since(start))

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}

	fmt.Printf("simulated %.2fs in %d steps\n\n", exp.World().Time(), result.StepsTaken)
	if err := printBodies(result.Final); err != nil {
		return err
	}

	fmt.Printf("\ncontacts: %d elastic, %d inelastic, %d gap\n\n", result.Contacts.Elastic, result.Contacts.Inelastic, result.Contacts.Gap)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, m := range []string{"kinetic_energy", "potential_energy", "total_energy", "momentum", "max_speed"} {
		if v, ok := result.Metrics[m]; ok {
			fmt.Fprintf(w, "%s\t%.4f\n", m, v)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if plot {
		data := total.History()
		if len(data) > 1 {
			graph := asciigraph.Plot(data,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption("total energy (J)"),
			)
			fmt.Printf("\n%s\n", graph)
		}
	}
	return nil
}

func printBodies(bodies []dynamo.Snapshot) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMASS\tRADIUS\tE%\tX\tY\tVX\tVY")
	for _, b := range bodies {
		fmt.Fprintf(w, "%d\t%.2f\t%.3f\t%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
			b.Index, b.Mass, b.Radius, b.Restitution,
			b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(cmd)
	if err != nil {
		return err
	}
	viz.SetTheme(theme)

	step := 0.0
	if fixedStep {
		step = scene.Dt
	}
	// The terminal owns stdout and stderr while the view is up.
	return viz.Run(scene, step, sim.WithLogger(logging.Discard()))
}

func snapshot(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(cmd)
	if err != nil {
		return err
	}
	scene.Duration = snapTime

	exp, err := experiment.New(scene, sim.WithLogger(logging.Stderr()))
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	if _, err := exp.Run(ctx); err != nil {
		return err
	}

	svg := render.NewSVG(width, height)
	exp.World().SetRenderer(svg)
	exp.World().Render()
	fmt.Println(svg.String())
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(scene, sim.WithLogger(logging.Stderr()))
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "body", "x", "y", "vx", "vy"}); err != nil {
		return err
	}
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for i, frame := range result.Frames {
		for _, b := range frame {
			row := []string{format(result.Times[i]), strconv.Itoa(b.Index),
				format(b.Position.X), format(b.Position.Y), format(b.Velocity.X), format(b.Velocity.Y)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return w.Error()
}

func bench(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(cmd)
	if err != nil {
		return err
	}

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.001, 1.0 / 60, 0.05}

	fmt.Printf("benchmarking %s\n\n", scene.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tCONTACTS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			world, err := experiment.Build(scene, sim.WithLogger(logging.Discard()))
			if err != nil {
				return err
			}
			rc := sim.RunConfig{Dt: step, Duration: dur}

			start := time.Now()
			result, err := world.Run(context.Background(), rc)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%d\t%v\t%.0f\n",
				dur, step, result.StepsTaken, result.Contacts.Total(), elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(cmd)
	if err != nil {
		return err
	}
	lo, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid min: %w", err)
	}
	hi, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid max: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Scene: scene,
		Param: args[0],
		Min:   lo,
		Max:   hi,
		Steps: sweepSteps,
		Log:   logging.Stderr(),
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tELASTIC\tINELASTIC\tGAP\tMIN E\tMAX E\n", args[0])
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%d\t%d\t%d\t%.4f\t%.4f\n",
			r.Value, r.Contacts.Elastic, r.Contacts.Inelastic, r.Contacts.Gap, r.MinEnergy, r.MaxEnergy)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Scene:        scene,
		Perturbation: perturb,
		Trials:       trials,
		Seed:         seed,
	})
	if err != nil {
		return err
	}

	in, out := automation.MonteCarloStats(results)
	fmt.Printf("%d trials (seed %d): %d contained, %d escaped\n", len(results), seed, in, out)
	return nil
}
