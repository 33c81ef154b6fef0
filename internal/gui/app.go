package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/bouncesim/internal/config"
	"github.com/san-kum/bouncesim/internal/experiment"
	"github.com/san-kum/bouncesim/internal/metrics"
	"github.com/san-kum/bouncesim/internal/sim"
)

const (
	WindowWidth  = 800
	WindowHeight = 600
	maxFrameDt   = 0.05
	telemetryCap = 200
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColBody    = rl.NewColor(0, 255, 136, 255)
	ColArena   = rl.NewColor(60, 60, 60, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type App struct {
	Scene     *config.Config
	World     *sim.World
	Running   bool
	Telemetry []float64
	Err       error

	renderer *fanRenderer
	opts     []sim.Option
}

func initWindow() {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(WindowWidth, WindowHeight, "bouncesim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(rl.KeyEscape)
}

func NewApp(scene *config.Config, opts ...sim.Option) (*App, error) {
	a := &App{
		Scene:     scene,
		Running:   true,
		Telemetry: make([]float64, 0, telemetryCap),
		renderer:  &fanRenderer{color: ColBody},
		opts:      opts,
	}
	if err := a.load(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) load() error {
	opts := append([]sim.Option{sim.WithRenderer(a.renderer)}, a.opts...)
	w, err := experiment.Build(a.Scene, opts...)
	if err != nil {
		return err
	}
	a.World = w
	a.Telemetry = a.Telemetry[:0]
	a.Err = nil
	return nil
}

// Run opens the window and plays the scene until the window closes.
func Run(scene *config.Config, opts ...sim.Option) error {
	app, err := NewApp(scene, opts...)
	if err != nil {
		return err
	}
	initWindow()
	defer rl.CloseWindow()
	app.RunLoop()
	return app.Err
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
	}
}

// Update handles input, then draws and advances the world in one frame,
// since the world renders each body as it steps.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.load(); err != nil {
			a.Err = err
		}
	}

	a.renderer.viewport.Width = int(rl.GetScreenWidth())
	a.renderer.viewport.Height = int(rl.GetScreenHeight())

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.drawArena()

	if a.Running && a.Err == nil {
		dt := min(float64(rl.GetFrameTime()), maxFrameDt)
		if err := a.World.Step(dt); err != nil {
			a.Err = err
			a.Running = false
		}
		a.record()
	} else {
		a.World.Render()
	}

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) record() {
	snaps := a.World.Snapshots()
	e := metrics.KineticEnergy(snaps) + metrics.PotentialEnergy(snaps, a.World.Config().Gravity)
	a.Telemetry = append(a.Telemetry, e)
	if len(a.Telemetry) > telemetryCap {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) DrawHUD() {
	rl.DrawText("bouncesim", 20, 20, 20, ColAccent)
	rl.DrawText(fmt.Sprintf(":: %s", a.Scene.Name), 140, 24, 14, ColText)

	status, col := "RUNNING", ColAccent
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	w := int32(rl.GetScreenWidth())
	rl.DrawText(status, w-100, 20, 16, col)

	tally := a.World.Contacts()
	rl.DrawText(fmt.Sprintf("t=%.2fs  contacts %d/%d/%d", a.World.Time(), tally.Elastic, tally.Inelastic, tally.Gap), 20, 48, 14, ColText)

	a.DrawTelemetry()

	h := int32(rl.GetScreenHeight())
	rl.DrawText("[SPACE] PAUSE  [R] RESET  [ESC] QUIT", w-330, h-24, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, h-24, 14, ColTextDim)
	if a.Err != nil {
		rl.DrawText(a.Err.Error(), 20, 72, 14, rl.Red)
	}
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}
	rectX, rectY := float32(20), float32(rl.GetScreenHeight()-100)
	width, height := float32(300), float32(50)

	lo, hi := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, v := range a.Telemetry {
		px := rectX + float32(i)/float32(len(a.Telemetry))*width
		py := rectY + height - float32((v-lo)/(hi-lo))*height
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("E: %.3f", a.Telemetry[len(a.Telemetry)-1]), int32(rectX+width+10), int32(rectY+height-10), 14, ColText)
}
