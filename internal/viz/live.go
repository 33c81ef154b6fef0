package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bouncesim/internal/config"
	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/experiment"
	"github.com/san-kum/bouncesim/internal/metrics"
	"github.com/san-kum/bouncesim/internal/sim"
)

const (
	width           = 60
	height          = 24
	historyCapacity = 600
	// maxFrameDt caps one live step in seconds.
	maxFrameDt = 0.05
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives a world from wall-clock ticks and draws it on a Braille
// canvas.
type Model struct {
	scene    *config.Config
	opts     []sim.Option
	world    *sim.World
	canvas   *Canvas
	renderer *CanvasRenderer
	clock    *sim.Clock
	// fixedDt replaces the wall-clock delta when positive.
	fixedDt float64

	running  bool
	showHelp bool
	energy   []float64
	recorder *Recorder
	status   string
	err      error
}

// NewModel builds the scene and prepares a live view of it. Extra options
// are applied to the world on every rebuild.
func NewModel(scene *config.Config, fixedDt float64, opts ...sim.Option) (Model, error) {
	canvas := NewCanvas(width, height)
	m := Model{
		scene:    scene,
		opts:     opts,
		canvas:   canvas,
		renderer: NewCanvasRenderer(canvas),
		clock:    sim.NewClock(maxFrameDt),
		fixedDt:  fixedDt,
		running:  true,
		energy:   make([]float64, 0, historyCapacity),
	}
	if err := m.rebuild(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) rebuild() error {
	opts := append([]sim.Option{sim.WithRenderer(m.renderer)}, m.opts...)
	w, err := experiment.Build(m.scene, opts...)
	if err != nil {
		return err
	}
	m.world = w
	m.energy = m.energy[:0]
	m.clock.Reset()
	m.err = nil
	return nil
}

func (m Model) World() *sim.World { return m.world }
func (m Model) Running() bool     { return m.running }
func (m Model) Err() error        { return m.err }

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
			m.clock.Reset()
		case "r":
			if err := m.rebuild(); err != nil {
				m.err = err
			}
		case "t":
			NextTheme()
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.frame()
		return m, tick()
	}
	return m, nil
}

// frame advances the world once, or redraws it in place while paused.
func (m *Model) frame() {
	m.canvas.Clear()
	m.renderer.DrawArena()

	if !m.running || m.err != nil {
		m.world.Render()
		return
	}

	dt := m.clock.Tick()
	if m.fixedDt > 0 {
		dt = m.fixedDt
	}
	if err := m.world.Step(dt); err != nil {
		m.err = err
		return
	}

	snaps := m.world.Snapshots()
	for _, s := range snaps {
		if !s.IsValid() {
			m.err = &dynamo.SimulationError{Step: m.world.Frame(), Time: m.world.Time(), Wrapped: dynamo.ErrInvalidState}
			m.running = false
			break
		}
	}

	g := m.world.Config().Gravity
	m.energy = append(m.energy, metrics.KineticEnergy(snaps)+metrics.PotentialEnergy(snaps, g))
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}

	if m.recorder != nil {
		m.recorder.Capture(m.canvas)
	}
}

func (m *Model) toggleRecording() {
	if m.recorder == nil {
		m.recorder = NewRecorder()
		m.status = ""
		return
	}
	n := m.recorder.Len()
	if err := m.recorder.Save(gifPath); err != nil {
		m.status = "gif: " + err.Error()
	} else if n > 0 {
		m.status = fmt.Sprintf("saved %d frames to %s", n, gifPath)
	}
	m.recorder = nil
}

func (m Model) statusLine() string {
	switch {
	case m.err != nil:
		return StatusRecording.UnsetBlink().Render("STOPPED")
	case m.recorder != nil:
		return StatusRecording.Render("● REC")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

func (m Model) View() string {
	canvasView := canvasStyle().Render(strings.TrimRight(m.canvas.String(), "\n"))

	var s strings.Builder
	title := strings.ToUpper(m.scene.Name)
	if title == "" {
		title = "ARENA"
	}
	s.WriteString(headerStyle().Render(title) + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	value := valueStyle()
	row := func(label, v string) {
		s.WriteString(MetricLabel.Render(label) + value.Render(v) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.world.Time()))
	row("Frame", fmt.Sprintf("%d", m.world.Frame()))
	tally := m.world.Contacts()
	row("Contacts", fmt.Sprintf("%d el / %d inel / %d gap", tally.Elastic, tally.Inelastic, tally.Gap))

	if len(m.energy) > 0 {
		row("Energy", fmt.Sprintf("%.3f J", m.energy[len(m.energy)-1]))
		s.WriteString(MetricLabel.Render("") + SparklineChart(m.energy, 28) + "\n")
	}
	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("total energy"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Render(chart) + "\n")
	}

	s.WriteString("\nBODIES\n")
	for _, b := range m.world.Snapshots() {
		s.WriteString(fmt.Sprintf("%d m=%-5.1f p=%-14s v=%s\n", b.Index, b.Mass, b.Position, b.Velocity))
	}

	if m.err != nil {
		s.WriteString("\n" + StatusRecording.UnsetBlink().Render(m.err.Error()) + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + KeyHint.Render(m.status) + "\n")
	}
	s.WriteString(KeyHint.Render("\nSP:Pause R:Reset Q:Quit\nT:Theme  G:Record ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle().Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Rebuild the scene        ║
║  Q/Esc    - Quit                     ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts the live view on the terminal and blocks until it quits.
func Run(scene *config.Config, fixedDt float64, opts ...sim.Option) error {
	m, err := NewModel(scene, fixedDt, opts...)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
