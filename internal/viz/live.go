package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/emirelesg/ackersim/internal/config"
	"github.com/emirelesg/ackersim/internal/sim"
	"github.com/emirelesg/ackersim/internal/vehicle"
)

const (
	canvasWidth   = 70
	canvasHeight  = 24
	trailCapacity = 600
	graphCapacity = 120
	defaultZoom   = 6.0 // dots per meter
	minZoom       = 1.5
	maxZoom       = 24.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the bubbletea view over a simulation controller. It owns only
// presentation state; every key press is translated into a sim.Command and
// the pose advances exclusively through Controller.Tick.
type Model struct {
	ctrl     *sim.Controller
	dt       float64
	fps      int
	canvas   *Canvas
	trail    []vehicle.Point
	steerLog []float64
	zoom     float64
	showHelp bool
}

func NewModel(ctrl *sim.Controller, dt float64, fps int) Model {
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return Model{
		ctrl:     ctrl,
		dt:       dt,
		fps:      fps,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		trail:    make([]vehicle.Point, 0, trailCapacity),
		steerLog: make([]float64, 0, graphCapacity),
		zoom:     defaultZoom,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// keyCommands maps keys to commands: a/d steer, w/x speed, s start-stop,
// r reset, q quit.
var keyCommands = map[string]sim.Command{
	"a": sim.SteerLeft,
	"d": sim.SteerRight,
	"w": sim.SpeedUp,
	"x": sim.SpeedDown,
	"s": sim.ToggleRun,
	"r": sim.Reset,
	"q": sim.Quit,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		if cmd, ok := keyCommands[key]; ok {
			if cmd == sim.Reset {
				m.trail = m.trail[:0]
				m.steerLog = m.steerLog[:0]
			}
			if m.ctrl.HandleCommand(cmd) {
				return m, tea.Quit
			}
			return m, nil
		}
		switch key {
		case "+", "=":
			m.zoom = math.Min(m.zoom*1.25, maxZoom)
		case "-", "_":
			m.zoom = math.Max(m.zoom/1.25, minZoom)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.ctrl.State() == sim.Running {
			m.ctrl.Tick(m.dt)
			snap := m.ctrl.Snapshot()
			m.trail = append(m.trail, vehicle.Point{X: snap.Pose.X, Y: snap.Pose.Y})
			if len(m.trail) > trailCapacity {
				m.trail = m.trail[1:]
			}
			m.steerLog = append(m.steerLog, snap.Steer*180/math.Pi)
			if len(m.steerLog) > graphCapacity {
				m.steerLog = m.steerLog[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// project maps a world point to dot coordinates with the camera centered on
// the vehicle.
func (m *Model) project(p vehicle.Point, center vehicle.Pose) (int, int) {
	cx, cy := canvasWidth, canvasHeight*2 // dot-grid center
	x := cx + int(math.Round((p.X-center.X)*m.zoom))
	y := cy - int(math.Round((p.Y-center.Y)*m.zoom))
	return x, y
}

func (m *Model) draw(snap sim.Snapshot) {
	m.canvas.Clear()
	center := snap.Pose

	// Origin cross so motion is visible even without a trail.
	ox, oy := m.project(vehicle.Point{}, center)
	m.canvas.DrawLine(ox-3, oy, ox+3, oy)
	m.canvas.DrawLine(ox, oy-2, ox, oy+2)

	for _, p := range m.trail {
		x, y := m.project(p, center)
		m.canvas.Set(x, y)
	}

	outline := snap.Geometry.Outline(snap.Pose)
	body := make([][2]int, len(outline))
	for i, p := range outline {
		x, y := m.project(p, center)
		body[i] = [2]int{x, y}
	}
	m.canvas.DrawPolygon(body)

	// Each wheel is a segment along its own orientation.
	halfWheel := 0.18 * snap.Geometry.Wheelbase * m.zoom
	for _, w := range snap.Geometry.Wheels(snap.Pose, snap.Steer) {
		sin, cos := math.Sincos(w.Angle)
		cxp, cyp := m.project(vehicle.Point{X: w.X, Y: w.Y}, center)
		dx := int(math.Round(halfWheel * cos))
		dy := int(math.Round(halfWheel * sin))
		m.canvas.DrawLine(cxp-dx, cyp+dy, cxp+dx, cyp-dy)
	}
}

func (m Model) View() string {
	snap := m.ctrl.Snapshot()
	m.draw(snap)

	var s strings.Builder
	s.WriteString(headerStyle.Render("ACKERMANN STEERING") + "\n")
	status := "PAUSED"
	if snap.State == sim.Running {
		status = "RUNNING"
	}
	s.WriteString(status + "\n\n")

	if len(m.steerLog) > 1 {
		chart := asciigraph.Plot(m.steerLog, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Steering [deg]"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	steerDeg := snap.Steer * 180 / math.Pi
	headingDeg := snap.Pose.Heading * 180 / math.Pi
	left, right := snap.Geometry.AckermannAngles(snap.Steer)

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", snap.Elapsed)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("(%.2f, %.2f) m", snap.Pose.X, snap.Pose.Y)) + "\n")
	s.WriteString(labelStyle.Render("Heading") + valueStyle.Render(fmt.Sprintf("%.1f°", headingDeg)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.2f m/s", snap.Speed)) + "\n")
	s.WriteString(labelStyle.Render("Steering") + valueStyle.Render(fmt.Sprintf("%.1f°", steerDeg)) + "\n")
	s.WriteString(labelStyle.Render("Wheels L/R") + valueStyle.Render(fmt.Sprintf("%.1f° / %.1f°", left*180/math.Pi, right*180/math.Pi)) + "\n")

	radius := snap.Geometry.TurnRadius(snap.Steer)
	if math.IsInf(radius, 0) {
		s.WriteString(labelStyle.Render("Turn radius") + valueStyle.Render("straight") + "\n")
	} else {
		s.WriteString(labelStyle.Render("Turn radius") + valueStyle.Render(fmt.Sprintf("%.2f m", radius)) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nA/D:Steer W/X:Speed S:Run/Pause\nR:Reset +/-:Zoom Q:Quit ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(s.String()),
	)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  A        - Steer left               ║
║  D        - Steer right              ║
║  W        - Increase speed           ║
║  X        - Decrease speed           ║
║  S        - Start/stop simulation    ║
║  R        - Reset to origin          ║
║  + / -    - Zoom in / out            ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunLive wires a controller from the config and runs the live view until
// quit.
func RunLive(cfg *config.Config) error {
	geo, err := cfg.GetGeometry()
	if err != nil {
		return err
	}

	controls := vehicle.NewControls(cfg.GetLimits())
	model := vehicle.NewKinematic(geo, controls, cfg.GetReference())
	ctrl := sim.NewController(model, sim.Options{
		SteerStep:    cfg.SteerStep(),
		SpeedStep:    cfg.Speed.Step,
		InitialSpeed: cfg.Speed.Initial,
		Centering:    cfg.CenteringRate(),
	})

	p := tea.NewProgram(NewModel(ctrl, cfg.Dt, cfg.FPS))
	_, err = p.Run()
	return err
}
