package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/odelab/internal/ode"
	"github.com/san-kum/odelab/internal/rk"
)

type TickMsg time.Time

// Model steps the four orders in lockstep, one step per tick, and charts
// their trajectories side by side.
type Model struct {
	eq        ode.Equation
	steppers  []*rk.Stepper
	points    []ode.Point
	histories [][]float64
	failed    []bool

	initial   ode.Point
	h         float64
	target    float64
	reference float64
	hasRef    bool

	totalSteps int
	step       int
	running    bool
}

func NewModel(eq ode.Equation, initial ode.Point, h, target, reference float64, hasRef bool) (Model, error) {
	steppers := make([]*rk.Stepper, len(rk.Orders))
	for i, order := range rk.Orders {
		s, err := rk.New(order)
		if err != nil {
			return Model{}, err
		}
		steppers[i] = s
	}

	m := Model{
		eq:         eq,
		steppers:   steppers,
		initial:    initial,
		h:          h,
		target:     target,
		reference:  reference,
		hasRef:     hasRef,
		totalSteps: rk.StepCount(initial, h, target),
		running:    true,
	}
	m.resetState()
	return m, nil
}

func (m *Model) resetState() {
	m.points = make([]ode.Point, len(m.steppers))
	m.histories = make([][]float64, len(m.steppers))
	m.failed = make([]bool, len(m.steppers))
	for i := range m.steppers {
		m.points[i] = m.initial
		m.histories[i] = []float64{m.initial.Y}
	}
	m.step = 0
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/15, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.resetState()
			m.running = true
		}
	case TickMsg:
		if m.running && m.step < m.totalSteps {
			m.advance()
		}
		return m, tea.Tick(time.Second/15, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// advance moves every order forward by one step. Each order owns its
// running point; a non-finite result freezes that order only.
func (m *Model) advance() {
	for i, s := range m.steppers {
		if m.failed[i] {
			continue
		}
		p := s.Step(m.eq, m.points[i], m.h)
		if !p.IsValid() {
			m.failed[i] = true
			continue
		}
		m.points[i] = p
		m.histories[i] = append(m.histories[i], p.Y)
	}
	m.step++
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("RUNGE-KUTTA ORDERS 1-4") + "\n")

	status := StatusRunning.Render("RUNNING")
	if m.step >= m.totalSteps {
		status = StatusPaused.Render("DONE")
	} else if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	progress := 0.0
	if m.totalSteps > 0 {
		progress = float64(m.step) / float64(m.totalSteps)
	}
	b.WriteString(fmt.Sprintf("%s  %s  step %d/%d\n\n",
		status, ProgressBar(progress, 20), m.step, m.totalSteps))

	names := make([]string, len(rk.Orders))
	for i, order := range rk.Orders {
		names[i] = order.String()
	}
	b.WriteString(GraphStyle.Render(PlotMany(names, m.histories, "y(x) per order")) + "\n\n")

	for i, order := range rk.Orders {
		label := OrderStyles[i%len(OrderStyles)].Render(order.String())
		if m.failed[i] {
			b.WriteString(fmt.Sprintf("  %s  %s\n", label, "diverged (non-finite)"))
			continue
		}
		line := fmt.Sprintf("x=%.4f  y=%.6f", m.points[i].X, m.points[i].Y)
		if m.hasRef && m.step >= m.totalSteps {
			err := math.Abs(m.reference - m.points[i].Y)
			line += fmt.Sprintf("  err=%.6f", err)
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n", label, ValueStyle.Render(line)))
	}

	b.WriteString(HelpStyle.Render("SP:Pause  R:Reset  Q:Quit"))
	return b.String()
}
