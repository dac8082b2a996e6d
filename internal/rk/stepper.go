package rk

import (
	"fmt"

	"github.com/san-kum/odelab/internal/ode"
)

// Observer receives each completed step of a run. Step indices start at 0.
type Observer interface {
	OnStep(step int, p ode.Point)
}

// Result is the outcome of a single run. Points holds one sample per
// completed step when the trajectory was requested, nil otherwise.
type Result struct {
	Order  Order
	Final  ode.Point
	Points []ode.Point
	Steps  int
}

// Xs returns the x-sequence of the recorded trajectory.
func (r *Result) Xs() []float64 {
	xs := make([]float64, len(r.Points))
	for i, p := range r.Points {
		xs[i] = p.X
	}
	return xs
}

// Ys returns the y-sequence of the recorded trajectory.
func (r *Result) Ys() []float64 {
	ys := make([]float64, len(r.Points))
	for i, p := range r.Points {
		ys[i] = p.Y
	}
	return ys
}

// StepError reports a run that produced a non-finite point, identifying
// the order and the zero-based step at which it appeared.
type StepError struct {
	Order   Order
	Step    int
	Point   ode.Point
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %d at %s: %v", e.Order, e.Step, e.Point, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }

// Stepper advances a trial solution in fixed increments of h, evaluating
// the slope stages of its order and combining them per the order's weights.
// Not safe for concurrent use.
type Stepper struct {
	order     Order
	tab       tableau
	observers []Observer
}

func New(order Order) (*Stepper, error) {
	if !order.valid() {
		return nil, fmt.Errorf("%w: %d", ode.ErrUnknownOrder, int(order))
	}
	return &Stepper{order: order, tab: tableaus[order]}, nil
}

func (s *Stepper) Order() Order { return s.order }

func (s *Stepper) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Step advances p by a single increment of h. All stages read the pre-step
// point; nothing is updated until every slope is known.
func (s *Stepper) Step(eq ode.Equation, p ode.Point, h float64) ode.Point {
	slopes := make([]float64, len(s.tab.stages))
	for i, st := range s.tab.stages {
		xi, yi := p.X, p.Y
		if i > 0 {
			xi = p.X + st.xOff*h
			yi = p.Y + st.yOff*slopes[i-1]
		}
		slopes[i] = h * eq.Eval(xi, yi)
	}

	acc := s.tab.weights[0] * slopes[0]
	for i := 1; i < len(slopes); i++ {
		acc += s.tab.weights[i] * slopes[i]
	}

	return ode.Point{X: p.X + h, Y: p.Y + acc/s.tab.denom}
}

// Solve advances initial to the target abscissa and returns the final point.
func (s *Stepper) Solve(eq ode.Equation, initial ode.Point, h, target float64) (ode.Point, error) {
	res, err := s.run(eq, initial, h, target, false)
	return res.Final, err
}

// SolveTrajectory is Solve plus the full per-step trajectory.
func (s *Stepper) SolveTrajectory(eq ode.Equation, initial ode.Point, h, target float64) (*Result, error) {
	return s.run(eq, initial, h, target, true)
}

// StepCount returns the number of steps a run would execute: the float
// quotient (target-x0)/h truncated toward zero. The truncation is part of
// the method's contract, not an artifact.
func StepCount(initial ode.Point, h, target float64) int {
	return int((target - initial.X) / h)
}

func (s *Stepper) run(eq ode.Equation, initial ode.Point, h, target float64, record bool) (*Result, error) {
	res := &Result{Order: s.order, Final: initial}

	if h == 0 {
		return res, fmt.Errorf("%s: %w", s.order, ode.ErrZeroStep)
	}

	steps := StepCount(initial, h, target)
	if steps <= 0 {
		// Degenerate interval: no forward progress possible, the
		// initial point is the answer.
		return res, nil
	}

	if record {
		res.Points = make([]ode.Point, 0, steps)
	}

	p := initial
	for i := 0; i < steps; i++ {
		p = s.Step(eq, p, h)
		if !p.IsValid() {
			res.Final = p
			return res, &StepError{Order: s.order, Step: i, Point: p, Wrapped: ode.ErrNonFinite}
		}
		if record {
			res.Points = append(res.Points, p)
		}
		for _, obs := range s.observers {
			obs.OnStep(i, p)
		}
		res.Steps++
	}

	res.Final = p
	return res, nil
}
