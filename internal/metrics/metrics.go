// Package metrics provides per-run observations over a trial solution.
// Every metric is an rk.Observer, so it attaches directly to a stepper.
package metrics

import (
	"math"

	"github.com/san-kum/odelab/internal/ode"
)

type Metric interface {
	Name() string
	OnStep(step int, p ode.Point)
	Value() float64
	Reset()
}

// FinalError tracks the last observed point and reports its absolute error
// against a caller-supplied reference value at the target abscissa.
type FinalError struct {
	name      string
	reference float64
	last      ode.Point
	samples   int
}

func NewFinalError(reference float64) *FinalError {
	return &FinalError{name: "final_error", reference: reference}
}

func (f *FinalError) Name() string { return f.name }

func (f *FinalError) OnStep(step int, p ode.Point) {
	f.last = p
	f.samples++
}

func (f *FinalError) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return ode.AbsError(f.last, ode.Point{X: f.last.X, Y: f.reference})
}

func (f *FinalError) Reset() {
	f.last = ode.Point{}
	f.samples = 0
}

// MaxAbs reports the largest |y| seen across the run, a cheap divergence
// indicator when no closed form is available.
type MaxAbs struct {
	name    string
	maxAbs  float64
	samples int
}

func NewMaxAbs() *MaxAbs {
	return &MaxAbs{name: "max_abs_y"}
}

func (m *MaxAbs) Name() string { return m.name }

func (m *MaxAbs) OnStep(step int, p ode.Point) {
	m.samples++
	m.maxAbs = math.Max(m.maxAbs, math.Abs(p.Y))
}

func (m *MaxAbs) Value() float64 { return m.maxAbs }

func (m *MaxAbs) Reset() {
	m.maxAbs = 0
	m.samples = 0
}

// StepCount counts completed steps.
type StepCount struct {
	name  string
	count int
}

func NewStepCount() *StepCount {
	return &StepCount{name: "steps"}
}

func (s *StepCount) Name() string { return s.name }

func (s *StepCount) OnStep(step int, p ode.Point) { s.count++ }

func (s *StepCount) Value() float64 { return float64(s.count) }

func (s *StepCount) Reset() { s.count = 0 }
