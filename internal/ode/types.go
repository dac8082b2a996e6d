package ode

import (
	"fmt"
	"math"
)

// Point is one (x, y) sample of a trial solution. Value type; every call
// boundary copies it.
type Point struct {
	X float64
	Y float64
}

func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.X, p.Y)
}

// Equation evaluates the right-hand side of y' = f(x, y). Implementations
// must be pure: deterministic, no side effects.
type Equation interface {
	Eval(x, y float64) float64
}

// Separable is the historical y' = x*y form. The source defined it with a
// coefficient it never used; Coeff is kept for the same constructor shape
// and does not enter the formula.
type Separable struct {
	Coeff float64
}

func NewSeparable(coeff float64) *Separable {
	return &Separable{Coeff: coeff}
}

func (s *Separable) Eval(x, y float64) float64 {
	return x * y
}

// FirstOrderLinear is the a*y' + b*x*y = c*x form, evaluated as
// (c*x - b*x*y) / a. Undefined at A == 0: the division is performed as
// written and the resulting non-finite value propagates to the stepper,
// which surfaces it.
type FirstOrderLinear struct {
	A float64
	B float64
	C float64
}

func NewFirstOrderLinear(a, b, c float64) *FirstOrderLinear {
	return &FirstOrderLinear{A: a, B: b, C: c}
}

func (l *FirstOrderLinear) Eval(x, y float64) float64 {
	return (l.C*x - l.B*x*y) / l.A
}

// AbsError returns |expected.Y - observed.Y|. X is ignored by contract:
// callers are responsible for comparing points at the same abscissa.
func AbsError(observed, expected Point) float64 {
	return math.Abs(expected.Y - observed.Y)
}
