package ode_test

import (
	"math"
	"testing"

	"github.com/san-kum/odelab/internal/ode"
)

func TestPointIsValid(t *testing.T) {
	cases := []struct {
		p    ode.Point
		want bool
	}{
		{ode.Point{X: 0, Y: 1}, true},
		{ode.Point{X: -2.5, Y: 1e300}, true},
		{ode.Point{X: math.NaN(), Y: 1}, false},
		{ode.Point{X: 0, Y: math.NaN()}, false},
		{ode.Point{X: math.Inf(1), Y: 1}, false},
		{ode.Point{X: 0, Y: math.Inf(-1)}, false},
	}
	for _, c := range cases {
		if got := c.p.IsValid(); got != c.want {
			t.Errorf("%v.IsValid() = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestSeparableEval(t *testing.T) {
	eq := ode.NewSeparable(1)
	if got := eq.Eval(2, 3); got != 6 {
		t.Errorf("Eval(2, 3) = %v, want 6", got)
	}
	// The coefficient never enters the formula.
	other := ode.NewSeparable(42)
	if eq.Eval(1.5, -2) != other.Eval(1.5, -2) {
		t.Error("coefficient changed the separable form's value")
	}
}

func TestFirstOrderLinearEval(t *testing.T) {
	// y' = (3x - (-1)xy) / 1 = 3x + xy
	eq := ode.NewFirstOrderLinear(1, -1, 3)
	if got := eq.Eval(2, 1); got != 8 {
		t.Errorf("Eval(2, 1) = %v, want 8", got)
	}

	// y' = (3x - xy) / 2
	eq = ode.NewFirstOrderLinear(2, 1, 3)
	if got := eq.Eval(2, 1); got != 2 {
		t.Errorf("Eval(2, 1) = %v, want 2", got)
	}
}

func TestFirstOrderLinearZeroA(t *testing.T) {
	eq := ode.NewFirstOrderLinear(0, 1, 3)
	if got := eq.Eval(1, 1); !math.IsInf(got, 1) {
		t.Errorf("Eval(1, 1) with a=0 = %v, want +Inf", got)
	}
	if got := eq.Eval(0, 1); !math.IsNaN(got) {
		t.Errorf("Eval(0, 1) with a=0 = %v, want NaN", got)
	}
}

func TestAbsError(t *testing.T) {
	got := ode.AbsError(ode.Point{X: 3.5, Y: 1.5}, ode.Point{X: 3.5, Y: 1.597})
	if math.Abs(got-0.097) > 1e-12 {
		t.Errorf("AbsError = %v, want 0.097", got)
	}
	if ode.AbsError(ode.Point{Y: 2}, ode.Point{Y: 2}) != 0 {
		t.Error("AbsError of identical points should be 0")
	}
}
