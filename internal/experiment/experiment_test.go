package experiment_test

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/ode"
	"github.com/san-kum/odelab/internal/rk"
)

func TestRegistryStepper(t *testing.T) {
	r := experiment.NewRegistry()

	s, err := r.GetStepper("euler")
	if err != nil {
		t.Fatal(err)
	}
	if s.Order() != rk.RK1 {
		t.Errorf("order = %v, want rk1", s.Order())
	}

	if _, err := r.GetStepper("rk9"); !errors.Is(err, ode.ErrUnknownOrder) {
		t.Errorf("err = %v, want ErrUnknownOrder", err)
	}
}

func TestRegistryEquation(t *testing.T) {
	r := experiment.NewRegistry()

	eq, err := r.GetEquation("linear", 2, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := eq.Eval(2, 1); got != 2 {
		t.Errorf("Eval(2, 1) = %v, want 2", got)
	}

	if _, err := r.GetEquation("polynomial", 1, 1, 1); !errors.Is(err, ode.ErrUnknownForm) {
		t.Errorf("err = %v, want ErrUnknownForm", err)
	}

	forms := r.ListForms()
	if len(forms) != 2 {
		t.Errorf("forms = %v, want separable and linear", forms)
	}
}

func TestExperimentRun(t *testing.T) {
	r := experiment.NewRegistry()
	eq, err := r.GetEquation("linear", 2, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	stepper, err := r.GetStepper("rk4")
	if err != nil {
		t.Fatal(err)
	}

	reference := 3 - 2*math.Exp(-1)
	exp := experiment.New(experiment.Config{
		Order:     "rk4",
		Initial:   ode.Point{X: 0, Y: 1},
		H:         0.1,
		Target:    2.0,
		Reference: reference,
	})
	if err := exp.Setup(eq, stepper, r.DefaultMetrics(reference)); err != nil {
		t.Fatal(err)
	}

	run, err := exp.Run()
	if err != nil {
		t.Fatal(err)
	}
	if run.Steps != 20 || len(run.Points) != 20 {
		t.Errorf("steps/points = %d/%d, want 20 each", run.Steps, len(run.Points))
	}
	if run.Elapsed <= 0 {
		t.Error("elapsed not recorded")
	}

	if got := run.Metrics["steps"]; got != 20 {
		t.Errorf("steps metric = %v, want 20", got)
	}
	if got := run.Metrics["final_error"]; got > 1e-6 {
		t.Errorf("final_error = %v, want below 1e-6", got)
	}
	if got := run.Metrics["max_abs_y"]; math.Abs(got-run.Final.Y) > 1e-12 {
		t.Errorf("max_abs_y = %v, want final y %v for a monotone solution", got, run.Final.Y)
	}
}

func TestExperimentRunWithoutSetup(t *testing.T) {
	exp := experiment.New(experiment.Config{Order: "rk4"})
	if _, err := exp.Run(); err == nil {
		t.Error("expected error before Setup")
	}
}

func TestExperimentTime(t *testing.T) {
	r := experiment.NewRegistry()
	eq, err := r.GetEquation("separable", 1, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	exp := experiment.New(experiment.Config{
		Order:   "rk2",
		Initial: ode.Point{X: 0, Y: 1},
		H:       0.1,
		Target:  1.0,
	})
	if err := exp.Setup(eq, nil, nil); err != nil {
		t.Fatal(err)
	}

	elapsed, err := exp.Time(10)
	if err != nil {
		t.Fatal(err)
	}
	if elapsed <= 0 {
		t.Error("elapsed not recorded")
	}

	exp = experiment.New(experiment.Config{Order: "bogus", Initial: ode.Point{Y: 1}, H: 0.1, Target: 1})
	if err := exp.Setup(eq, nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := exp.Time(1); !errors.Is(err, ode.ErrUnknownOrder) {
		t.Errorf("err = %v, want ErrUnknownOrder", err)
	}
}
