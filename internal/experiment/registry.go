package experiment

import (
	"fmt"

	"github.com/san-kum/odelab/internal/metrics"
	"github.com/san-kum/odelab/internal/ode"
	"github.com/san-kum/odelab/internal/rk"
)

type Registry struct {
	forms map[string]func(a, b, c float64) ode.Equation
}

func NewRegistry() *Registry {
	r := &Registry{
		forms: make(map[string]func(a, b, c float64) ode.Equation),
	}

	r.forms["separable"] = func(a, b, c float64) ode.Equation { return ode.NewSeparable(a) }
	r.forms["linear"] = func(a, b, c float64) ode.Equation { return ode.NewFirstOrderLinear(a, b, c) }

	return r
}

func (r *Registry) GetStepper(name string) (*rk.Stepper, error) {
	order, err := rk.ParseOrder(name)
	if err != nil {
		return nil, err
	}
	return rk.New(order)
}

func (r *Registry) GetEquation(form string, a, b, c float64) (ode.Equation, error) {
	fn, ok := r.forms[form]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ode.ErrUnknownForm, form)
	}
	return fn(a, b, c), nil
}

func (r *Registry) ListForms() []string {
	names := make([]string, 0, len(r.forms))
	for name := range r.forms {
		names = append(names, name)
	}
	return names
}

func (r *Registry) DefaultMetrics(reference float64) []metrics.Metric {
	return []metrics.Metric{
		metrics.NewFinalError(reference),
		metrics.NewMaxAbs(),
		metrics.NewStepCount(),
	}
}
