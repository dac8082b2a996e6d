package experiment

import (
	"fmt"
	"time"

	"github.com/san-kum/odelab/internal/metrics"
	"github.com/san-kum/odelab/internal/ode"
	"github.com/san-kum/odelab/internal/rk"
)

type Config struct {
	Form      string
	A, B, C   float64
	Order     string
	Initial   ode.Point
	H         float64
	Target    float64
	Reference float64
}

// RunResult is a stepper result together with the metric values observed
// during the run and the wall-clock cost of producing it.
type RunResult struct {
	*rk.Result
	Metrics map[string]float64
	Elapsed time.Duration
}

type Experiment struct {
	cfg     Config
	stepper *rk.Stepper
	eq      ode.Equation
	metrics []metrics.Metric
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(eq ode.Equation, stepper *rk.Stepper, ms []metrics.Metric) error {
	e.eq = eq
	e.stepper = stepper
	e.metrics = ms
	for _, m := range ms {
		stepper.AddObserver(m)
	}
	return nil
}

func (e *Experiment) Run() (*RunResult, error) {
	if e.stepper == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	start := time.Now()
	res, err := e.stepper.SolveTrajectory(e.eq, e.cfg.Initial, e.cfg.H, e.cfg.Target)
	elapsed := time.Since(start)

	run := &RunResult{
		Result:  res,
		Metrics: make(map[string]float64),
		Elapsed: elapsed,
	}
	for _, m := range e.metrics {
		run.Metrics[m.Name()] = m.Value()
	}

	return run, err
}

// Time invokes a bare stepper n times with the experiment's inputs and
// returns the total wall-clock cost. Runs are independent and
// deterministic, so repetition is safe and the mean is meaningful.
func (e *Experiment) Time(n int) (time.Duration, error) {
	order, err := rk.ParseOrder(e.cfg.Order)
	if err != nil {
		return 0, err
	}
	s, err := rk.New(order)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	for i := 0; i < n; i++ {
		if _, err := s.Solve(e.eq, e.cfg.Initial, e.cfg.H, e.cfg.Target); err != nil {
			return time.Since(start), err
		}
	}
	return time.Since(start), nil
}
