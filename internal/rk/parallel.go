package rk

import (
	"errors"
	"sync"

	"github.com/san-kum/odelab/internal/ode"
)

// CompareAll runs every order against identical inputs, one goroutine per
// order with its own stepper and running point, and returns the results in
// order RK1..RK4. Failed orders keep their partial result; the returned
// error joins the per-order step errors, if any.
func CompareAll(eq ode.Equation, initial ode.Point, h, target float64) ([]*Result, error) {
	results := make([]*Result, len(Orders))
	errs := make([]error, len(Orders))

	var wg sync.WaitGroup
	for i, order := range Orders {
		wg.Add(1)
		go func(idx int, ord Order) {
			defer wg.Done()

			s, err := New(ord)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.SolveTrajectory(eq, initial, h, target)
		}(i, order)
	}
	wg.Wait()

	return results, errors.Join(errs...)
}
