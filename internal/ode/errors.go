package ode

import "errors"

// Domain errors for estimation runs.
var (
	// ErrZeroStep indicates a step size of zero (the loop bound would be
	// undefined).
	ErrZeroStep = errors.New("ode: step size must be non-zero")

	// ErrNonFinite indicates the running point became NaN or Inf.
	ErrNonFinite = errors.New("ode: non-finite result (NaN or Inf detected)")

	// ErrUnknownOrder indicates an order tag outside RK1..RK4.
	ErrUnknownOrder = errors.New("ode: unknown method order")

	// ErrUnknownForm indicates an unrecognized equation form name.
	ErrUnknownForm = errors.New("ode: unknown equation form")
)
