// Package ode defines the scalar first-order ODE primitives:
//
//   - [Point]: an (x, y) sample of the trial solution
//   - [Equation]: right-hand side f(x, y) of y' = f(x, y)
//   - [Separable], [FirstOrderLinear]: the two supported closed forms
//   - [AbsError]: absolute error between an observed and a reference point
//
// Equations are constructed once from their coefficients and are immutable;
// they may be shared freely across stepper invocations.
package ode
