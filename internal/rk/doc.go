// Package rk implements the explicit single-step Runge-Kutta family of
// orders 1 through 4 for scalar equations y' = f(x, y).
//
// All four orders share one loop: the step count is fixed up front from
// (target - x0) / h, every stage of a step is evaluated against the
// pre-step point, and x advances by exactly h per step. The orders differ
// only in their coefficient rows (stage offsets and combination weights),
// so a single [Stepper] parameterized by [Order] executes any of them.
//
// Steppers are not safe for concurrent use; [CompareAll] runs the four
// orders concurrently by giving each its own stepper and running point.
package rk
