package rk

import (
	"fmt"
	"strings"

	"github.com/san-kum/odelab/internal/ode"
)

// Order selects one member of the family. The numeric value is both the
// order of accuracy and the number of slope evaluations per step.
type Order int

const (
	RK1 Order = 1 // Euler
	RK2 Order = 2 // Heun
	RK3 Order = 3 // Kutta third-order
	RK4 Order = 4 // classical Runge-Kutta
)

// Orders lists the whole family, lowest order first.
var Orders = []Order{RK1, RK2, RK3, RK4}

func (o Order) String() string {
	return fmt.Sprintf("rk%d", int(o))
}

// Stages returns the number of slope evaluations per step.
func (o Order) Stages() int { return int(o) }

func (o Order) valid() bool { return o >= RK1 && o <= RK4 }

// ParseOrder maps a method name to its Order. Accepts rk1..rk4 plus the
// common aliases euler and heun.
func ParseOrder(name string) (Order, error) {
	switch strings.ToLower(name) {
	case "rk1", "euler":
		return RK1, nil
	case "rk2", "heun":
		return RK2, nil
	case "rk3":
		return RK3, nil
	case "rk4":
		return RK4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ode.ErrUnknownOrder, name)
	}
}

// stage describes where slope i is sampled: x offset as a fraction of h,
// y offset as a fraction of the previous slope. The first stage always
// samples the pre-step point and ignores both offsets.
type stage struct {
	xOff float64
	yOff float64
}

type tableau struct {
	stages  []stage
	weights []float64
	denom   float64
}

// Coefficient rows for the four orders. The weight/denominator split keeps
// the combination arithmetic identical to the textbook forms
// (F1+F2)/2, (2F1+3F2+4F3)/9 and (F1+2F2+2F3+F4)/6.
var tableaus = map[Order]tableau{
	RK1: {
		stages:  []stage{{}},
		weights: []float64{1},
		denom:   1,
	},
	RK2: {
		stages:  []stage{{}, {1, 1}},
		weights: []float64{1, 1},
		denom:   2,
	},
	RK3: {
		stages:  []stage{{}, {0.5, 0.5}, {0.75, 0.75}},
		weights: []float64{2, 3, 4},
		denom:   9,
	},
	RK4: {
		stages:  []stage{{}, {0.5, 0.5}, {0.5, 0.5}, {1, 1}},
		weights: []float64{1, 2, 2, 1},
		denom:   6,
	},
}
