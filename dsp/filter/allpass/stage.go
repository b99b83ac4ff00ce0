package allpass

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ErrInvalidCoefficient is returned for coefficients outside [0, 1].
var ErrInvalidCoefficient = errors.New("allpass: coefficient must be in [0, 1]")

// Stage is a first-order all-pass section with one state value.
type Stage struct {
	a float64
	s float64
}

// NewStage returns a zeroed stage with coefficient a.
func NewStage(a float64) (*Stage, error) {
	if err := checkCoefficient(a); err != nil {
		return nil, err
	}

	return &Stage{a: a}, nil
}

func checkCoefficient(a float64) error {
	if math.IsNaN(a) || a < 0 || a > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidCoefficient, a)
	}

	return nil
}

// Coefficient returns a.
func (st *Stage) Coefficient() float64 { return st.a }

// Pole returns a.
func (st *Stage) Pole() float64 { return st.a }

// Zero returns 1/a, or +Inf for a == 0.
func (st *Stage) Zero() float64 { return 1 / st.a }

// Step filters one sample:
//
//	w = x + a*s
//	y = s - a*w
//	s = w
//
// At a == 1 the pole and zero cancel and the stage is y = -x with no state.
func (st *Stage) Step(x float64) float64 {
	if st.a == 1 {
		return -x
	}

	w := x + st.a*st.s
	y := st.s - st.a*w
	st.s = w
	return y
}

// Reset clears the state.
func (st *Stage) Reset() { st.s = 0 }

// State returns the stored delay value.
func (st *Stage) State() float64 { return st.s }

// Name returns the display label, e.g. "a=0.700".
func (st *Stage) Name() string { return fmt.Sprintf("a=%.3f", st.a) }

// Response evaluates H(e^jw).
func (st *Stage) Response(w float64) complex128 {
	if st.a == 1 {
		return -1
	}

	zi := cmplx.Rect(1, -w)
	a := complex(st.a, 0)
	return (zi - a) / (1 - a*zi)
}

// Phase returns arg H(e^jw) in radians.
func (st *Stage) Phase(w float64) float64 { return cmplx.Phase(st.Response(w)) }

// GroupDelay returns the group delay at w in samples:
//
//	(1 - a^2) / (1 - 2a cos w + a^2)
//
// It is 0 at a == 1.
func (st *Stage) GroupDelay(w float64) float64 {
	a := st.a
	if a == 1 {
		return 0
	}

	return (1 - a*a) / (1 - 2*a*math.Cos(w) + a*a)
}
