package biquad

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRow is returned by FromRow when a row cannot be normalised.
var ErrInvalidRow = errors.New("biquad: invalid section row")

// Coefficients holds the transfer function coefficients for a single
// second-order section. a0 is normalized to 1 and not stored.
//
//	H(z) = (B0 + B1*z^-1 + B2*z^-2) / (1 + A1*z^-1 + A2*z^-2)
//
// First-order sections leave B2 and A2 at zero.
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Passthrough returns the unity section [1, 0, 0, 1, 0, 0].
func Passthrough() Coefficients {
	return Coefficients{B0: 1}
}

// Row returns the section as [b0, b1, b2, a0, a1, a2] with a0 = 1.
func (c Coefficients) Row() [6]float64 {
	return [6]float64{c.B0, c.B1, c.B2, 1, c.A1, c.A2}
}

// FromRow builds Coefficients from a [b0, b1, b2, a0, a1, a2] row,
// dividing every coefficient by a0.
func FromRow(row [6]float64) (Coefficients, error) {
	for i, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Coefficients{}, fmt.Errorf("%w: element %d is %v", ErrInvalidRow, i, v)
		}
	}

	a0 := row[3]
	if a0 == 0 {
		return Coefficients{}, fmt.Errorf("%w: a0 is zero", ErrInvalidRow)
	}

	return Coefficients{
		B0: row[0] / a0,
		B1: row[1] / a0,
		B2: row[2] / a0,
		A1: row[4] / a0,
		A2: row[5] / a0,
	}, nil
}

// Section is a single second-order section with coefficients and the two
// delay-line values of the canonical Direct Form II structure.
type Section struct {
	Coefficients

	w1, w2 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
//
//	w  = x - A1*w1 - A2*w2
//	y  = B0*w + B1*w1 + B2*w2
//	w2 = w1, w1 = w
func (s *Section) ProcessSample(x float64) float64 {
	w := x - s.A1*s.w1 - s.A2*s.w2
	y := s.B0*w + s.B1*s.w1 + s.B2*s.w2
	s.w2 = s.w1
	s.w1 = w

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	w1, w2 := s.w1, s.w2

	for i, x := range buf {
		w := x - a1*w1 - a2*w2
		buf[i] = b0*w + b1*w1 + b2*w2
		w2 = w1
		w1 = w
	}

	s.w1, s.w2 = w1, w2
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = s.ProcessSample(x)
	}
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.w1 = 0
	s.w2 = 0
}

// State returns the current delay-line state [w1, w2], most recent first.
func (s *Section) State() [2]float64 {
	return [2]float64{s.w1, s.w2}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.w1 = state[0]
	s.w2 = state[1]
}
