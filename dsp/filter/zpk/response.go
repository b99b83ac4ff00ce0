package zpk

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidLength is returned by Response for a non-positive point count.
var ErrInvalidLength = errors.New("zpk: response length must be > 0")

// FrequencyResponse samples H(e^jw) on a uniform grid over [0, pi].
type FrequencyResponse struct {
	// Omega holds the normalised angular frequencies in rad/sample.
	Omega []float64
	// MagnitudeDB is 20*log10|H|. Zeros on the unit circle give -Inf.
	MagnitudeDB []float64
	// PhaseDeg is the unwrapped phase in degrees.
	PhaseDeg []float64
	// GroupDelay is -dphi/dw in samples.
	GroupDelay []float64
}

// Len returns the number of frequency points.
func (r FrequencyResponse) Len() int { return len(r.Omega) }

// Response evaluates
//
//	H(e^jw) = prod(e^jw - z) / prod(e^jw - p)
//
// at n points spread evenly over [0, pi]. A single point samples w = 0.
func Response(zeros, poles []complex128, n int) (FrequencyResponse, error) {
	if n <= 0 {
		return FrequencyResponse{}, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	omega := make([]float64, n)
	if n > 1 {
		floats.Span(omega, 0, math.Pi)
		omega[n-1] = math.Pi
	}

	re := make([]float64, n)
	im := make([]float64, n)
	phase := make([]float64, n)

	for i, w := range omega {
		h := Evaluate(zeros, poles, cmplx.Rect(1, w))
		re[i] = real(h)
		im[i] = imag(h)
		phase[i] = cmplx.Phase(h)
	}

	mag := make([]float64, n)
	vecmath.Magnitude(mag, re, im)

	for i, m := range mag {
		mag[i] = 20 * math.Log10(m)
	}

	unwrapped := Unwrap(phase)

	deg := make([]float64, n)
	for i, p := range unwrapped {
		deg[i] = p * 180 / math.Pi
	}

	return FrequencyResponse{
		Omega:       omega,
		MagnitudeDB: mag,
		PhaseDeg:    deg,
		GroupDelay:  groupDelay(unwrapped, omega),
	}, nil
}

// Evaluate returns prod(z - zeros) / prod(z - poles) at z.
func Evaluate(zeros, poles []complex128, z complex128) complex128 {
	num := complex(1, 0)
	for _, r := range zeros {
		num *= z - r
	}

	den := complex(1, 0)
	for _, r := range poles {
		den *= z - r
	}

	return num / den
}

// Unwrap returns a copy of phase (radians) with 2*pi jumps removed.
func Unwrap(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}

	out := make([]float64, len(phase))
	out[0] = phase[0]

	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}

		out[i] = phase[i] + offset
	}

	return out
}

// groupDelay differentiates the unwrapped phase, centred in the interior
// and one-sided at the ends.
func groupDelay(phase, omega []float64) []float64 {
	n := len(phase)
	out := make([]float64, n)
	if n < 2 {
		return out
	}

	for i := range out {
		lo, hi := max(i-1, 0), min(i+1, n-1)
		out[i] = -(phase[hi] - phase[lo]) / (omega[hi] - omega[lo])
	}

	return out
}
