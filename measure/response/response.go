package response

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-zplane/dsp/filter/realize"
	"github.com/cwbudde/algo-zplane/dsp/filter/zpk"
)

// ErrInvalidSize is returned for a size that is not a power of two >= 2.
var ErrInvalidSize = errors.New("response: size must be a power of two >= 2")

// Result is the measured response on the bins 0..size/2.
type Result struct {
	// Impulse holds the truncated impulse response.
	Impulse []float64
	// Omega is the normalised angular frequency of each bin in rad/sample.
	Omega []float64
	// Magnitude is |H| per bin.
	Magnitude []float64
	// MagnitudeDB is 20*log10|H| per bin.
	MagnitudeDB []float64
	// PhaseDeg is the unwrapped phase per bin in degrees.
	PhaseDeg []float64
}

// Bins returns the number of frequency bins.
func (r Result) Bins() int { return len(r.Omega) }

// Measure records size samples of the impulse response of r, starting and
// ending with a reset, and transforms them. The truncation must be long
// enough for the response to decay; poles near the unit circle need large
// sizes.
func Measure(r realize.Realization, size int) (Result, error) {
	if size < 2 || size&(size-1) != 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	h := realize.ImpulseResponse(r, size)

	in := make([]complex128, size)
	for i, v := range h {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Result{}, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	phase := make([]float64, bins)
	omega := make([]float64, bins)

	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
		phase[k] = cmplx.Phase(out[k])
		omega[k] = 2 * math.Pi * float64(k) / float64(size)
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	db := make([]float64, bins)
	for k, m := range mag {
		db[k] = 20 * math.Log10(m)
	}

	deg := zpk.Unwrap(phase)
	for k := range deg {
		deg[k] *= 180 / math.Pi
	}

	return Result{
		Impulse:     h,
		Omega:       omega,
		Magnitude:   mag,
		MagnitudeDB: db,
		PhaseDeg:    deg,
	}, nil
}

// FloorDB is the analytic level below which Deviation ignores a bin.
// Deep notches are dominated by rounding noise in both computations.
const FloorDB = -120.0

// Deviation returns the largest absolute difference in dB between res and
// the analytic response of zeros and poles, over the bins whose analytic
// level is above FloorDB.
func Deviation(res Result, zeros, poles []complex128) float64 {
	worst := 0.0
	for k, w := range res.Omega {
		want := 20 * math.Log10(cmplx.Abs(zpk.Evaluate(zeros, poles, cmplx.Rect(1, w))))
		got := res.MagnitudeDB[k]
		if !(want > FloorDB) || math.IsNaN(got) {
			continue
		}

		worst = math.Max(worst, math.Abs(got-want))
	}

	return worst
}
