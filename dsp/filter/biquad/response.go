package biquad

import (
	"math"
	"math/cmplx"
)

// Response computes H(e^jw) of the section at normalized angular frequency
// w in radians per sample (0 = DC, pi = Nyquist).
func (c *Coefficients) Response(w float64) complex128 {
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := ejw * ejw

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := 1 + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w
	return num / den
}

// MagnitudeDB returns 20*log10(|H(e^jw)|).
func (c *Coefficients) MagnitudeDB(w float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(w)))
}

// Phase returns the phase response in radians at w, in [-pi, pi].
func (c *Coefficients) Phase(w float64) float64 {
	return cmplx.Phase(c.Response(w))
}

// Response computes the complex frequency response of the full cascade
// as the product of individual section responses.
func (c *Chain) Response(w float64) complex128 {
	h := complex(c.gain, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(w)
	}
	return h
}

// MagnitudeDB returns the cascaded magnitude response in dB.
func (c *Chain) MagnitudeDB(w float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(w)))
}

// ImpulseResponse computes n samples of the cascade impulse response.
// The chain state is saved and restored.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}
	saved := c.State()
	c.Reset()
	ir := make([]float64, n)
	ir[0] = c.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = c.ProcessSample(0)
	}
	c.SetState(saved)
	return ir
}
