package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

var testFrequencies = []float64{0, 0.1, 0.5, 1, 2, 3, math.Pi}

func TestResponse_Passthrough(t *testing.T) {
	c := Passthrough()
	for _, w := range testFrequencies {
		if mag := cmplx.Abs(c.Response(w)); !almostEqual(mag, 1, 1e-12) {
			t.Errorf("w=%v: |H|=%v, want 1", w, mag)
		}
	}
}

func TestResponse_DCGain(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	want := (0.25 + 0.5 + 0.25) / (1 - 0.2 + 0.04)
	if got := real(c.Response(0)); !almostEqual(got, want, 1e-12) {
		t.Fatalf("DC gain = %v, want %v", got, want)
	}
}

func TestResponse_Allpass(t *testing.T) {
	a1, a2 := -0.5, 0.3
	c := Coefficients{B0: a2, B1: a1, B2: 1, A1: a1, A2: a2}
	for _, w := range testFrequencies {
		if mag := cmplx.Abs(c.Response(w)); !almostEqual(mag, 1, 1e-10) {
			t.Errorf("w=%v: |H|=%.15f, want 1", w, mag)
		}
	}
}

func TestMagnitudeDBAndPhase_MatchResponse(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	for _, w := range testFrequencies[:len(testFrequencies)-1] {
		h := c.Response(w)
		if got, want := c.MagnitudeDB(w), 20*math.Log10(cmplx.Abs(h)); !almostEqual(got, want, 1e-12) {
			t.Errorf("w=%v: MagnitudeDB=%v, want %v", w, got, want)
		}
		if got, want := c.Phase(w), cmplx.Phase(h); !almostEqual(got, want, 1e-12) {
			t.Errorf("w=%v: Phase=%v, want %v", w, got, want)
		}
	}
}

func TestChain_Response_ProductOfSections(t *testing.T) {
	coeffs := twoSectionCoeffs()
	c := NewChain(coeffs, WithGain(0.5))
	// The sections have a zero at w = pi, where both sides are -Inf dB.
	for _, w := range testFrequencies[:len(testFrequencies)-1] {
		want := 0.5 * coeffs[0].Response(w) * coeffs[1].Response(w)
		if got := c.Response(w); cmplx.Abs(got-want) > 1e-12 {
			t.Errorf("w=%v: got %v, want %v", w, got, want)
		}
		if got, want := c.MagnitudeDB(w), 20*math.Log10(cmplx.Abs(want)); !almostEqual(got, want, 1e-9) {
			t.Errorf("w=%v: MagnitudeDB=%v, want %v", w, got, want)
		}
	}
}
