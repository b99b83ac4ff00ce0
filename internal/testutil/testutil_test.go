package testutil

import (
	"math"
	"testing"
)

func TestImpulse(t *testing.T) {
	RequireSliceNearlyEqual(t, Impulse(4, 1), []float64{0, 1, 0, 0}, 0)
	RequireSliceNearlyEqual(t, Impulse(3, 7), []float64{0, 0, 0}, 0)
}

func TestStep(t *testing.T) {
	RequireSliceNearlyEqual(t, Step(3), []float64{1, 1, 1}, 0)
}

func TestTone(t *testing.T) {
	s := Tone(math.Pi/2, 2, 4)
	RequireSliceNearlyEqual(t, s, []float64{0, 2, 0, -2}, 1e-12)
}

func TestNoise(t *testing.T) {
	a := Noise(7, 0.5, 64)
	b := Noise(7, 0.5, 64)
	RequireSliceNearlyEqual(t, a, b, 0)
	if m := MaxAbs(a); m > 0.5 || m == 0 {
		t.Fatalf("MaxAbs = %v, want (0, 0.5]", m)
	}

	c := Noise(8, 0.5, 64)
	if a[0] == c[0] && a[1] == c[1] {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestRequireRelClose(t *testing.T) {
	RequireRelClose(t, []float64{1.0000001, 0}, []float64{1, 1e-12}, 1e-6, 1e-6)
}

func TestRequireComplexNear(t *testing.T) {
	RequireComplexNear(t, complex(1, 1e-10), 1, 1e-9)
}
