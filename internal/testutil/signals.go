// Package testutil holds signal generators and tolerance assertions shared
// by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// Impulse returns a unit impulse of length n at position pos.
func Impulse(n, pos int) []float64 {
	out := make([]float64, n)
	if pos >= 0 && pos < n {
		out[pos] = 1
	}
	return out
}

// Step returns n ones.
func Step(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// Tone returns n samples of amp*sin(w*i) for w in rad/sample.
func Tone(w, amp float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(w*float64(i))
	}
	return out
}

// Noise returns n uniform samples in [-amp, amp) from a fixed seed.
func Noise(seed int64, amp float64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amp
	}
	return out
}
