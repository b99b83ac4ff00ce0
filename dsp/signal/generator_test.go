package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-zplane/internal/testutil"
)

func TestSine_DefaultIsOneHertz(t *testing.T) {
	g, err := NewGenerator(Sine)
	if err != nil {
		t.Fatal(err)
	}

	// 50 samples at 0.02 s cover one period.
	got := g.Block(51)
	if math.Abs(got[0]) > 1e-15 || math.Abs(got[50]) > 1e-12 {
		t.Fatalf("period endpoints = %v, %v", got[0], got[50])
	}
	if math.Abs(got[12]-math.Sin(2*math.Pi*0.24)) > 1e-12 {
		t.Fatalf("got[12] = %v", got[12])
	}
}

func TestSquare(t *testing.T) {
	g, _ := NewGenerator(Square, WithAmplitude(2))
	got := g.Block(101)

	if got[0] != 0 {
		t.Fatalf("got[0] = %v, want 0", got[0])
	}
	for i := 1; i < 50; i++ {
		if got[i] != 2 {
			t.Fatalf("got[%d] = %v, want 2 in the first half period", i, got[i])
		}
	}
	for i := 51; i < 100; i++ {
		if got[i] != -2 {
			t.Fatalf("got[%d] = %v, want -2 in the second half period", i, got[i])
		}
	}
}

func TestNoise_SeededAndBounded(t *testing.T) {
	a, _ := NewGenerator(Noise, WithSeed(42))
	b, _ := NewGenerator(Noise, WithSeed(42))
	x, y := a.Block(256), b.Block(256)
	testutil.RequireSliceNearlyEqual(t, x, y, 0)

	for i, v := range x {
		if v < -1 || v >= 1 {
			t.Fatalf("x[%d] = %v out of [-1, 1)", i, v)
		}
	}

	a.Reset()
	testutil.RequireSliceNearlyEqual(t, a.Block(8), x[:8], 0)
}

func TestOptions(t *testing.T) {
	g, _ := NewGenerator(Sine, WithStep(0.25), WithFrequency(1))
	testutil.RequireSliceNearlyEqual(t, g.Block(4), []float64{0, 1, 0, -1}, 1e-12)

	if g.Kind() != Sine {
		t.Fatalf("Kind() = %v", g.Kind())
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Sine, Square, Noise} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("sawtooth"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v", err)
	}
	if _, err := NewGenerator(Kind(9)); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v", err)
	}
}
