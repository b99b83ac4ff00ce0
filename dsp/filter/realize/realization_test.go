package realize

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-zplane/dsp/filter/zpk"
	"github.com/cwbudde/algo-zplane/internal/testutil"
)

var butterworthPoles = []complex128{complex(-0.7071, 0.7071), complex(-0.7071, -0.7071)}

func TestDirect_ButterworthImpulse(t *testing.T) {
	d, err := Derive(DirectForm, nil, butterworthPoles)
	if err != nil {
		t.Fatal(err)
	}
	r := d.Realize()

	got := make([]float64, 5)
	Process(r, got, testutil.Impulse(5, 0))

	if got[0] != d.Transfer.B[0] {
		t.Fatalf("y[0] = %v, want b[0] = %v exactly", got[0], d.Transfer.B[0])
	}

	a1, a2 := d.Transfer.A[1], d.Transfer.A[2]
	want := []float64{1, -a1, a1*a1 - a2, -a1*(a1*a1-a2) + a2*a1}
	testutil.RequireSliceNearlyEqual(t, got[:4], want, 1e-12)

	if got[1] >= 0 || got[2] <= 0 {
		t.Fatalf("response does not oscillate: %v", got)
	}
}

func TestDirect_ButterworthImpulseDecays(t *testing.T) {
	r, err := New(DirectForm, nil, butterworthPoles)
	if err != nil {
		t.Fatal(err)
	}

	// h[n] = rho^n sin((n+1)theta)/sin(theta) bounds the envelope.
	rho := cmplx.Abs(butterworthPoles[0])
	bound := 1 / math.Sin(cmplx.Phase(butterworthPoles[0]))

	h := ImpulseResponse(r, 5000)
	for n, v := range h {
		if math.Abs(v) > bound*math.Pow(rho, float64(n))+1e-9 {
			t.Fatalf("h[%d] = %v exceeds envelope %v", n, v, bound*math.Pow(rho, float64(n)))
		}
	}
}

func TestDirect_Formula(t *testing.T) {
	// y = 0.5x + 0.25x[n-1] with feedback 0.5: w = x + 0.5 w[n-1].
	r := NewDirect(zpk.TransferFunction{B: []float64{0.5, 0.25}, A: []float64{1, -0.5}})
	if r.Order() != 1 {
		t.Fatalf("Order() = %d, want 1", r.Order())
	}

	got := make([]float64, 4)
	Process(r, got, []float64{1, 0, 0, 2})
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.5, 0.5, 0.25, 1.125}, 1e-15)

	if s := r.State(); s[0] != 2.125 {
		t.Fatalf("state = %v, want [2.125]", s)
	}
}

func TestDirect_UnequalLengths(t *testing.T) {
	r := NewDirect(zpk.TransferFunction{B: []float64{1, 0, 0, -1}, A: []float64{1}})
	if r.Order() != 3 {
		t.Fatalf("Order() = %d, want 3", r.Order())
	}

	got := make([]float64, 6)
	Process(r, got, testutil.Impulse(6, 0))
	testutil.RequireSliceNearlyEqual(t, got, []float64{1, 0, 0, -1, 0, 0}, 0)
}

func TestPassthrough_IsExact(t *testing.T) {
	for _, s := range []Structure{DirectForm, Cascade} {
		r, err := New(s, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := r.(Passthrough); !ok {
			t.Fatalf("%v: got %T, want Passthrough", s, r)
		}
		if r.Structure() != s {
			t.Fatalf("Structure() = %v, want %v", r.Structure(), s)
		}

		for _, x := range []float64{0, 1, -3.5, 1e300, -1e-300, math.MaxFloat64} {
			if y := r.Step(x); y != x {
				t.Fatalf("%v: Step(%v) = %v", s, x, y)
			}
		}
	}
}

func TestCascade_MatchesDirect(t *testing.T) {
	tests := []struct {
		name         string
		zeros, poles []complex128
	}{
		{"first order", []complex128{-1}, []complex128{0.5}},
		{"butterworth", nil, butterworthPoles},
		{"notch", []complex128{complex(0, 1), complex(0, -1)}, []complex128{complex(0, 0.9), complex(0, -0.9)}},
		{"third order", []complex128{-1, -1, -1}, []complex128{0.3, complex(0.4, 0.4), complex(0.4, -0.4)}},
		{"fourth order", []complex128{1, -1, complex(0.5, 0.8), complex(0.5, -0.8)},
			[]complex128{complex(0.6, 0.3), complex(0.6, -0.3), complex(-0.2, 0.7), complex(-0.2, -0.7)}},
	}

	in := testutil.Noise(11, 1, 512)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			direct, err := New(DirectForm, tt.zeros, tt.poles)
			if err != nil {
				t.Fatal(err)
			}
			cascade, err := New(Cascade, tt.zeros, tt.poles)
			if err != nil {
				t.Fatal(err)
			}

			want := make([]float64, len(in))
			got := make([]float64, len(in))
			Process(direct, want, in)
			Process(cascade, got, in)

			testutil.RequireRelClose(t, got, want, 1e-6, 1e-6)
		})
	}
}

func TestReset(t *testing.T) {
	for _, s := range []Structure{DirectForm, Cascade} {
		r, err := New(s, []complex128{-1}, []complex128{0.9, 0.5})
		if err != nil {
			t.Fatal(err)
		}

		first := ImpulseResponse(r, 16)
		for range 10 {
			r.Step(1)
		}
		r.Reset()

		again := make([]float64, 16)
		Process(r, again, testutil.Impulse(16, 0))
		testutil.RequireSliceNearlyEqual(t, again, first, 0)
	}
}

func TestNew_DerivationFailure(t *testing.T) {
	for _, s := range []Structure{DirectForm, Cascade} {
		r, err := New(s, []complex128{complex(0.2, 0.5)}, nil)
		if !errors.Is(err, zpk.ErrDerivation) {
			t.Fatalf("%v: err = %v, want ErrDerivation", s, err)
		}
		if y := r.Step(0.75); y != 0.75 {
			t.Fatalf("%v: fallback Step(0.75) = %v", s, y)
		}
	}
}

func TestOrder(t *testing.T) {
	poles := []complex128{0.1, 0.2, complex(0.3, 0.3), complex(0.3, -0.3), 0.4}

	d, err := New(DirectForm, nil, poles)
	if err != nil {
		t.Fatal(err)
	}
	c, err := New(Cascade, nil, poles)
	if err != nil {
		t.Fatal(err)
	}

	if d.Order() != 5 || c.Order() != 5 {
		t.Fatalf("orders = %d, %d; want 5, 5", d.Order(), c.Order())
	}
}

func TestImpulseResponse_LeavesStateZero(t *testing.T) {
	r := NewDirect(zpk.TransferFunction{B: []float64{1}, A: []float64{1, -0.5}})
	ImpulseResponse(r, 8)
	for _, v := range r.State() {
		if v != 0 {
			t.Fatalf("state = %v after ImpulseResponse", r.State())
		}
	}
	if ImpulseResponse(r, 0) != nil {
		t.Fatal("ImpulseResponse(0) should be nil")
	}
}
