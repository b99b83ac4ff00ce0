package zpk

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-zplane/internal/testutil"
)

func TestDirectForm_LeadingDenominatorIsOne(t *testing.T) {
	tests := []struct {
		name         string
		zeros, poles []complex128
	}{
		{"empty", nil, nil},
		{"zeros only", []complex128{0.5, -0.5}, nil},
		{"poles only", nil, []complex128{complex(-0.7071, 0.7071), complex(-0.7071, -0.7071)}},
		{"mixed", []complex128{1, complex(0.2, 0.9), complex(0.2, -0.9)}, []complex128{0.9, 0.3, complex(0.1, 0.5), complex(0.1, -0.5)}},
		{"outside unit circle zeros", []complex128{3, -2}, []complex128{0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf, err := DirectForm(tt.zeros, tt.poles)
			if err != nil {
				t.Fatalf("DirectForm() error = %v", err)
			}
			if tf.A[0] != 1 {
				t.Fatalf("a[0] = %v, want exactly 1", tf.A[0])
			}
			if len(tf.B) != len(tt.zeros)+1 || len(tf.A) != len(tt.poles)+1 {
				t.Fatalf("len(b)=%d len(a)=%d for %d zeros %d poles", len(tf.B), len(tf.A), len(tt.zeros), len(tt.poles))
			}
		})
	}
}

func TestDirectForm_Empty(t *testing.T) {
	tf, err := DirectForm(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !tf.IsIdentity() {
		t.Fatalf("got %+v, want identity", tf)
	}
	if tf.Order() != 0 {
		t.Fatalf("Order() = %d, want 0", tf.Order())
	}
}

func TestDirectForm_Expansion(t *testing.T) {
	tf, err := DirectForm(
		[]complex128{0.5, -0.5},
		[]complex128{complex(0.4, 0.3), complex(0.4, -0.3)},
	)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, tf.B, []float64{1, 0, -0.25}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, tf.A, []float64{1, -0.8, 0.25}, 1e-15)
}

func TestDirectForm_Failures(t *testing.T) {
	tests := []struct {
		name         string
		zeros, poles []complex128
	}{
		{"unpaired zero", []complex128{complex(0.3, 0.4)}, nil},
		{"unpaired pole", nil, []complex128{complex(0.3, 0.4), 0.2}},
		{"nan zero", []complex128{complex(math.NaN(), 0)}, nil},
		{"inf pole", nil, []complex128{cmplx.Inf()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf, err := DirectForm(tt.zeros, tt.poles)
			if !errors.Is(err, ErrDerivation) {
				t.Fatalf("err = %v, want ErrDerivation", err)
			}
			if !tf.IsIdentity() {
				t.Fatalf("fallback = %+v, want identity", tf)
			}
		})
	}
}

func TestTransferFunction_Clone(t *testing.T) {
	tf := TransferFunction{B: []float64{1, 2}, A: []float64{1, 0.5}}
	c := tf.Clone()
	c.B[0] = 9
	if tf.B[0] != 1 {
		t.Fatal("Clone shares the numerator")
	}
}
