package zpk

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-zplane/internal/polyroot"
)

// ErrDerivation is returned when a zero/pole set cannot be turned into real
// coefficients. The accompanying result is always a passthrough filter.
var ErrDerivation = errors.New("zpk: coefficient derivation failed")

// TransferFunction is a rational transfer function in descending powers of
// z^-1:
//
//	H(z) = (B[0] + B[1] z^-1 + ...) / (A[0] + A[1] z^-1 + ...)
type TransferFunction struct {
	B []float64
	A []float64
}

// Identity returns b = [1], a = [1].
func Identity() TransferFunction {
	return TransferFunction{B: []float64{1}, A: []float64{1}}
}

// Order returns the larger of the numerator and denominator degrees.
func (tf TransferFunction) Order() int {
	return max(len(tf.B), len(tf.A)) - 1
}

// Clone returns a deep copy.
func (tf TransferFunction) Clone() TransferFunction {
	return TransferFunction{
		B: append([]float64(nil), tf.B...),
		A: append([]float64(nil), tf.A...),
	}
}

// IsIdentity reports whether tf is exactly b = [1], a = [1].
func (tf TransferFunction) IsIdentity() bool {
	return len(tf.B) == 1 && len(tf.A) == 1 && tf.B[0] == 1 && tf.A[0] == 1
}

// DirectForm expands prod(z - zeros) and prod(z - poles) into coefficient
// vectors and normalises both by a[0]. Empty sets yield [1]. Sets that are
// not closed under conjugation, or that hold non-finite roots, fail with
// ErrDerivation and return Identity.
func DirectForm(zeros, poles []complex128) (TransferFunction, error) {
	if err := checkFinite(zeros, "zero"); err != nil {
		return Identity(), err
	}
	if err := checkFinite(poles, "pole"); err != nil {
		return Identity(), err
	}

	b, err := polyroot.RealParts(polyroot.Expand(zeros), polyroot.ConjugateTol)
	if err != nil {
		return Identity(), fmt.Errorf("%w: numerator: %w", ErrDerivation, err)
	}

	a, err := polyroot.RealParts(polyroot.Expand(poles), polyroot.ConjugateTol)
	if err != nil {
		return Identity(), fmt.Errorf("%w: denominator: %w", ErrDerivation, err)
	}

	a0 := a[0]
	if a0 == 0 {
		return Identity(), fmt.Errorf("%w: a[0] == 0", ErrDerivation)
	}

	for i := range b {
		b[i] /= a0
	}
	for i := range a {
		a[i] /= a0
	}
	a[0] = 1

	return TransferFunction{B: b, A: a}, nil
}

func checkFinite(roots []complex128, what string) error {
	for i, r := range roots {
		if cmplx.IsNaN(r) || cmplx.IsInf(r) {
			return fmt.Errorf("%w: %s %d is %v", ErrDerivation, what, i, r)
		}
	}

	return nil
}
