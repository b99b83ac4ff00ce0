package zplane

import (
	"fmt"

	"github.com/cwbudde/algo-zplane/internal/polyroot"
)

// FromTransferFunction recovers zeros and poles from direct-form
// coefficients b and a (descending powers of z^-1). The overall gain
// b[0]/a[0] has no place in the model and is dropped.
func FromTransferFunction(b, a []float64) (*Model, error) {
	zeros, err := polyroot.Roots(b)
	if err != nil {
		return nil, fmt.Errorf("zplane: numerator roots: %w", err)
	}

	poles, err := polyroot.Roots(a)
	if err != nil {
		return nil, fmt.Errorf("zplane: denominator roots: %w", err)
	}

	return FromPoints(zeros, poles)
}
