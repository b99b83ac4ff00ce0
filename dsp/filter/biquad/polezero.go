package biquad

import "math/cmplx"

// PoleZeroPair stores the two poles and two zeros of one section.
// For first-order sections, the second pole/zero is 0.
type PoleZeroPair struct {
	Poles [2]complex128
	Zeros [2]complex128
}

// FromRoots builds a section from at most two zeros and two poles:
//
//	H(z) = gain * (1 - z1 z^-1)(1 - z2 z^-1) / ((1 - p1 z^-1)(1 - p2 z^-1))
//
// Missing roots leave the corresponding slot zeroed. The roots are expected
// to be real or a conjugate pair; imaginary residue of the expanded
// coefficients is discarded.
func FromRoots(zeros, poles []complex128, gain float64) Coefficients {
	b1, b2 := expandPair(zeros)
	a1, a2 := expandPair(poles)

	return Coefficients{
		B0: gain,
		B1: gain * b1,
		B2: gain * b2,
		A1: a1,
		A2: a2,
	}
}

func expandPair(roots []complex128) (float64, float64) {
	switch len(roots) {
	case 0:
		return 0, 0
	case 1:
		return -real(roots[0]), 0
	default:
		return -real(roots[0] + roots[1]), real(roots[0] * roots[1])
	}
}

// Poles returns the z-plane poles of the section denominator:
//
//	1 + A1*z^-1 + A2*z^-2 = 0
func (c *Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the z-plane zeros of the section numerator:
//
//	B0 + B1*z^-1 + B2*z^-2 = 0
func (c *Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// PoleZeroPair returns both poles and zeros for a single section.
func (c *Coefficients) PoleZeroPair() PoleZeroPair {
	return PoleZeroPair{
		Poles: c.Poles(),
		Zeros: c.Zeros(),
	}
}

// PoleZeroPairs returns one pole/zero pair entry per chain section.
func (c *Chain) PoleZeroPairs() []PoleZeroPair {
	out := make([]PoleZeroPair, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].PoleZeroPair()
	}
	return out
}

// quadraticRoots solves a*z^2 + b*z + c = 0. A vanishing leading term
// degrades to the linear root; the unused slot is 0.
func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	sqrtDiscriminant := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)
	return [2]complex128{
		(-complex(b, 0) + sqrtDiscriminant) / den,
		(-complex(b, 0) - sqrtDiscriminant) / den,
	}
}
