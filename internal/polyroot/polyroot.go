// Package polyroot provides polynomial expansion, root finding and
// conjugate grouping utilities shared by the pole/zero packages.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// ErrUnpairedRoot is returned when a complex root has no conjugate partner,
// so the expanded polynomial would have complex coefficients.
var ErrUnpairedRoot = errors.New("polyroot: complex root without conjugate")

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// Expand returns the coefficients of prod(z - r) in descending power order
// by repeated convolution with [1, -r]. An empty root set yields [1].
func Expand(roots []complex128) []complex128 {
	coeff := make([]complex128, 1, len(roots)+1)
	coeff[0] = 1

	for _, r := range roots {
		coeff = append(coeff, 0)
		for i := len(coeff) - 1; i > 0; i-- {
			coeff[i] -= r * coeff[i-1]
		}
	}

	return coeff
}

// RealParts returns the real parts of coeff. It fails with ErrUnpairedRoot
// when any imaginary part exceeds tol relative to the coefficient scale.
func RealParts(coeff []complex128, tol float64) ([]float64, error) {
	scale := 1.0
	for _, c := range coeff {
		scale = math.Max(scale, cmplx.Abs(c))
	}

	out := make([]float64, len(coeff))
	for i, c := range coeff {
		if math.Abs(imag(c)) > tol*scale {
			return nil, ErrUnpairedRoot
		}
		out[i] = real(c)
	}

	return out, nil
}

// Group is a real root or a conjugate pair of roots.
type Group struct {
	// Roots holds one real root or a conjugate pair, positive imaginary
	// part first.
	Roots []complex128
	// Index is the lowest input index among the group members.
	Index int
}

// IsReal reports whether the group is a single real root.
func (g Group) IsReal() bool { return len(g.Roots) == 1 }

// Lead returns the representative root of the group.
func (g Group) Lead() complex128 { return g.Roots[0] }

// GroupConjugates partitions roots into real singles and conjugate pairs,
// preserving input order by lowest member index. A root whose imaginary part
// is within ConjugateTol of zero is treated as real. Each complex root is
// matched with the closest unused candidate to its conjugate, ties going to
// the lowest index.
func GroupConjugates(roots []complex128) ([]Group, error) {
	used := make([]bool, len(roots))
	groups := make([]Group, 0, len(roots))

	for i, root := range roots {
		if used[i] {
			continue
		}

		if isReal(root) {
			used[i] = true
			groups = append(groups, Group{Roots: []complex128{complex(real(root), 0)}, Index: i})
			continue
		}

		conj := cmplx.Conj(root)
		best := -1
		bestDist := math.MaxFloat64

		for j := i + 1; j < len(roots); j++ {
			if used[j] {
				continue
			}

			if d := cmplx.Abs(roots[j] - conj); d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 || !IsConjugate(root, roots[best], ConjugateTol) {
			return nil, ErrUnpairedRoot
		}

		used[i] = true
		used[best] = true

		upper := complex(real(root), math.Abs(imag(root)))
		groups = append(groups, Group{Roots: []complex128{upper, cmplx.Conj(upper)}, Index: i})
	}

	return groups, nil
}

func isReal(r complex128) bool {
	return math.Abs(imag(r)) <= ConjugateTol*math.Max(1, math.Abs(real(r)))
}

// Roots finds the roots of a real polynomial given in descending power
// order. Leading zero coefficients are skipped; a constant polynomial has
// no roots. Near-real roots are snapped to the real axis and complex roots
// are returned as exact conjugate pairs.
func Roots(coeff []float64) ([]complex128, error) {
	for len(coeff) > 0 && coeff[0] == 0 {
		coeff = coeff[1:]
	}

	if len(coeff) == 0 {
		return nil, ErrDegeneratePolynomial
	}

	if len(coeff) == 1 {
		return nil, nil
	}

	c := make([]complex128, len(coeff))
	for i, v := range coeff {
		c[i] = complex(v, 0)
	}

	raw, err := DurandKerner(c)
	if err != nil {
		return nil, err
	}

	return snapConjugates(raw), nil
}

// snapConjugates cleans up solver noise: tiny imaginary parts become zero
// and the member of each pair with negative imaginary part is replaced by
// the exact conjugate of its partner.
func snapConjugates(roots []complex128) []complex128 {
	const snapTol = 1e-9

	out := make([]complex128, len(roots))
	used := make([]bool, len(roots))

	for i, r := range roots {
		if math.Abs(imag(r)) <= snapTol*math.Max(1, cmplx.Abs(r)) {
			out[i] = complex(real(r), 0)
			used[i] = true
		}
	}

	for i, r := range roots {
		if used[i] {
			continue
		}

		used[i] = true
		out[i] = r

		best := -1
		bestDist := math.MaxFloat64
		for j := i + 1; j < len(roots); j++ {
			if used[j] {
				continue
			}
			if d := cmplx.Abs(roots[j] - cmplx.Conj(r)); d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 {
			continue
		}

		used[best] = true
		upper := complex((real(r)+real(roots[best]))/2, (math.Abs(imag(r))+math.Abs(imag(roots[best])))/2)
		if imag(r) >= 0 {
			out[i], out[best] = upper, cmplx.Conj(upper)
		} else {
			out[i], out[best] = cmplx.Conj(upper), upper
		}
	}

	return out
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			delta := PolyEval(norm, roots[i]) / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	maxResidual := 0.0

	for _, r := range roots {
		if res := cmplx.Abs(PolyEval(norm, r)); res > maxResidual {
			maxResidual = res
		}
	}

	if maxResidual < 1e-6 {
		return roots, nil
	}

	return nil, ErrDegeneratePolynomial
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}
