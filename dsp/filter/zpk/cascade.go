package zpk

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-zplane/dsp/filter/biquad"
	"github.com/cwbudde/algo-zplane/internal/polyroot"
)

// Cascade splits a zero/pole set into second-order sections.
//
// Roots are first grouped into real singles and conjugate pairs. Sections
// are then built by repeatedly taking the remaining pole group closest to
// the origin; a real pole is joined by the nearest remaining real pole.
// The zero group nearest to that pole is attached, and a real zero is
// joined by the nearest remaining real zero. Ties go to the lowest input
// index. Zeros left over once all poles are placed form zero-only
// sections. The direct-form gain b[0] is carried by the first section.
//
// Empty input yields one passthrough section. On failure the result is
// also a single passthrough section and the error matches ErrDerivation.
func Cascade(zeros, poles []complex128) ([]biquad.Coefficients, error) {
	passthrough := []biquad.Coefficients{biquad.Passthrough()}

	tf, err := DirectForm(zeros, poles)
	if err != nil {
		return passthrough, err
	}

	if len(zeros) == 0 && len(poles) == 0 {
		return passthrough, nil
	}

	zg, err := polyroot.GroupConjugates(zeros)
	if err != nil {
		return passthrough, fmt.Errorf("%w: zeros: %w", ErrDerivation, err)
	}

	pg, err := polyroot.GroupConjugates(poles)
	if err != nil {
		return passthrough, fmt.Errorf("%w: poles: %w", ErrDerivation, err)
	}

	p := newPool(pg)
	z := newPool(zg)
	sections := make([]biquad.Coefficients, 0, (max(len(zeros), len(poles))+1)/2)

	for {
		lead := p.closestToOrigin()
		if lead < 0 {
			break
		}

		sp := p.take(lead)
		anchor := sp[0]
		if len(sp) == 1 {
			if j := p.nearest(anchor, true); j >= 0 {
				sp = append(sp, p.take(j)...)
			}
		}

		var sz []complex128
		if j := z.nearest(anchor, false); j >= 0 {
			sz = z.take(j)
			if len(sz) == 1 {
				if k := z.nearest(anchor, true); k >= 0 {
					sz = append(sz, z.take(k)...)
				}
			}
		}

		sections = append(sections, biquad.FromRoots(sz, sp, 1))
	}

	for {
		j := z.first()
		if j < 0 {
			break
		}

		sz := z.take(j)
		if len(sz) == 1 {
			if k := z.nearest(sz[0], true); k >= 0 {
				sz = append(sz, z.take(k)...)
			}
		}

		sections = append(sections, biquad.FromRoots(sz, nil, 1))
	}

	g := tf.B[0]
	sections[0].B0 *= g
	sections[0].B1 *= g
	sections[0].B2 *= g

	for i, s := range sections {
		if !finite(s.B0, s.B1, s.B2, s.A1, s.A2) {
			return passthrough, fmt.Errorf("%w: section %d is not finite", ErrDerivation, i)
		}
	}

	return sections, nil
}

// pool tracks which root groups are still unassigned. Groups stay in input
// order, so a strict less-than scan resolves ties to the lowest index.
type pool struct {
	groups []polyroot.Group
	used   []bool
}

func newPool(groups []polyroot.Group) *pool {
	return &pool{groups: groups, used: make([]bool, len(groups))}
}

func (p *pool) take(i int) []complex128 {
	p.used[i] = true
	return append([]complex128(nil), p.groups[i].Roots...)
}

func (p *pool) first() int {
	for i := range p.groups {
		if !p.used[i] {
			return i
		}
	}

	return -1
}

func (p *pool) closestToOrigin() int {
	best, bestDist := -1, math.Inf(1)
	for i, g := range p.groups {
		if p.used[i] {
			continue
		}

		if d := cmplx.Abs(g.Lead()); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

// nearest returns the unused group closest to target, optionally limited
// to real singles.
func (p *pool) nearest(target complex128, realOnly bool) int {
	best, bestDist := -1, math.Inf(1)
	for i, g := range p.groups {
		if p.used[i] || (realOnly && !g.IsReal()) {
			continue
		}

		if d := groupDistance(g, target); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

func groupDistance(g polyroot.Group, target complex128) float64 {
	d := math.Inf(1)
	for _, r := range g.Roots {
		d = math.Min(d, cmplx.Abs(r-target))
	}

	return d
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
