package zplane

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

var (
	// ErrUnstableFilter is returned when a pole would lie on or outside the
	// unit circle.
	ErrUnstableFilter = errors.New("zplane: pole on or outside the unit circle")
	// ErrInvalidPoint is returned for non-finite coordinates.
	ErrInvalidPoint = errors.New("zplane: invalid point")
	// ErrIndexOutOfRange is returned when a point index does not exist.
	ErrIndexOutOfRange = errors.New("zplane: point index out of range")
	// ErrUnknownKind is returned for a Kind other than Zero or Pole.
	ErrUnknownKind = errors.New("zplane: unknown point kind")
)

// realAxisTol is the imaginary magnitude below which a point is considered
// to lie on the real axis and gets no mirror.
const realAxisTol = 1e-12

// Kind selects the zero or the pole sequence.
type Kind int

const (
	Zero Kind = iota
	Pole
)

// String returns "zero" or "pole".
func (k Kind) String() string {
	switch k {
	case Zero:
		return "zero"
	case Pole:
		return "pole"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "zero" or "pole".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "zero", "zeros":
		return Zero, nil
	case "pole", "poles":
		return Pole, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

func (k Kind) valid() bool { return k == Zero || k == Pole }

// Model is the ordered zero and pole collection of one filter design.
// The zero value is an empty model ready for use.
type Model struct {
	points   [2][]complex128
	links    [2]map[int]int
	revision uint64
}

// New returns an empty model.
func New() *Model {
	return &Model{}
}

// FromPoints builds a model from existing point sets. Exact conjugate pairs
// are linked.
func FromPoints(zeros, poles []complex128) (*Model, error) {
	m := New()
	if err := m.Replace(zeros, poles); err != nil {
		return nil, err
	}

	return m, nil
}

// Revision increases by one on every successful mutation.
func (m *Model) Revision() uint64 { return m.revision }

// Zeros returns a copy of the zero sequence.
func (m *Model) Zeros() []complex128 { return clonePoints(m.points[Zero]) }

// Poles returns a copy of the pole sequence.
func (m *Model) Poles() []complex128 { return clonePoints(m.points[Pole]) }

// Len returns the number of points of the given kind.
func (m *Model) Len(kind Kind) int {
	if !kind.valid() {
		return 0
	}

	return len(m.points[kind])
}

// Point returns the point at index i.
func (m *Model) Point(kind Kind, i int) (complex128, error) {
	if err := m.checkIndex(kind, i); err != nil {
		return 0, err
	}

	return m.points[kind][i], nil
}

// Mirror returns the index linked to i, if any.
func (m *Model) Mirror(kind Kind, i int) (int, bool) {
	if !kind.valid() {
		return 0, false
	}

	j, ok := m.links[kind][i]
	return j, ok
}

// AddPoint appends (x, y) to the sequence of the given kind and returns its
// index. With mirror set and y off the real axis the conjugate (x, -y) is
// appended right after it and both are linked.
func (m *Model) AddPoint(kind Kind, x, y float64, mirror bool) (int, error) {
	if !kind.valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}

	p := complex(x, y)
	if err := checkPoint(kind, p); err != nil {
		return 0, err
	}

	idx := len(m.points[kind])
	m.points[kind] = append(m.points[kind], p)

	if mirror && math.Abs(y) > realAxisTol {
		m.points[kind] = append(m.points[kind], cmplx.Conj(p))
		m.link(kind, idx, idx+1)
	}

	m.revision++
	return idx, nil
}

// MovePoint moves point i to (x, y). A linked mirror moves to (x, -y).
func (m *Model) MovePoint(kind Kind, i int, x, y float64) error {
	if err := m.checkIndex(kind, i); err != nil {
		return err
	}

	p := complex(x, y)
	if err := checkPoint(kind, p); err != nil {
		return err
	}

	m.points[kind][i] = p
	if j, ok := m.links[kind][i]; ok {
		m.points[kind][j] = cmplx.Conj(p)
	}

	m.revision++
	return nil
}

// Unlink dissolves the conjugate link of point i on both sides. Points stay
// where they are.
func (m *Model) Unlink(kind Kind, i int) error {
	if err := m.checkIndex(kind, i); err != nil {
		return err
	}

	if j, ok := m.links[kind][i]; ok {
		delete(m.links[kind], i)
		delete(m.links[kind], j)
	}

	return nil
}

// DeletePoint removes point i and, if linked, its mirror.
func (m *Model) DeletePoint(kind Kind, i int) error {
	if err := m.checkIndex(kind, i); err != nil {
		return err
	}

	if j, ok := m.links[kind][i]; ok {
		hi, lo := max(i, j), min(i, j)
		m.remove(kind, hi)
		m.remove(kind, lo)
	} else {
		m.remove(kind, i)
	}

	m.revision++
	return nil
}

// Swap exchanges the zero and pole sequences including their links. The
// result is not validated; call Validate when former zeros may now be
// unstable poles.
func (m *Model) Swap() {
	m.points[Zero], m.points[Pole] = m.points[Pole], m.points[Zero]
	m.links[Zero], m.links[Pole] = m.links[Pole], m.links[Zero]
	m.revision++
}

// Clear removes every point of the given kind.
func (m *Model) Clear(kind Kind) {
	if !kind.valid() {
		return
	}

	m.points[kind] = nil
	m.links[kind] = nil
	m.revision++
}

// ClearAll removes all zeros and poles.
func (m *Model) ClearAll() {
	m.points = [2][]complex128{}
	m.links = [2]map[int]int{}
	m.revision++
}

// Validate reports ErrUnstableFilter if any pole lies on or outside the
// unit circle, or ErrInvalidPoint for non-finite coordinates.
func (m *Model) Validate() error {
	for _, kind := range []Kind{Zero, Pole} {
		for i, p := range m.points[kind] {
			if err := checkPoint(kind, p); err != nil {
				return fmt.Errorf("%s %d: %w", kind, i, err)
			}
		}
	}

	return nil
}

// Replace swaps in new point sets atomically. The sets are validated first;
// on error the model is unchanged. Exact conjugate pairs are linked.
func (m *Model) Replace(zeros, poles []complex128) error {
	for i, z := range zeros {
		if err := checkPoint(Zero, z); err != nil {
			return fmt.Errorf("zero %d: %w", i, err)
		}
	}

	for i, p := range poles {
		if err := checkPoint(Pole, p); err != nil {
			return fmt.Errorf("pole %d: %w", i, err)
		}
	}

	m.points = [2][]complex128{clonePoints(zeros), clonePoints(poles)}
	m.links = [2]map[int]int{}
	m.linkConjugates(Zero)
	m.linkConjugates(Pole)
	m.revision++

	return nil
}

func (m *Model) checkIndex(kind Kind, i int) error {
	if !kind.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}

	if i < 0 || i >= len(m.points[kind]) {
		return fmt.Errorf("%w: %s %d of %d", ErrIndexOutOfRange, kind, i, len(m.points[kind]))
	}

	return nil
}

func (m *Model) link(kind Kind, i, j int) {
	if m.links[kind] == nil {
		m.links[kind] = make(map[int]int)
	}

	m.links[kind][i] = j
	m.links[kind][j] = i
}

// remove deletes index idx and shifts the link table down.
func (m *Model) remove(kind Kind, idx int) {
	pts := m.points[kind]
	m.points[kind] = append(pts[:idx:idx], pts[idx+1:]...)

	if len(m.links[kind]) == 0 {
		return
	}

	shifted := make(map[int]int, len(m.links[kind]))
	for a, b := range m.links[kind] {
		if a == idx || b == idx {
			continue
		}

		shifted[shift(a, idx)] = shift(b, idx)
	}

	m.links[kind] = shifted
}

func shift(i, removed int) int {
	if i > removed {
		return i - 1
	}

	return i
}

// linkConjugates pairs each point above the real axis with the first
// unlinked point that is its exact conjugate.
func (m *Model) linkConjugates(kind Kind) {
	pts := m.points[kind]
	for i, p := range pts {
		if imag(p) <= realAxisTol {
			continue
		}

		if _, ok := m.links[kind][i]; ok {
			continue
		}

		for j, q := range pts {
			if _, ok := m.links[kind][j]; ok || j == i {
				continue
			}

			if q == cmplx.Conj(p) {
				m.link(kind, i, j)
				break
			}
		}
	}
}

func checkPoint(kind Kind, p complex128) error {
	if cmplx.IsNaN(p) || cmplx.IsInf(p) {
		return fmt.Errorf("%w: %v", ErrInvalidPoint, p)
	}

	if kind == Pole {
		if r := cmplx.Abs(p); r >= 1 {
			return fmt.Errorf("%w: |%v| = %.6g", ErrUnstableFilter, p, r)
		}
	}

	return nil
}

func clonePoints(pts []complex128) []complex128 {
	if len(pts) == 0 {
		return nil
	}

	out := make([]complex128, len(pts))
	copy(out, pts)
	return out
}
