package realize

import (
	"fmt"

	"github.com/cwbudde/algo-zplane/dsp/filter/biquad"
	"github.com/cwbudde/algo-zplane/dsp/filter/zpk"
)

// Design is the coefficient set of one realization. Transfer is always
// filled; Sections only for the Cascade structure.
type Design struct {
	Structure Structure
	Transfer  zpk.TransferFunction
	Sections  []biquad.Coefficients
	// Bypass is set when the design had neither zeros nor poles.
	Bypass bool
}

// Derive computes the coefficients of zeros and poles for structure. On a
// derivation error the returned design is a usable passthrough and the
// error matches zpk.ErrDerivation.
func Derive(structure Structure, zeros, poles []complex128) (Design, error) {
	switch structure {
	case DirectForm, Cascade:
	default:
		return Design{Structure: DirectForm, Transfer: zpk.Identity(), Bypass: true},
			fmt.Errorf("%w: %d", ErrUnknownStructure, int(structure))
	}

	d := Design{Structure: structure, Bypass: len(zeros) == 0 && len(poles) == 0}

	tf, err := zpk.DirectForm(zeros, poles)
	d.Transfer = tf
	if err != nil {
		d.Bypass = true
		if structure == Cascade {
			d.Sections = []biquad.Coefficients{biquad.Passthrough()}
		}
		return d, err
	}

	if structure == Cascade {
		d.Sections, err = zpk.Cascade(zeros, poles)
		if err != nil {
			d.Bypass = true
			return d, err
		}
	}

	return d, nil
}

// FromTransfer wraps existing direct-form coefficients.
func FromTransfer(tf zpk.TransferFunction) Design {
	return Design{Structure: DirectForm, Transfer: tf.Clone(), Bypass: tf.IsIdentity()}
}

// FromSections wraps existing cascade sections.
func FromSections(sections []biquad.Coefficients) Design {
	d := Design{
		Structure: Cascade,
		Transfer:  zpk.Identity(),
		Sections:  append([]biquad.Coefficients(nil), sections...),
	}

	d.Transfer = multiply(d.Sections)
	d.Bypass = len(sections) == 1 && sections[0] == biquad.Passthrough()

	return d
}

// Realize returns a fresh, zeroed realization of d.
func (d Design) Realize() Realization {
	if d.Bypass {
		return Passthrough{structure: d.Structure}
	}

	if d.Structure == Cascade {
		return NewCascaded(d.Sections)
	}

	return NewDirect(d.Transfer)
}

// Rows returns the sections as [b0, b1, b2, 1, a1, a2] rows.
func (d Design) Rows() [][6]float64 {
	rows := make([][6]float64, len(d.Sections))
	for i, s := range d.Sections {
		rows[i] = s.Row()
	}

	return rows
}

// New derives and realizes in one step. A derivation error is returned
// together with a passthrough realization.
func New(structure Structure, zeros, poles []complex128) (Realization, error) {
	d, err := Derive(structure, zeros, poles)
	return d.Realize(), err
}

// multiply convolves the sections back into one (b, a) pair.
func multiply(sections []biquad.Coefficients) zpk.TransferFunction {
	b := []float64{1}
	a := []float64{1}
	for _, s := range sections {
		b = convolve(b, []float64{s.B0, s.B1, s.B2})
		a = convolve(a, []float64{1, s.A1, s.A2})
	}

	return zpk.TransferFunction{B: b, A: a}
}

func convolve(x, h []float64) []float64 {
	out := make([]float64, len(x)+len(h)-1)
	for i, xv := range x {
		for j, hv := range h {
			out[i+j] += xv * hv
		}
	}

	return out
}
