package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-zplane/dsp/filter/biquad"
	"github.com/cwbudde/algo-zplane/dsp/filter/realize"
	"github.com/cwbudde/algo-zplane/dsp/filter/zpk"
)

// ErrUnknownStructure is returned by DecodeExport for an unknown "type".
var ErrUnknownStructure = errors.New("persist: unknown export type")

// ErrMalformedExport is returned for exports whose coefficients do not
// match their type.
var ErrMalformedExport = errors.New("persist: malformed coefficient export")

type directCoefficients struct {
	B []float64 `json:"b"`
	A []float64 `json:"a"`
}

type wireExport struct {
	Type         string          `json:"type"`
	Coefficients json.RawMessage `json:"coefficients"`
}

// Export writes the coefficients of d as JSON.
func Export(w io.Writer, d realize.Design) error {
	var coeffs any
	switch d.Structure {
	case realize.DirectForm:
		coeffs = directCoefficients{B: d.Transfer.B, A: d.Transfer.A}
	case realize.Cascade:
		coeffs = d.Rows()
	default:
		return fmt.Errorf("%w: %v", ErrUnknownStructure, d.Structure)
	}

	raw, err := json.Marshal(coeffs)
	if err != nil {
		return fmt.Errorf("persist: %w", err)
	}

	return json.NewEncoder(w).Encode(wireExport{Type: d.Structure.String(), Coefficients: raw})
}

// DecodeExport reads an export back into a design. Direct coefficients
// are normalised so that a[0] == 1.
func DecodeExport(r io.Reader) (realize.Design, error) {
	var w wireExport
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return realize.Design{}, fmt.Errorf("%w: %w", ErrMalformedExport, err)
	}

	s, err := realize.ParseStructure(w.Type)
	if err != nil {
		return realize.Design{}, fmt.Errorf("%w: %q", ErrUnknownStructure, w.Type)
	}

	if s == realize.Cascade {
		return decodeSections(w.Coefficients)
	}

	return decodeDirect(w.Coefficients)
}

func decodeDirect(raw json.RawMessage) (realize.Design, error) {
	var c directCoefficients
	if err := json.Unmarshal(raw, &c); err != nil {
		return realize.Design{}, fmt.Errorf("%w: %w", ErrMalformedExport, err)
	}

	if len(c.B) == 0 || len(c.A) == 0 || c.A[0] == 0 {
		return realize.Design{}, fmt.Errorf("%w: need non-empty b and a with a[0] != 0", ErrMalformedExport)
	}

	a0 := c.A[0]
	for i := range c.B {
		c.B[i] /= a0
	}
	for i := range c.A {
		c.A[i] /= a0
	}

	return realize.FromTransfer(zpk.TransferFunction{B: c.B, A: c.A}), nil
}

func decodeSections(raw json.RawMessage) (realize.Design, error) {
	var rows [][]float64
	if err := json.Unmarshal(raw, &rows); err != nil {
		return realize.Design{}, fmt.Errorf("%w: %w", ErrMalformedExport, err)
	}

	if len(rows) == 0 {
		return realize.Design{}, fmt.Errorf("%w: no sections", ErrMalformedExport)
	}

	sections := make([]biquad.Coefficients, len(rows))
	for i, row := range rows {
		if len(row) != 6 {
			return realize.Design{}, fmt.Errorf("%w: section %d has %d values, want 6", ErrMalformedExport, i, len(row))
		}

		c, err := biquad.FromRow([6]float64(row))
		if err != nil {
			return realize.Design{}, fmt.Errorf("%w: section %d: %w", ErrMalformedExport, i, err)
		}
		sections[i] = c
	}

	return realize.FromSections(sections), nil
}
