package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/cwbudde/algo-zplane/dsp/filter/allpass"
	"github.com/cwbudde/algo-zplane/dsp/zplane"
)

// Extension is appended by SaveFile when missing.
const Extension = ".flt"

// ErrMalformedRecord is returned for records that cannot be loaded.
var ErrMalformedRecord = errors.New("persist: malformed filter record")

// Record is a saved design.
type Record struct {
	Zeros   []complex128
	Poles   []complex128
	AllPass []float64
}

// FromModel captures the points of m.
func FromModel(m *zplane.Model) Record {
	return Record{Zeros: m.Zeros(), Poles: m.Poles()}
}

type wireRecord struct {
	Zeros   *[][]float64 `json:"zeros"`
	Poles   *[][]float64 `json:"poles"`
	AllPass []float64    `json:"all_pass,omitempty"`
}

// Decode reads and validates one record.
func Decode(r io.Reader) (Record, error) {
	var w wireRecord
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	if w.Zeros == nil {
		return Record{}, fmt.Errorf("%w: missing \"zeros\"", ErrMalformedRecord)
	}
	if w.Poles == nil {
		return Record{}, fmt.Errorf("%w: missing \"poles\"", ErrMalformedRecord)
	}

	zeros, err := points("zero", *w.Zeros)
	if err != nil {
		return Record{}, err
	}

	poles, err := points("pole", *w.Poles)
	if err != nil {
		return Record{}, err
	}

	if _, err := allpass.NewChainFrom(w.AllPass); err != nil {
		return Record{}, fmt.Errorf("%w: all_pass: %w", ErrMalformedRecord, err)
	}

	rec := Record{Zeros: zeros, Poles: poles, AllPass: w.AllPass}

	// Reject unstable poles here so a bad file never reaches a model.
	if _, err := zplane.FromPoints(rec.Zeros, rec.Poles); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	return rec, nil
}

func points(kind string, raw [][]float64) ([]complex128, error) {
	out := make([]complex128, len(raw))
	for i, p := range raw {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: %s %d has %d coordinates, want 2", ErrMalformedRecord, kind, i, len(p))
		}
		if math.IsNaN(p[0]) || math.IsInf(p[0], 0) || math.IsNaN(p[1]) || math.IsInf(p[1], 0) {
			return nil, fmt.Errorf("%w: %s %d is not finite", ErrMalformedRecord, kind, i)
		}

		out[i] = complex(p[0], p[1])
	}

	return out, nil
}

// Encode writes rec as indented JSON.
func Encode(w io.Writer, rec Record) error {
	wire := wireRecord{
		Zeros:   pairs(rec.Zeros),
		Poles:   pairs(rec.Poles),
		AllPass: rec.AllPass,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(wire)
}

func pairs(pts []complex128) *[][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = []float64{real(p), imag(p)}
	}

	return &out
}

// LoadInto decodes a record from r and replaces the points of m. On any
// error m is unchanged.
func LoadInto(m *zplane.Model, r io.Reader) (Record, error) {
	rec, err := Decode(r)
	if err != nil {
		return Record{}, err
	}

	if err := m.Replace(rec.Zeros, rec.Poles); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	return rec, nil
}

// LoadFile reads a record from path.
func LoadFile(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, fmt.Errorf("persist: %w", err)
	}
	defer f.Close()

	rec, err := Decode(f)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}

	return rec, nil
}

// SaveFile writes rec to path, adding Extension if missing, and returns
// the path written.
func SaveFile(path string, rec Record) (string, error) {
	if !strings.HasSuffix(path, Extension) {
		path += Extension
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("persist: %w", err)
	}

	if err := Encode(f, rec); err != nil {
		f.Close()
		return "", fmt.Errorf("persist: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("persist: %w", err)
	}

	return path, nil
}
