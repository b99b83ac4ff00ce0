package zplane

import (
	"errors"
	"fmt"
)

// ErrUnknownPreset is returned by LoadPreset for an unregistered name.
var ErrUnknownPreset = errors.New("zplane: unknown preset")

// Preset is a named starting design.
type Preset struct {
	Name  string
	Zeros []complex128
	Poles []complex128
}

// presets lists the built-in second-order designs in menu order.
var presets = []Preset{
	{
		Name:  "Butterworth LPF",
		Poles: []complex128{complex(-0.7071, 0.7071), complex(-0.7071, -0.7071)},
	},
	{
		Name:  "Butterworth HPF",
		Poles: []complex128{complex(0.7071, 0.7071), complex(0.7071, -0.7071)},
	},
	{
		Name:  "Chebyshev LPF",
		Poles: []complex128{complex(-0.5176, 0.8550), complex(-0.5176, -0.8550)},
	},
	{
		Name:  "Chebyshev HPF",
		Poles: []complex128{complex(0.5176, 0.8550), complex(0.5176, -0.8550)},
	},
	{
		Name:  "Elliptic LPF",
		Zeros: []complex128{complex(0, 0.9), complex(0, -0.9)},
		Poles: []complex128{complex(-0.6986, 0.5375), complex(-0.6986, -0.5375)},
	},
	{
		Name:  "Elliptic HPF",
		Zeros: []complex128{0, 0},
		Poles: []complex128{complex(0.6986, 0.5375), complex(0.6986, -0.5375)},
	},
	{
		Name:  "Bessel LPF",
		Poles: []complex128{complex(-0.866, 0.5), complex(-0.866, -0.5)},
	},
	{
		Name:  "Bessel HPF",
		Zeros: []complex128{0, 0},
		Poles: []complex128{complex(-0.866, 0.5), complex(-0.866, -0.5)},
	},
	{
		Name:  "Gaussian LPF",
		Poles: []complex128{complex(-0.707, 0)},
	},
	{
		Name:  "Notch Filter",
		Zeros: []complex128{complex(1, 0), complex(-1, 0)},
		Poles: []complex128{complex(0.95, 0.1), complex(0.95, -0.1)},
	},
}

// Presets returns the built-in preset names in menu order.
func Presets() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}

	return names
}

// LookupPreset returns a copy of the named preset.
func LookupPreset(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return Preset{Name: p.Name, Zeros: clonePoints(p.Zeros), Poles: clonePoints(p.Poles)}, nil
		}
	}

	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// LoadPreset replaces the model contents with the named preset.
func (m *Model) LoadPreset(name string) error {
	p, err := LookupPreset(name)
	if err != nil {
		return err
	}

	return m.Replace(p.Zeros, p.Poles)
}
