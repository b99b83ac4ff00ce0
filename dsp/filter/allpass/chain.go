package allpass

import (
	"errors"
	"fmt"
)

// ErrStageIndex is returned for a stage index that does not exist.
var ErrStageIndex = errors.New("allpass: stage index out of range")

// DefaultCoefficients seed a new Chain.
var DefaultCoefficients = []float64{0.5, 0.7, 0.9, 0.95, 0.98}

// Chain is an ordered library of all-pass stages with an enabled flag
// each. The zero value is an empty chain.
type Chain struct {
	stages  []*Stage
	enabled []bool
}

// NewChain returns a chain holding DefaultCoefficients, all disabled.
func NewChain() *Chain {
	c, _ := NewChainFrom(DefaultCoefficients)
	return c
}

// NewChainFrom builds a chain from the given coefficients, all disabled.
func NewChainFrom(coeffs []float64) (*Chain, error) {
	c := &Chain{}
	for _, a := range coeffs {
		if _, err := c.Add(a); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Add appends a disabled stage and returns its index.
func (c *Chain) Add(a float64) (int, error) {
	st, err := NewStage(a)
	if err != nil {
		return 0, err
	}

	c.stages = append(c.stages, st)
	c.enabled = append(c.enabled, false)
	return len(c.stages) - 1, nil
}

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }

// Stage returns stage i.
func (c *Chain) Stage(i int) (*Stage, error) {
	if err := c.check(i); err != nil {
		return nil, err
	}

	return c.stages[i], nil
}

// Enable switches stage i on.
func (c *Chain) Enable(i int) error { return c.SetEnabled(i, true) }

// Disable switches stage i off. Its state is kept.
func (c *Chain) Disable(i int) error { return c.SetEnabled(i, false) }

// SetEnabled sets the enabled flag of stage i.
func (c *Chain) SetEnabled(i int, on bool) error {
	if err := c.check(i); err != nil {
		return err
	}

	c.enabled[i] = on
	return nil
}

// Enabled reports whether stage i is on. Unknown indices report false.
func (c *Chain) Enabled(i int) bool {
	return i >= 0 && i < len(c.enabled) && c.enabled[i]
}

// EnabledIndices lists the active stages in processing order.
func (c *Chain) EnabledIndices() []int {
	var out []int
	for i, on := range c.enabled {
		if on {
			out = append(out, i)
		}
	}

	return out
}

// Active reports whether any stage is enabled.
func (c *Chain) Active() bool {
	for _, on := range c.enabled {
		if on {
			return true
		}
	}

	return false
}

// Process folds x through every enabled stage in order.
func (c *Chain) Process(x float64) float64 {
	for i, st := range c.stages {
		if c.enabled[i] {
			x = st.Step(x)
		}
	}

	return x
}

// ProcessBlock filters buf in place.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range buf {
		buf[i] = c.Process(buf[i])
	}
}

// Reset clears the state of every stage, enabled or not.
func (c *Chain) Reset() {
	for _, st := range c.stages {
		st.Reset()
	}
}

// Coefficients returns the stage coefficients in order.
func (c *Chain) Coefficients() []float64 {
	out := make([]float64, len(c.stages))
	for i, st := range c.stages {
		out[i] = st.a
	}

	return out
}

// Names returns the display labels of all stages.
func (c *Chain) Names() []string {
	out := make([]string, len(c.stages))
	for i, st := range c.stages {
		out[i] = st.Name()
	}

	return out
}

// Response returns the product of the enabled stage responses at w.
func (c *Chain) Response(w float64) complex128 {
	h := complex(1, 0)
	for i, st := range c.stages {
		if c.enabled[i] {
			h *= st.Response(w)
		}
	}

	return h
}

// GroupDelay returns the summed group delay of the enabled stages at w.
func (c *Chain) GroupDelay(w float64) float64 {
	d := 0.0
	for i, st := range c.stages {
		if c.enabled[i] {
			d += st.GroupDelay(w)
		}
	}

	return d
}

func (c *Chain) check(i int) error {
	if i < 0 || i >= len(c.stages) {
		return fmt.Errorf("%w: %d of %d", ErrStageIndex, i, len(c.stages))
	}

	return nil
}
