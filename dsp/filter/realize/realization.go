package realize

import (
	"github.com/cwbudde/algo-zplane/dsp/filter/biquad"
	"github.com/cwbudde/algo-zplane/dsp/filter/zpk"
)

// Realization is a stateful single-sample filter.
type Realization interface {
	// Step filters one sample and advances the internal state.
	Step(x float64) float64
	// Reset zeroes the state and keeps the coefficients.
	Reset()
	// Order returns the length of the delay line.
	Order() int
	// Structure reports which structure the realization implements.
	Structure() Structure
}

// Direct is a canonical Direct Form II filter over (b, a) with a[0] == 1.
type Direct struct {
	b, a  []float64
	state []float64
}

// NewDirect returns a zeroed realization of tf. The coefficients are copied.
func NewDirect(tf zpk.TransferFunction) *Direct {
	tf = tf.Clone()
	if len(tf.B) == 0 {
		tf.B = []float64{0}
	}
	if len(tf.A) == 0 {
		tf.A = []float64{1}
	}

	return &Direct{
		b:     tf.B,
		a:     tf.A,
		state: make([]float64, max(len(tf.B), len(tf.A))-1),
	}
}

// Step computes
//
//	w = x - sum(a[i] * s[i-1]),  i = 1..len(a)-1
//	y = b[0]*w + sum(b[i] * s[i-1]),  i = 1..len(b)-1
//
// and shifts w into the delay line.
func (d *Direct) Step(x float64) float64 {
	w := x
	for i := 1; i < len(d.a); i++ {
		w -= d.a[i] * d.state[i-1]
	}

	y := d.b[0] * w
	for i := 1; i < len(d.b); i++ {
		y += d.b[i] * d.state[i-1]
	}

	if n := len(d.state); n > 0 {
		copy(d.state[1:], d.state[:n-1])
		d.state[0] = w
	}

	return y
}

// Reset clears the delay line.
func (d *Direct) Reset() { clear(d.state) }

// Order returns the delay-line length.
func (d *Direct) Order() int { return len(d.state) }

// Structure returns DirectForm.
func (d *Direct) Structure() Structure { return DirectForm }

// Transfer returns a copy of the coefficients.
func (d *Direct) Transfer() zpk.TransferFunction {
	return zpk.TransferFunction{B: d.b, A: d.a}.Clone()
}

// State returns a copy of the delay line, newest first.
func (d *Direct) State() []float64 {
	return append([]float64(nil), d.state...)
}

// Cascaded runs second-order sections in series.
type Cascaded struct {
	chain *biquad.Chain
}

// NewCascaded returns a zeroed cascade of sections.
func NewCascaded(sections []biquad.Coefficients) *Cascaded {
	if len(sections) == 0 {
		sections = []biquad.Coefficients{biquad.Passthrough()}
	}

	return &Cascaded{chain: biquad.NewChain(sections)}
}

// Step feeds x through every section in order.
func (c *Cascaded) Step(x float64) float64 { return c.chain.ProcessSample(x) }

// Reset zeroes every section state.
func (c *Cascaded) Reset() { c.chain.Reset() }

// Order returns the number of delay elements in use.
func (c *Cascaded) Order() int { return c.chain.Order() }

// Structure returns Cascade.
func (c *Cascaded) Structure() Structure { return Cascade }

// Sections returns a copy of the section coefficients.
func (c *Cascaded) Sections() []biquad.Coefficients { return c.chain.Coefficients() }

// State returns the (rows x 2) state matrix.
func (c *Cascaded) State() [][2]float64 { return c.chain.State() }

// Passthrough returns every input sample unchanged.
type Passthrough struct {
	structure Structure
}

// Step returns x.
func (Passthrough) Step(x float64) float64 { return x }

// Reset does nothing.
func (Passthrough) Reset() {}

// Order returns 0.
func (Passthrough) Order() int { return 0 }

// Structure returns the structure that was requested for the design.
func (p Passthrough) Structure() Structure { return p.structure }

// ImpulseResponse resets r, records n samples of its impulse response and
// resets it again.
func ImpulseResponse(r Realization, n int) []float64 {
	if n <= 0 {
		return nil
	}

	r.Reset()
	out := make([]float64, n)
	out[0] = r.Step(1)
	for i := 1; i < n; i++ {
		out[i] = r.Step(0)
	}
	r.Reset()

	return out
}

// Process filters src into dst sample by sample; dst and src may alias.
func Process(r Realization, dst, src []float64) {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = r.Step(src[i])
	}
}
