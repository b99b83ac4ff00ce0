package stream

import (
	"fmt"
	"log/slog"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-zplane/dsp/buffer"
	"github.com/cwbudde/algo-zplane/dsp/filter/allpass"
	"github.com/cwbudde/algo-zplane/dsp/filter/realize"
	"github.com/cwbudde/algo-zplane/dsp/filter/zpk"
	"github.com/cwbudde/algo-zplane/dsp/zplane"
)

// State is the processing state observed at the last tick.
type State int

const (
	// Idle means the last tick found no unprocessed input.
	Idle State = iota
	// Processing means the last tick consumed a sample.
	Processing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Processing:
		return "processing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Sample is the result of one tick.
type Sample struct {
	Input     float64
	Filtered  float64
	Corrected float64
}

// Processor runs a pole/zero model over buffered input one sample per
// tick.
type Processor struct {
	model     *zplane.Model
	chain     *allpass.Chain
	allPassOn bool
	structure realize.Structure
	limiter   Limiter
	logger    *slog.Logger
	rate      float64

	design   realize.Design
	filter   realize.Realization
	revision uint64
	current  bool
	lastErr  error
	state    State

	input     *buffer.Ring
	filtered  *buffer.Ring
	corrected *buffer.Ring
	scratch   *buffer.Pool
}

// New returns a processor over model. A nil model is replaced by an empty
// one.
func New(model *zplane.Model, opts ...Option) *Processor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if model == nil {
		model = zplane.New()
	}
	if cfg.allPass == nil {
		cfg.allPass = allpass.NewChain()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	if cfg.capacity == 0 {
		cfg.capacity = capacityForRate(cfg.rate)
	}

	return &Processor{
		model:     model,
		chain:     cfg.allPass,
		allPassOn: cfg.allPassOn,
		structure: cfg.structure,
		limiter:   cfg.limiter,
		logger:    cfg.logger,
		rate:      cfg.rate,
		input:     buffer.NewRing(cfg.capacity),
		filtered:  buffer.NewRing(cfg.capacity),
		corrected: buffer.NewRing(cfg.capacity),
		scratch:   buffer.NewPool(),
	}
}

// Model returns the pole/zero model the processor follows.
func (p *Processor) Model() *zplane.Model { return p.model }

// AllPass returns the all-pass chain.
func (p *Processor) AllPass() *allpass.Chain { return p.chain }

// State returns the state of the last tick.
func (p *Processor) State() State { return p.state }

// Structure returns the selected structure.
func (p *Processor) Structure() realize.Structure { return p.structure }

// Rate returns the nominal tick rate in samples per second.
func (p *Processor) Rate() float64 { return p.rate }

// Capacity returns the FIFO capacity.
func (p *Processor) Capacity() int { return p.input.Cap() }

// LastError returns the error of the most recent derivation, or nil.
func (p *Processor) LastError() error { return p.lastErr }

// Pending returns the number of buffered inputs not yet processed.
func (p *Processor) Pending() int { return p.input.Len() - p.filtered.Len() }

// Push appends an input sample. If the input FIFO is full its oldest
// sample is evicted together with the outputs aligned to it.
func (p *Processor) Push(x float64) {
	if _, evicted := p.input.Push(x); evicted && p.filtered.Len() > 0 {
		p.filtered.DropOldest(1)
		p.corrected.DropOldest(1)
	}
}

// PushBlock appends every sample of xs.
func (p *Processor) PushBlock(xs []float64) {
	for _, x := range xs {
		p.Push(x)
	}
}

// Tick processes the oldest unprocessed input sample. It reports false and
// goes Idle when nothing is pending.
func (p *Processor) Tick() (Sample, bool) {
	p.reconcile()

	if p.Pending() <= 0 {
		p.setState(Idle)
		return Sample{}, false
	}

	p.setState(Processing)
	p.refresh()

	x := p.input.At(p.filtered.Len())
	y := p.limiter.Limit(p.filter.Step(x))

	z := y
	if p.allPassOn {
		z = p.chain.Process(y)
	}

	p.filtered.Push(y)
	p.corrected.Push(z)

	return Sample{Input: x, Filtered: y, Corrected: z}, true
}

// Drain ticks until no input is pending and returns the number of samples
// processed.
func (p *Processor) Drain() int {
	n := 0
	for {
		if _, ok := p.Tick(); !ok {
			return n
		}
		n++
	}
}

// Render filters xs offline through a fresh copy of the current design
// and all-pass setup, scales the result by gain and returns it. The
// streaming state is not touched.
func (p *Processor) Render(xs []float64, gain float64) []float64 {
	p.refresh()

	filter := p.design.Realize()
	var chain *allpass.Chain
	if p.allPassOn {
		chain = p.cloneChain()
	}

	out := p.scratch.Get(len(xs))
	defer p.scratch.Put(out)

	for i, x := range xs {
		y := p.limiter.Limit(filter.Step(x))
		if chain != nil {
			y = chain.Process(y)
		}
		out.Data[i] = y
	}

	dst := make([]float64, len(xs))
	vecmath.ScaleBlock(dst, out.Data, gain)
	return dst
}

// SetStructure switches the realization structure. The change takes
// effect, with zeroed state, on the next tick.
func (p *Processor) SetStructure(s realize.Structure) error {
	switch s {
	case realize.DirectForm, realize.Cascade:
	default:
		return fmt.Errorf("%w: %d", realize.ErrUnknownStructure, int(s))
	}

	p.structure = s
	return nil
}

// SetAllPassEnabled switches the whole all-pass chain on or off.
func (p *Processor) SetAllPassEnabled(on bool) { p.allPassOn = on }

// AllPassEnabled reports whether the all-pass chain runs.
func (p *Processor) AllPassEnabled() bool { return p.allPassOn }

// EnableAllPassStage switches stage i on.
func (p *Processor) EnableAllPassStage(i int) error { return p.chain.Enable(i) }

// DisableAllPassStage switches stage i off; its state is kept.
func (p *Processor) DisableAllPassStage(i int) error { return p.chain.Disable(i) }

// AddAllPassStage appends a disabled stage with coefficient a.
func (p *Processor) AddAllPassStage(a float64) (int, error) { return p.chain.Add(a) }

// SetLimiter replaces the output limiting policy.
func (p *Processor) SetLimiter(l Limiter) {
	if l == nil {
		l = NoLimit
	}
	p.limiter = l
}

// Limiter returns the output limiting policy.
func (p *Processor) Limiter() Limiter { return p.limiter }

// SetCapacity resizes the FIFOs. When shrinking, the oldest inputs are
// dropped together with their aligned outputs.
func (p *Processor) SetCapacity(n int) {
	n = max(n, 1)
	if drop := p.input.Len() - n; drop > 0 {
		p.input.DropOldest(drop)
		p.filtered.DropOldest(drop)
		p.corrected.DropOldest(drop)
	}

	p.input.SetCapacity(n)
	p.filtered.SetCapacity(n)
	p.corrected.SetCapacity(n)
}

// SetRate sets the nominal rate and resizes the FIFOs to hold ten
// seconds of samples.
func (p *Processor) SetRate(rate float64) {
	if !(rate > 0) {
		return
	}

	p.rate = rate
	p.SetCapacity(capacityForRate(rate))
}

// Clear empties all FIFOs and zeroes the filter and all-pass state.
func (p *Processor) Clear() {
	p.input.Clear()
	p.filtered.Clear()
	p.corrected.Clear()
	p.chain.Reset()
	if p.filter != nil {
		p.filter.Reset()
	}
}

// Design returns the coefficients currently in effect, deriving them if
// the model or structure changed.
func (p *Processor) Design() realize.Design {
	p.refresh()
	return p.design
}

// FrequencyResponse evaluates the model response at n points over
// [0, pi]. With the all-pass chain enabled its phase is added.
func (p *Processor) FrequencyResponse(n int) (zpk.FrequencyResponse, error) {
	r, err := zpk.Response(p.model.Zeros(), p.model.Poles(), n)
	if err != nil || !p.allPassOn || !p.chain.Active() {
		return r, err
	}

	ap := make([]float64, n)
	for i, w := range r.Omega {
		ap[i] = cmplx.Phase(p.chain.Response(w))
	}

	for i, v := range zpk.Unwrap(ap) {
		r.PhaseDeg[i] += v * 180 / math.Pi
		r.GroupDelay[i] += p.chain.GroupDelay(r.Omega[i])
	}

	return r, nil
}

// Snapshot is an aligned copy of the processed part of the FIFOs.
type Snapshot struct {
	Input     []float64
	Filtered  []float64
	Corrected []float64
	// Pending counts inputs not yet processed and not included above.
	Pending int
}

// Snapshot returns equal-length copies of the processed input and both
// outputs, oldest first.
func (p *Processor) Snapshot() Snapshot {
	n := p.filtered.Len()
	in := make([]float64, n)
	p.input.CopyTo(in)

	return Snapshot{
		Input:     in,
		Filtered:  p.filtered.Samples(),
		Corrected: p.corrected.Samples(),
		Pending:   p.Pending(),
	}
}

func (p *Processor) refresh() {
	rev := p.model.Revision()
	if p.current && rev == p.revision && p.design.Structure == p.structure {
		return
	}

	d, err := realize.Derive(p.structure, p.model.Zeros(), p.model.Poles())
	p.design = d
	p.filter = d.Realize()
	p.filter.Reset()
	p.revision = rev
	p.current = true
	p.lastErr = err

	if err != nil {
		p.logger.Warn("derivation failed, using passthrough",
			"structure", p.structure, "error", err)
		return
	}

	p.logger.Debug("realization rebuilt",
		"structure", p.structure,
		"order", p.filter.Order(),
		"zeros", p.model.Len(zplane.Zero),
		"poles", p.model.Len(zplane.Pole))
}

// reconcile restores len(output) <= len(input).
func (p *Processor) reconcile() {
	if n := p.input.Len(); p.filtered.Len() > n {
		p.filtered.TrimTo(n)
		p.corrected.TrimTo(n)
	}
}

func (p *Processor) setState(s State) {
	if s == p.state {
		return
	}

	p.logger.Debug("state change", "from", p.state, "to", s)
	p.state = s
}

func (p *Processor) cloneChain() *allpass.Chain {
	c, _ := allpass.NewChainFrom(p.chain.Coefficients())
	for _, i := range p.chain.EnabledIndices() {
		_ = c.Enable(i)
	}

	return c
}
