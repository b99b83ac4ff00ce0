package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// ErrUnknownKind is returned by ParseKind.
var ErrUnknownKind = errors.New("signal: unknown kind")

// Kind selects the waveform.
type Kind int

const (
	// Sine is a 1 Hz sine by default.
	Sine Kind = iota
	// Square is sign(sin) at 0.5 Hz by default.
	Square
	// Noise is uniform in [-1, 1).
	Noise
)

// DefaultStep is the sampling period in seconds.
const DefaultStep = 0.02

var kindNames = [...]string{"sine", "square", "noise"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts "sine", "square" and "noise".
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if s == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Generator produces one sample per Next call.
type Generator struct {
	kind      Kind
	step      float64
	freq      float64
	amplitude float64
	seed      int64
	n         int
	rng       *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the noise seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithStep sets the time step between samples in seconds.
func WithStep(seconds float64) Option {
	return func(g *Generator) {
		if seconds > 0 {
			g.step = seconds
		}
	}
}

// WithFrequency overrides the default waveform frequency in Hz.
func WithFrequency(hz float64) Option {
	return func(g *Generator) {
		if hz > 0 {
			g.freq = hz
		}
	}
}

// WithAmplitude scales the output.
func WithAmplitude(a float64) Option {
	return func(g *Generator) { g.amplitude = a }
}

// NewGenerator returns a generator for kind.
func NewGenerator(kind Kind, opts ...Option) (*Generator, error) {
	g := &Generator{kind: kind, step: DefaultStep, amplitude: 1, seed: 1}

	switch kind {
	case Sine:
		g.freq = 1
	case Square:
		g.freq = 0.5
	case Noise:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	g.rng = rand.New(rand.NewSource(g.seed))
	return g, nil
}

// Kind returns the waveform kind.
func (g *Generator) Kind() Kind { return g.kind }

// Next returns the next sample.
func (g *Generator) Next() float64 {
	t := float64(g.n) * g.step
	g.n++

	switch g.kind {
	case Sine:
		return g.amplitude * math.Sin(2*math.Pi*g.freq*t)
	case Square:
		s := math.Sin(2 * math.Pi * g.freq * t)
		switch {
		case s > 0:
			return g.amplitude
		case s < 0:
			return -g.amplitude
		default:
			return 0
		}
	default:
		return g.amplitude * (g.rng.Float64()*2 - 1)
	}
}

// Block returns the next n samples.
func (g *Generator) Block(n int) []float64 {
	out := make([]float64, max(n, 0))
	for i := range out {
		out[i] = g.Next()
	}
	return out
}

// Reset restarts time and reseeds the noise source.
func (g *Generator) Reset() {
	g.n = 0
	g.rng = rand.New(rand.NewSource(g.seed))
}
