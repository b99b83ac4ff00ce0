package stream

import (
	"log/slog"

	"github.com/cwbudde/algo-zplane/dsp/filter/allpass"
	"github.com/cwbudde/algo-zplane/dsp/filter/realize"
)

const (
	// DefaultRate is the tick rate in samples per second.
	DefaultRate = 50.0
	// secondsBuffered is how many seconds of samples the FIFOs hold.
	secondsBuffered = 10
)

type config struct {
	capacity  int
	structure realize.Structure
	allPass   *allpass.Chain
	allPassOn bool
	limiter   Limiter
	logger    *slog.Logger
	rate      float64
}

func defaultConfig() config {
	return config{
		structure: realize.DirectForm,
		limiter:   NoLimit,
		rate:      DefaultRate,
	}
}

// Option configures a Processor.
type Option func(*config)

// WithCapacity sets the FIFO capacity. The default is ten seconds at the
// configured rate.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithStructure selects the initial realization structure.
func WithStructure(s realize.Structure) Option {
	return func(c *config) { c.structure = s }
}

// WithAllPass installs an all-pass chain and whether it starts enabled.
func WithAllPass(chain *allpass.Chain, enabled bool) Option {
	return func(c *config) {
		if chain != nil {
			c.allPass = chain
		}
		c.allPassOn = enabled
	}
}

// WithLimiter sets the output limiting policy.
func WithLimiter(l Limiter) Option {
	return func(c *config) {
		if l != nil {
			c.limiter = l
		}
	}
}

// WithLogger sets the logger for derivation and state events.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRate sets the nominal tick rate in samples per second.
func WithRate(rate float64) Option {
	return func(c *config) {
		if rate > 0 {
			c.rate = rate
		}
	}
}

func capacityForRate(rate float64) int {
	return max(int(rate*secondsBuffered), 1)
}
