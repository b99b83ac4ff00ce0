package stream

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownLimiter is returned by ParseLimiter.
var ErrUnknownLimiter = errors.New("stream: unknown limiter")

// Limiter is an output limiting policy applied to the filtered sample
// before the all-pass chain.
type Limiter interface {
	Limit(y float64) float64
	String() string
}

type noLimit struct{}

func (noLimit) Limit(y float64) float64 { return y }
func (noLimit) String() string          { return "none" }

type normalizeUnit struct{}

func (normalizeUnit) Limit(y float64) float64 {
	if math.Abs(y) > 1 {
		return y / math.Abs(y)
	}
	return y
}

func (normalizeUnit) String() string { return "normalize" }

type clamp float64

func (c clamp) Limit(y float64) float64 {
	return math.Max(-float64(c), math.Min(float64(c), y))
}

func (c clamp) String() string { return "clamp:" + strconv.FormatFloat(float64(c), 'g', -1, 64) }

var (
	// NoLimit passes samples unchanged.
	NoLimit Limiter = noLimit{}
	// NormalizeUnit maps samples with |y| > 1 to y/|y|.
	NormalizeUnit Limiter = normalizeUnit{}
)

// Clamp returns a limiter that clips to [-limit, limit]. A non-positive
// or NaN limit yields NoLimit.
func Clamp(limit float64) Limiter {
	if !(limit > 0) {
		return NoLimit
	}
	return clamp(limit)
}

// ParseLimiter accepts "none", "normalize" and "clamp:<limit>".
func ParseLimiter(s string) (Limiter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "none":
		return NoLimit, nil
	case s == "normalize":
		return NormalizeUnit, nil
	case strings.HasPrefix(s, "clamp:"):
		v, err := strconv.ParseFloat(strings.TrimPrefix(s, "clamp:"), 64)
		if err != nil || !(v > 0) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLimiter, s)
		}
		return clamp(v), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLimiter, s)
	}
}
