package stream

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-zplane/dsp/buffer"
)

// Summary describes one buffered signal.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Peak   float64
	RMS    float64
}

// Stats summarises the processed input and both outputs.
type Stats struct {
	Input     Summary
	Filtered  Summary
	Corrected Summary
}

// Stats computes summaries over the aligned, processed part of the FIFOs.
func (p *Processor) Stats() Stats {
	n := p.filtered.Len()

	return Stats{
		Input:     p.summarize(p.input, n),
		Filtered:  p.summarize(p.filtered, n),
		Corrected: p.summarize(p.corrected, n),
	}
}

func (p *Processor) summarize(r *buffer.Ring, n int) Summary {
	buf := p.scratch.Get(n)
	defer p.scratch.Put(buf)

	r.CopyTo(buf.Data)
	return Summarize(buf.Data)
}

// Summarize computes a Summary of xs. StdDev is the sample standard
// deviation and is 0 for fewer than two samples.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}

	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) < 2 {
		std = 0
	}

	lo, hi := floats.Min(xs), floats.Max(xs)

	return Summary{
		Count:  len(xs),
		Mean:   mean,
		StdDev: std,
		Min:    lo,
		Max:    hi,
		Peak:   math.Max(math.Abs(lo), math.Abs(hi)),
		RMS:    floats.Norm(xs, 2) / math.Sqrt(float64(len(xs))),
	}
}
