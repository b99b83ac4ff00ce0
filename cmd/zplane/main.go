// Command zplane derives, inspects and runs pole/zero IIR filter designs.
//
// Usage:
//
//	zplane [flags]
//
// A design comes from a saved record (-load), a built-in preset (-preset)
// or is empty. The coefficients of the selected structure are always
// printed; the remaining flags add a frequency response table, a streamed
// test signal, exports and generated C.
//
// Examples:
//
//	zplane -list-presets
//	zplane -preset "Chebyshev LPF" -structure cascade -points 9
//	zplane -load notch.flt -signal square -samples 500 -allpass 0,2
//	zplane -preset "Notch Filter" -export notch.json -c notch.c -save notch
//	zplane -preset "Bessel LPF" -signal sine -realtime -rate 200 -samples 400 -v
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	ossignal "os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-zplane/codegen"
	"github.com/cwbudde/algo-zplane/dsp/filter/allpass"
	"github.com/cwbudde/algo-zplane/dsp/filter/realize"
	"github.com/cwbudde/algo-zplane/dsp/signal"
	"github.com/cwbudde/algo-zplane/dsp/stream"
	"github.com/cwbudde/algo-zplane/dsp/zplane"
	"github.com/cwbudde/algo-zplane/measure/response"
	"github.com/cwbudde/algo-zplane/persist"
)

// measureSize is the impulse response length used for the measured check.
const measureSize = 8192

type options struct {
	load        string
	preset      string
	listPresets bool
	structure   string
	points      int
	export      string
	cSource     string
	signal      string
	samples     int
	allPass     string
	allPassAdd  string
	limit       string
	save        string
	rate        float64
	realtime    bool
	verbose     bool
}

func main() {
	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("zplane", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.load, "load", "", "load a saved `record` (.flt)")
	fs.StringVar(&o.preset, "preset", "", "start from a built-in preset `name`")
	fs.BoolVar(&o.listPresets, "list-presets", false, "list preset names and exit")
	fs.StringVar(&o.structure, "structure", "direct", "realization `structure`: direct or cascade")
	fs.IntVar(&o.points, "points", 0, "print the frequency response at `n` points over [0, pi]")
	fs.StringVar(&o.export, "export", "", "write coefficients as JSON to `path` (- for stdout)")
	fs.StringVar(&o.cSource, "c", "", "write a C implementation to `path` (- for stdout)")
	fs.StringVar(&o.signal, "signal", "", "stream a test `signal` through the filter: sine, square or noise")
	fs.IntVar(&o.samples, "samples", 500, "number of samples to stream")
	fs.StringVar(&o.allPass, "allpass", "", "comma-separated all-pass stage `indices` to enable")
	fs.StringVar(&o.allPassAdd, "allpass-add", "", "comma-separated all-pass `coefficients` to append")
	fs.StringVar(&o.limit, "limit", "none", "output `limiter`: none, normalize or clamp:<x>")
	fs.StringVar(&o.save, "save", "", "save the design to `path` (.flt is appended)")
	fs.Float64Var(&o.rate, "rate", stream.DefaultRate, "tick `rate` in samples per second")
	fs.BoolVar(&o.realtime, "realtime", false, "stream on a timer at -rate instead of as fast as possible")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: zplane [flags]\n\n")
		fmt.Fprintf(stderr, "Derives and runs pole/zero IIR filter designs.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  zplane -list-presets\n")
		fmt.Fprintf(stderr, "  zplane -preset \"Chebyshev LPF\" -structure cascade -points 9\n")
		fmt.Fprintf(stderr, "  zplane -load notch.flt -signal square -samples 500 -allpass 0,2\n")
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !(o.rate > 0) {
		return o, fmt.Errorf("-rate must be positive, got %v", o.rate)
	}
	if o.load != "" && o.preset != "" {
		return o, errors.New("-load and -preset are mutually exclusive")
	}

	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if o.listPresets {
		for _, name := range zplane.Presets() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	model, chain, err := loadDesign(o)
	if err != nil {
		return err
	}

	structure, err := realize.ParseStructure(o.structure)
	if err != nil {
		return err
	}

	limiter, err := stream.ParseLimiter(o.limit)
	if err != nil {
		return err
	}

	enabled, err := configureAllPass(chain, o)
	if err != nil {
		return err
	}

	proc := stream.New(model,
		stream.WithStructure(structure),
		stream.WithLimiter(limiter),
		stream.WithAllPass(chain, enabled),
		stream.WithRate(o.rate),
		stream.WithLogger(logger),
	)

	logger.Debug("design loaded",
		"zeros", model.Len(zplane.Zero),
		"poles", model.Len(zplane.Pole),
		"structure", structure,
		"allpass", enabled)

	design := proc.Design()
	if err := proc.LastError(); err != nil {
		fmt.Fprintf(stderr, "warning: %v; running as passthrough\n", err)
	}

	if err := printDesign(stdout, design); err != nil {
		return err
	}

	if o.points > 0 {
		if err := printResponse(stdout, proc, o.points); err != nil {
			return err
		}
	}

	if o.signal != "" {
		if err := streamSignal(ctx, proc, o, logger); err != nil {
			return err
		}
		if err := printStats(stdout, proc.Stats()); err != nil {
			return err
		}
	}

	if o.export != "" {
		if err := writeTo(o.export, stdout, func(w io.Writer) error { return persist.Export(w, design) }); err != nil {
			return err
		}
	}

	if o.cSource != "" {
		header := fmt.Sprintf("%d zeros, %d poles", model.Len(zplane.Zero), model.Len(zplane.Pole))
		if err := writeTo(o.cSource, stdout, func(w io.Writer) error {
			return codegen.WriteC(w, design, codegen.WithHeader(header))
		}); err != nil {
			return err
		}
	}

	if o.save != "" {
		rec := persist.FromModel(model)
		rec.AllPass = chain.Coefficients()

		path, err := persist.SaveFile(o.save, rec)
		if err != nil {
			return err
		}
		logger.Info("design saved", "path", path)
	}

	return nil
}

func loadDesign(o options) (*zplane.Model, *allpass.Chain, error) {
	switch {
	case o.load != "":
		rec, err := persist.LoadFile(o.load)
		if err != nil {
			return nil, nil, err
		}

		m, err := zplane.FromPoints(rec.Zeros, rec.Poles)
		if err != nil {
			return nil, nil, err
		}

		if len(rec.AllPass) == 0 {
			return m, allpass.NewChain(), nil
		}

		chain, err := allpass.NewChainFrom(rec.AllPass)
		return m, chain, err
	case o.preset != "":
		m := zplane.New()
		if err := m.LoadPreset(o.preset); err != nil {
			return nil, nil, err
		}
		return m, allpass.NewChain(), nil
	default:
		return zplane.New(), allpass.NewChain(), nil
	}
}

// configureAllPass appends -allpass-add stages, enables -allpass indices
// and reports whether the chain should run.
func configureAllPass(chain *allpass.Chain, o options) (bool, error) {
	for _, f := range splitList(o.allPassAdd) {
		a, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return false, fmt.Errorf("-allpass-add: %w", err)
		}
		if _, err := chain.Add(a); err != nil {
			return false, err
		}
	}

	indices := splitList(o.allPass)
	for _, f := range indices {
		i, err := strconv.Atoi(f)
		if err != nil {
			return false, fmt.Errorf("-allpass: %w", err)
		}
		if err := chain.Enable(i); err != nil {
			return false, err
		}
	}

	return len(indices) > 0, nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}

	return out
}

func streamSignal(ctx context.Context, proc *stream.Processor, o options, logger *slog.Logger) error {
	kind, err := signal.ParseKind(o.signal)
	if err != nil {
		return err
	}

	gen, err := signal.NewGenerator(kind, signal.WithStep(1/o.rate))
	if err != nil {
		return err
	}

	n := max(o.samples, 0)
	if proc.Capacity() < n {
		proc.SetCapacity(n)
	}

	if !o.realtime {
		proc.PushBlock(gen.Block(n))
		logger.Debug("stream drained", "samples", proc.Drain())
		return nil
	}

	if n == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := 0
	sched := stream.NewScheduler(proc,
		stream.WithSource(gen),
		stream.WithSchedulerLogger(logger),
		stream.WithTickHook(func(_ stream.Sample, ok bool) {
			if ok {
				done++
			}
			if done >= n {
				cancel()
			}
		}),
	)

	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if done < n {
		return fmt.Errorf("interrupted after %d of %d samples", done, n)
	}

	return nil
}

func writeTo(path string, stdout io.Writer, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := fn(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func printDesign(w io.Writer, d realize.Design) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	switch d.Structure {
	case realize.Cascade:
		fmt.Fprintf(tw, "Section\tb0\tb1\tb2\ta0\ta1\ta2\n")
		fmt.Fprintf(tw, "-------\t--\t--\t--\t--\t--\t--\n")
		for i, row := range d.Rows() {
			fmt.Fprintf(tw, "%d\t%.8g\t%.8g\t%.8g\t%.8g\t%.8g\t%.8g\n",
				i, row[0], row[1], row[2], row[3], row[4], row[5])
		}
	default:
		fmt.Fprintf(tw, "k\tb[k]\ta[k]\n")
		fmt.Fprintf(tw, "-\t----\t----\n")
		b, a := d.Transfer.B, d.Transfer.A
		for k := range max(len(b), len(a)) {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", k, coeff(b, k), coeff(a, k))
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write coefficients: %w", err)
	}

	return nil
}

func coeff(c []float64, k int) string {
	if k >= len(c) {
		return "-"
	}

	return strconv.FormatFloat(c[k], 'g', 8, 64)
}

func printResponse(w io.Writer, proc *stream.Processor, n int) error {
	fr, err := proc.FrequencyResponse(n)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nw [rad/sample]\tMagnitude [dB]\tPhase [deg]\tGroup delay [samples]\n")
	fmt.Fprintf(tw, "--------------\t--------------\t-----------\t---------------------\n")
	for i := range fr.Len() {
		fmt.Fprintf(tw, "%.4f\t%.3f\t%.2f\t%.3f\n", fr.Omega[i], fr.MagnitudeDB[i], fr.PhaseDeg[i], fr.GroupDelay[i])
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	m := proc.Model()
	res, err := response.Measure(proc.Design().Realize(), measureSize)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "\nmeasured deviation: %.3g dB over %d bins\n",
		response.Deviation(res, m.Zeros(), m.Poles()), res.Bins())
	return err
}

func printStats(w io.Writer, s stream.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nSignal\tCount\tMean\tStdDev\tMin\tMax\tPeak\tRMS\n")
	fmt.Fprintf(tw, "------\t-----\t----\t------\t---\t---\t----\t---\n")
	for _, row := range []struct {
		name string
		sum  stream.Summary
	}{
		{"input", s.Input},
		{"filtered", s.Filtered},
		{"corrected", s.Corrected},
	} {
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			row.name, row.sum.Count, row.sum.Mean, row.sum.StdDev,
			row.sum.Min, row.sum.Max, row.sum.Peak, row.sum.RMS)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write stats: %w", err)
	}

	return nil
}
