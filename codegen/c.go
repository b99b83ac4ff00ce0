package codegen

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/cwbudde/algo-zplane/dsp/filter/realize"
)

var (
	// ErrInvalidPrefix is returned for a prefix that is not a C identifier.
	ErrInvalidPrefix = errors.New("codegen: prefix is not a valid C identifier")
	// ErrUnsupportedStructure is returned for designs of unknown structure.
	ErrUnsupportedStructure = errors.New("codegen: unsupported structure")
)

// DefaultPrefix names the generated symbols filter_init, filter_process and
// filter_free.
const DefaultPrefix = "filter"

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type config struct {
	prefix string
	header string
}

// Option configures WriteC.
type Option func(*config)

// WithPrefix replaces DefaultPrefix in every generated symbol.
func WithPrefix(p string) Option {
	return func(c *config) { c.prefix = p }
}

// WithHeader adds a line to the leading comment block.
func WithHeader(line string) Option {
	return func(c *config) { c.header = line }
}

type directData struct {
	Prefix, Macro, Header string
	Order, Taps, StateLen int
	B, A                  []float64
}

type cascadeData struct {
	Prefix, Macro, Header string
	Sections              [][5]float64
}

var funcs = template.FuncMap{
	"lit":  literal,
	"list": list,
}

// WriteC writes a C implementation of d to w.
func WriteC(w io.Writer, d realize.Design, opts ...Option) error {
	cfg := config{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !identifier.MatchString(cfg.prefix) {
		return fmt.Errorf("%w: %q", ErrInvalidPrefix, cfg.prefix)
	}
	cfg.header = strings.ReplaceAll(cfg.header, "*/", "* /")

	macro := strings.ToUpper(cfg.prefix)

	switch d.Structure {
	case realize.DirectForm:
		b, a := pad(d.Transfer.B, d.Transfer.A)
		return directTmpl.Execute(w, directData{
			Prefix:   cfg.prefix,
			Macro:    macro,
			Header:   cfg.header,
			Order:    len(b) - 1,
			Taps:     len(b),
			StateLen: max(len(b)-1, 1),
			B:        b,
			A:        a,
		})
	case realize.Cascade:
		rows := make([][5]float64, len(d.Sections))
		for i, s := range d.Sections {
			rows[i] = [5]float64{s.B0, s.B1, s.B2, s.A1, s.A2}
		}

		return cascadeTmpl.Execute(w, cascadeData{
			Prefix:   cfg.prefix,
			Macro:    macro,
			Header:   cfg.header,
			Sections: rows,
		})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedStructure, d.Structure)
	}
}

// pad extends b and a with zeros to a common length of at least one and
// normalises both by a[0].
func pad(b, a []float64) ([]float64, []float64) {
	n := max(len(b), len(a), 1)
	pb := make([]float64, n)
	pa := make([]float64, n)
	copy(pb, b)
	copy(pa, a)

	if len(a) == 0 {
		pa[0] = 1
	}
	if a0 := pa[0]; a0 != 1 && a0 != 0 {
		for i := range pa {
			pb[i] /= a0
			pa[i] /= a0
		}
	}

	return pb, pa
}

func literal(v float64) string {
	s := strconv.FormatFloat(v, 'g', 17, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

func list(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = literal(v)
	}

	return strings.Join(parts, ", ")
}

var directTmpl = template.Must(template.New("direct").Funcs(funcs).Parse(`/*
 * Direct Form II IIR filter, order {{.Order}}.
{{- if .Header}}
 * {{.Header}}
{{- end}}
 *
 *   w = x - a[1]*s[0] - ... - a[N]*s[N-1]
 *   y = b[0]*w + b[1]*s[0] + ... + b[N]*s[N-1]
 */
#include <stdlib.h>
#include <string.h>

#define {{.Macro}}_ORDER {{.Order}}
#define {{.Macro}}_TAPS {{.Taps}}

static const double {{.Prefix}}_b[{{.Macro}}_TAPS] = { {{list .B}} };
static const double {{.Prefix}}_a[{{.Macro}}_TAPS] = { {{list .A}} };

typedef struct {
	double s[{{.StateLen}}];
} {{.Prefix}}_state;

{{.Prefix}}_state *{{.Prefix}}_init(void)
{
	return calloc(1, sizeof({{.Prefix}}_state));
}

double {{.Prefix}}_process({{.Prefix}}_state *st, double x)
{
	double w = x;
	double y;
	int i;

	for (i = 1; i < {{.Macro}}_TAPS; i++)
		w -= {{.Prefix}}_a[i] * st->s[i - 1];

	y = {{.Prefix}}_b[0] * w;
	for (i = 1; i < {{.Macro}}_TAPS; i++)
		y += {{.Prefix}}_b[i] * st->s[i - 1];
{{- if .Order}}

	memmove(&st->s[1], &st->s[0], ({{.Macro}}_ORDER - 1) * sizeof(double));
	st->s[0] = w;
{{- end}}

	return y;
}

void {{.Prefix}}_free({{.Prefix}}_state *st)
{
	free(st);
}
`))

var cascadeTmpl = template.Must(template.New("cascade").Funcs(funcs).Parse(`/*
 * Cascade of {{len .Sections}} Direct Form II second-order sections.
{{- if .Header}}
 * {{.Header}}
{{- end}}
 *
 * Rows are { b0, b1, b2, a1, a2 } with a0 = 1.
 */
#include <stdlib.h>

#define {{.Macro}}_SECTIONS {{len .Sections}}

static const double {{.Prefix}}_sos[{{.Macro}}_SECTIONS][5] = {
{{- range .Sections}}
	{ {{lit (index . 0)}}, {{lit (index . 1)}}, {{lit (index . 2)}}, {{lit (index . 3)}}, {{lit (index . 4)}} },
{{- end}}
};

typedef struct {
	double w[{{.Macro}}_SECTIONS][2];
} {{.Prefix}}_state;

{{.Prefix}}_state *{{.Prefix}}_init(void)
{
	return calloc(1, sizeof({{.Prefix}}_state));
}

double {{.Prefix}}_process({{.Prefix}}_state *st, double x)
{
	int k;

	for (k = 0; k < {{.Macro}}_SECTIONS; k++) {
		const double *c = {{.Prefix}}_sos[k];
		double *w = st->w[k];
		double v = x - c[3] * w[0] - c[4] * w[1];

		x = c[0] * v + c[1] * w[0] + c[2] * w[1];
		w[1] = w[0];
		w[0] = v;
	}

	return x;
}

void {{.Prefix}}_free({{.Prefix}}_state *st)
{
	free(st);
}
`))
