package response

import (
	"testing"

	"github.com/cwbudde/algo-zplane/dsp/filter/realize"
)

func BenchmarkMeasure(b *testing.B) {
	r, _ := realize.New(realize.Cascade, testZeros, testPoles)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := Measure(r, 4096); err != nil {
			b.Fatal(err)
		}
	}
}
