package zplane_test

import (
	"fmt"

	"github.com/cwbudde/algo-zplane/dsp/zplane"
)

func ExampleModel_AddPoint() {
	m := zplane.New()
	if _, err := m.AddPoint(zplane.Pole, 0.5, 0.5, true); err != nil {
		panic(err)
	}

	fmt.Println(m.Poles())

	if _, err := m.AddPoint(zplane.Pole, 1.2, 0, false); err != nil {
		fmt.Println("rejected")
	}
	// Output:
	// [(0.5+0.5i) (0.5-0.5i)]
	// rejected
}

func ExamplePresets() {
	for _, name := range zplane.Presets()[:3] {
		fmt.Println(name)
	}
	// Output:
	// Butterworth LPF
	// Butterworth HPF
	// Chebyshev LPF
}
