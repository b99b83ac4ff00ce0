package realize_test

import (
	"fmt"

	"github.com/cwbudde/algo-zplane/dsp/filter/realize"
)

func ExampleNew() {
	r, err := realize.New(realize.Cascade, []complex128{-1}, []complex128{0.5})
	if err != nil {
		panic(err)
	}

	fmt.Println(realize.ImpulseResponse(r, 4))
	// Output:
	// [1 1.5 0.75 0.375]
}
