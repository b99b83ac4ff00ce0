// Package response measures the frequency response of a realization from
// its impulse response.
//
// The measurement is independent of the pole/zero algebra used to derive
// the coefficients, which makes it a cross-check of a realization against
// the analytic response:
//
//	r, _ := realize.New(realize.Cascade, zeros, poles)
//	res, err := response.Measure(r, 4096)
//	dev := response.Deviation(res, zeros, poles)
package response
