// Package zpk derives filter coefficients from zero/pole sets.
//
// [DirectForm] expands the sets into one (b, a) polynomial pair, [Cascade]
// groups them into second-order sections, and [Response] evaluates the
// frequency response directly from the product form.
//
// Derivation never leaves the caller without a usable filter: on failure
// both derivers return a passthrough result together with an error that
// matches [ErrDerivation].
//
// Coefficient vectors are ordered by descending powers of z^-1 with
// a[0] == 1. Section ordering depends on the input order of the roots;
// permuting the roots may change the section order and with it the
// rounding behaviour of the cascade.
package zpk
