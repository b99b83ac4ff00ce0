// Package biquad provides second-order section (SOS) runtime primitives.
//
// A [Section] implements canonical Direct Form II processing for a single
// section defined by [Coefficients]. Multiple sections are cascaded via
// [Chain], which is how the cascade realization of a pole/zero design runs.
//
// Sections are exchanged with other tools as 6-element rows
// [b0, b1, b2, a0, a1, a2] with a0 == 1; see [Coefficients.Row] and
// [FromRow].
//
// Coefficient derivation from pole/zero sets lives in dsp/filter/zpk.
package biquad
