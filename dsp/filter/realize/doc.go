// Package realize turns derived coefficients into stateful filters.
//
// A [Realization] is a per-sample IIR evaluator. Two structures exist:
// [Direct] runs one canonical Direct Form II recursion over (b, a), and
// [Cascaded] runs a chain of second-order sections. When a design has
// neither zeros nor poles, [Passthrough] is used and returns its input
// unchanged.
//
// Realizations never clip or normalise their output; limiting is left to
// the caller.
package realize
