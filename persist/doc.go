// Package persist reads and writes pole/zero designs and exports derived
// coefficients.
//
// A filter record is a small JSON document:
//
//	{"zeros": [[re, im], ...], "poles": [[re, im], ...]}
//
// with an optional "all_pass" list of stage coefficients. Loading is all or
// nothing: a malformed record leaves the target model untouched.
//
// Coefficient exports use
//
//	{"type": "direct", "coefficients": {"b": [...], "a": [...]}}
//	{"type": "cascade", "coefficients": [[b0, b1, b2, a0, a1, a2], ...]}
package persist
