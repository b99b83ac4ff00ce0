// Package codegen renders a derived design as portable C source.
//
// The generated translation unit has no dependencies beyond the C standard
// library and implements the same Direct Form II recurrences as the Go
// realizations, so a C build of the filter produces the same samples up to
// floating-point reassociation.
package codegen
