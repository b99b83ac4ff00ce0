// Package zplane holds the editable pole/zero model of a digital IIR filter.
//
// A [Model] keeps two ordered sequences of complex points, zeros and poles.
// Insertion order is the only identity: duplicate coordinates are legal and
// each entry is edited or deleted by index. Points added with mirroring get a
// conjugate partner and a symmetric link, so moving either end keeps the
// pair conjugate and deleting either end removes both.
//
// Poles must stay strictly inside the unit circle; edits that would place a
// pole on or outside it fail with [ErrUnstableFilter] and leave the model
// unchanged. Every successful edit bumps [Model.Revision], which downstream
// code uses to detect that derived coefficients are stale.
package zplane
