// Package allpass implements first-order all-pass phase correction.
//
// A [Stage] realizes
//
//	H(z) = (z^-1 - a) / (1 - a z^-1)
//
// with its pole at a and its zero at 1/a, so |H| == 1 at every frequency
// and only the phase changes. A [Chain] is a library of stages that can be
// switched on and off individually. Disabled stages are skipped and keep
// their state until they are enabled again. Stages are never removed.
package allpass
