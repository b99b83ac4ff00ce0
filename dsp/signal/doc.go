// Package signal provides the synthetic test inputs used to exercise a
// filter in real time: a sine, a square wave and seeded uniform noise,
// sampled on a fixed time step.
package signal
