// Package stream drives a pole/zero design over a live sample stream.
//
// A [Processor] owns three aligned bounded FIFOs: the raw input, the
// filtered output and the phase-corrected output. Each [Processor.Tick]
// consumes the oldest unprocessed input sample, runs it through the
// current realization and, when enabled, through the all-pass chain.
// Output sample i always belongs to input sample i.
//
// Edits to the pole/zero model or the structure are picked up on the next
// tick; the realization is re-derived and its state zeroed before the
// next step, so stale state never runs on a changed topology.
//
// A Processor is not safe for concurrent use. A [Scheduler] runs ticks on
// its own goroutine and serialises edits onto that goroutine via
// [Scheduler.Do].
package stream
