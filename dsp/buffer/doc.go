// Package buffer provides the bounded sample FIFO used by the streaming
// processor and a pool of scratch slices for block work.
//
// A [Ring] has a fixed capacity. Pushing into a full ring silently evicts
// the oldest sample; nothing ever blocks.
package buffer
