// Package buffer implements the buffer pool: a fixed-size frame array that
// mediates every access to a disk-backed page through pin counts, a
// dirty write-back policy, and a pluggable Replacer for victim selection.
//
// The pool holds one coarse latch over the frame array, the page table and
// the free list. Every public method holds it for its entire duration,
// including any disk I/O it triggers. This serializes page faults behind
// a single lock; in exchange, every invariant linking the frame array to
// the page table and free list holds at every observable point, with no
// separate bookkeeping lock to keep in sync.
package buffer
