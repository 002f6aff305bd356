// SPDX-License-Identifier: EPL-2.0

// Package ringbuf provides the lock-free frame queue between the decode
// worker and the render callback.
//
// A seek is flushed without locks: the worker repositions the decoder and
// calls Mark with the seek's sequence number, then keeps pushing. The render
// side calls Discard with the sequence it is waiting for before every Pop,
// which drops the stale frames queued before the mark.
package ringbuf
