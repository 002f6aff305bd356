// SPDX-License-Identifier: EPL-2.0

package ringbuf

import (
	"errors"
	"sync/atomic"
)

var ErrInvalidSize = errors.New("ring capacity and channel count must be positive")

// mark records where the producer resumed writing after a reposition.
type mark struct {
	seq uint64
	at  uint64
}

// Ring is a bounded single-producer single-consumer queue of interleaved
// float32 frames. Push and Pop never block and never allocate.
//
// read and write are running frame counters; only the consumer stores read
// and only the producer stores write.
type Ring struct {
	buf      []float32
	frames   uint64
	channels int

	write atomic.Uint64
	read  atomic.Uint64
	mark  atomic.Pointer[mark]
}

// New returns a ring holding up to frames frames of channels samples each.
func New(frames, channels int) (*Ring, error) {
	if frames <= 0 || channels <= 0 {
		return nil, ErrInvalidSize
	}

	return &Ring{
		buf:      make([]float32, frames*channels),
		frames:   uint64(frames),
		channels: channels,
	}, nil
}

// Cap is the capacity in frames.
func (r *Ring) Cap() int { return int(r.frames) }

// Channels is the number of samples per frame.
func (r *Ring) Channels() int { return r.channels }

// Len is the number of frames ready to pop.
func (r *Ring) Len() int {
	return int(r.write.Load() - r.read.Load())
}

// Free is the number of frames Push can accept.
func (r *Ring) Free() int {
	return int(r.frames) - r.Len()
}

// Push copies as many whole frames from src as fit and returns how many
// frames were written. Producer side only.
func (r *Ring) Push(src []float32) int {
	w := r.write.Load()
	free := r.frames - (w - r.read.Load())
	n := min(free, uint64(len(src)/r.channels))
	if n == 0 {
		return 0
	}

	r.copyIn(w, src[:n*uint64(r.channels)])
	r.write.Store(w + n)
	return int(n)
}

// Pop copies up to len(dst)/channels frames into dst and returns how many
// frames were read. Consumer side only.
func (r *Ring) Pop(dst []float32) int {
	rd := r.read.Load()
	avail := r.write.Load() - rd
	n := min(avail, uint64(len(dst)/r.channels))
	if n == 0 {
		return 0
	}

	r.copyOut(rd, dst[:n*uint64(r.channels)])
	r.read.Store(rd + n)
	return int(n)
}

// Mark publishes that everything written from now on belongs to the
// reposition numbered seq. Producer side only, after the source has been
// repositioned and before the first new frame is pushed.
func (r *Ring) Mark(seq uint64) {
	r.mark.Store(&mark{seq: seq, at: r.write.Load()})
}

// Discard drops frames that predate reposition seq. While the producer has
// not marked seq yet every ready frame is stale and is dropped. It reports
// whether the mark for seq has been seen. Consumer side only.
//
// Sequence numbers only grow. A mark newer than seq means the consumer has
// not caught up with a later reposition yet: frames before that mark are
// dropped and the ones after it are kept for the next call.
func (r *Ring) Discard(seq uint64) bool {
	// load write before the mark: frames up to w were pushed before any
	// mark stored after this point
	w := r.write.Load()
	m := r.mark.Load()
	rd := r.read.Load()

	if m != nil && m.seq > seq {
		if at := min(m.at, w); at > rd {
			r.read.Store(at)
		}
		return false
	}

	if m == nil || m.seq != seq {
		if w > rd {
			r.read.Store(w)
		}
		return false
	}

	if m.at > rd {
		r.read.Store(m.at)
	}
	return true
}

func (r *Ring) copyIn(at uint64, src []float32) {
	start := int(at%r.frames) * r.channels
	n := copy(r.buf[start:], src)
	copy(r.buf, src[n:])
}

func (r *Ring) copyOut(at uint64, dst []float32) {
	start := int(at%r.frames) * r.channels
	n := copy(dst, r.buf[start:])
	copy(dst[n:], r.buf)
}
