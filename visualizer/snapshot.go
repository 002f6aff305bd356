// SPDX-License-Identifier: EPL-2.0

package visualizer

import (
	"math"
	"sync/atomic"
)

// Size is the most points a snapshot holds.
const Size = 256

const readAttempts = 4

// Snapshot is the latest block of post-effect audio reduced to at most
// Size mono points. One goroutine writes; any number may read.
//
// Points live in atomic cells guarded by a sequence counter that is odd
// while a write is in progress. Readers retry when they overlap a write,
// so neither side blocks.
type Snapshot struct {
	seq    atomic.Uint64
	count  atomic.Uint32
	points [Size]atomic.Uint32
}

// Write replaces the snapshot with the (L+R)/2 mix of the interleaved
// stereo block, decimated to at most Size points.
func (s *Snapshot) Write(block []float32) {
	frames := len(block) / 2
	if frames == 0 {
		s.Clear()
		return
	}
	n := min(frames, Size)

	s.seq.Add(1)
	for i := range n {
		f := i * frames / n
		v := (block[2*f] + block[2*f+1]) / 2
		s.points[i].Store(math.Float32bits(v))
	}
	s.count.Store(uint32(n))
	s.seq.Add(1)
}

// Clear empties the snapshot.
func (s *Snapshot) Clear() {
	if s.count.Load() == 0 {
		return
	}
	s.seq.Add(1)
	s.count.Store(0)
	s.seq.Add(1)
}

// Len is the number of points in the latest snapshot.
func (s *Snapshot) Len() int { return int(s.count.Load()) }

// Read copies the snapshot into dst and returns how many points it wrote.
// It never allocates.
func (s *Snapshot) Read(dst []float32) int {
	var n int
	for range readAttempts {
		before := s.seq.Load()
		if before&1 == 1 {
			continue
		}

		n = min(int(s.count.Load()), len(dst))
		for i := range n {
			dst[i] = math.Float32frombits(s.points[i].Load())
		}

		if s.seq.Load() == before {
			return n
		}
	}
	// still racing the writer; the points are individually valid
	return n
}
