// SPDX-License-Identifier: EPL-2.0

package transport

import "sync/atomic"

// Status is what the render goroutine publishes once per callback.
//
// The render side stores word before applied, so a reader that sees
// applied == seq also sees a position computed from that request.
type Status struct {
	word    atomic.Uint64 // position<<2 | state
	applied atomic.Uint64
	ended   atomic.Uint64
}

// Publish stores the render state after it adopted request seq.
func (s *Status) Publish(state State, position int64, seq uint64) {
	s.word.Store(uint64(max(position, 0))<<2 | uint64(state&3))
	s.applied.Store(seq)
}

// End records that playback of request seq reached the end of the stream.
func (s *Status) End(seq uint64) { s.ended.Store(seq) }

// Load returns the last published state and position.
func (s *Status) Load() (State, int64) {
	w := s.word.Load()
	return State(w & 3), int64(w >> 2)
}

// Applied is the sequence of the newest request the render side adopted.
func (s *Status) Applied() uint64 { return s.applied.Load() }

// Ended is the sequence of the newest request that ran to the end.
func (s *Status) Ended() uint64 { return s.ended.Load() }
