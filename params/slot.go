// SPDX-License-Identifier: EPL-2.0

package params

import (
	"math"
	"sync/atomic"

	"github.com/ik5/kaossfx/fx"
	"github.com/ik5/kaossfx/utils"
)

// ModeWord is a published mode selection. Every SetMode produces a new
// word, even when the mode repeats, so the reader can tell a reselection
// from no change.
type ModeWord uint64

// Mode decodes the selected mode.
func (w ModeWord) Mode() fx.Mode {
	return fx.Mode(int(w&0xFF) - 1)
}

// Slot carries one effect slot's controls from the control side to the
// render goroutine. Each field is a single atomic word, so a reader never
// sees half an update.
type Slot struct {
	mode atomic.Uint64 // generation<<8 | mode+1
	xy   atomic.Uint64 // x bits<<32 | y bits
	mix  atomic.Uint32 // float32 bits
}

// SetMode publishes a mode. Unknown modes publish Bypass.
func (s *Slot) SetMode(m fx.Mode) {
	code := uint64(fx.ModeFromIndex(int(m)) + 1)
	for {
		old := s.mode.Load()
		next := (old>>8+1)<<8 | code
		if s.mode.CompareAndSwap(old, next) {
			return
		}
	}
}

// ModeWord returns the latest published mode word.
func (s *Slot) ModeWord() ModeWord { return ModeWord(s.mode.Load()) }

// Mode returns the latest published mode.
func (s *Slot) Mode() fx.Mode { return s.ModeWord().Mode() }

// SetXY publishes a pad position clamped to [0,1].
func (s *Slot) SetXY(x, y float32) {
	s.xy.Store(packXY(utils.Clamp01(x), utils.Clamp01(y)))
}

// XY returns the latest pad position.
func (s *Slot) XY() (float32, float32) { return UnpackXY(s.XYWord()) }

// XYWord returns the packed position, for cheap change detection.
func (s *Slot) XYWord() uint64 { return s.xy.Load() }

// SetMix publishes a wet mix clamped to [0,1].
func (s *Slot) SetMix(mix float32) {
	s.mix.Store(math.Float32bits(utils.Clamp01(mix)))
}

// Mix returns the latest wet mix.
func (s *Slot) Mix() float32 { return math.Float32frombits(s.mix.Load()) }

func packXY(x, y float32) uint64 {
	return uint64(math.Float32bits(x))<<32 | uint64(math.Float32bits(y))
}

// UnpackXY splits a word returned by XYWord.
func UnpackXY(w uint64) (float32, float32) {
	return math.Float32frombits(uint32(w >> 32)), math.Float32frombits(uint32(w))
}
