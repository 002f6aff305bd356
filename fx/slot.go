// SPDX-License-Identifier: EPL-2.0

package fx

import "github.com/ik5/kaossfx/utils"

// Slot is one effect unit: a mode, an XY position and a wet/dry mix over
// interleaved stereo audio. Every mode's state is allocated up front, so
// switching modes on the render path never allocates. A Slot is owned by a
// single goroutine.
type Slot struct {
	sampleRate float64
	mode       Mode
	x, y       float32

	mix       float32 // applied at the end of the last block
	mixTarget float32

	dry []float32

	filter   filterState
	chorus   chorusState
	reverb   reverbState
	phaser   phaserState
	bitcrush bitcrushState
	ringMod  ringModState
}

// NewSlot returns a bypassed slot for blocks of up to maxFrames stereo
// frames. Process splits larger blocks.
func NewSlot(sampleRate float64, maxFrames int) *Slot {
	s := &Slot{
		sampleRate: sampleRate,
		mode:       Bypass,
		dry:        make([]float32, max(1, maxFrames)*2),
		filter:     newFilterState(sampleRate),
		chorus:     newChorusState(sampleRate),
		reverb:     newReverbState(sampleRate),
		phaser:     newPhaserState(sampleRate),
		bitcrush:   newBitcrushState(),
		ringMod:    newRingModState(sampleRate),
	}
	return s
}

func (s *Slot) Mode() Mode { return s.mode }

func (s *Slot) XY() (float32, float32) { return s.x, s.y }

func (s *Slot) Mix() float32 { return s.mixTarget }

// SetMode switches algorithm. The outgoing and incoming states are cleared
// and the incoming parameters start at the current XY without gliding.
func (s *Slot) SetMode(m Mode) {
	s.resetState(s.mode)
	s.mode = ModeFromIndex(int(m))
	s.resetState(s.mode)

	s.applyXY()
	s.snapParams()
}

// SetXY moves the pad position. Values are clamped to [0,1].
func (s *Slot) SetXY(x, y float32) {
	s.x = utils.Clamp01(x)
	s.y = utils.Clamp01(y)
	s.applyXY()
}

// SetMix sets the wet amount, clamped to [0,1]. The change ramps across the
// next processed block.
func (s *Slot) SetMix(mix float32) {
	s.mixTarget = utils.Clamp01(mix)
}

// SnapMix jumps to the target mix so the next block does not ramp.
func (s *Slot) SnapMix() { s.mix = s.mixTarget }

func (s *Slot) applyXY() {
	switch s.mode {
	case Filter:
		s.filter.setParams(s.x, s.y)
	case Chorus:
		s.chorus.setParams(s.x, s.y)
	case Reverb:
		s.reverb.setParams(s.x, s.y)
	case Phaser:
		s.phaser.setParams(s.x, s.y)
	case BitCrush:
		s.bitcrush.setParams(s.x, s.y)
	case RingMod:
		s.ringMod.setParams(s.x, s.y)
	}
}

func (s *Slot) snapParams() {
	switch s.mode {
	case Filter:
		s.filter.snap()
	case Chorus:
		s.chorus.snap()
	case Reverb:
		s.reverb.snap()
	case Phaser:
		s.phaser.snap()
	case BitCrush:
		s.bitcrush.snap()
	case RingMod:
		s.ringMod.snap()
	}
}

func (s *Slot) resetState(m Mode) {
	switch m {
	case Filter:
		s.filter.reset()
	case Chorus:
		s.chorus.reset()
	case Reverb:
		s.reverb.reset()
	case Phaser:
		s.phaser.reset()
	case BitCrush:
		s.bitcrush.reset()
	case RingMod:
		s.ringMod.reset()
	}
}

func (s *Slot) wet(buf []float32) {
	switch s.mode {
	case Filter:
		s.filter.process(buf)
	case Chorus:
		s.chorus.process(buf)
	case Reverb:
		s.reverb.process(buf)
	case Phaser:
		s.phaser.process(buf)
	case BitCrush:
		s.bitcrush.process(buf)
	case RingMod:
		s.ringMod.process(buf)
	}
}

// Process runs the slot over interleaved stereo buf in place and blends
// dry + (wet - dry) * mix. In Bypass, or with the mix at zero, buf is left
// untouched.
func (s *Slot) Process(buf []float32) {
	if s.mode == Bypass {
		s.mix = s.mixTarget
		return
	}
	if s.mix == 0 && s.mixTarget == 0 {
		return
	}

	for len(buf) >= 2 {
		n := min(len(buf), len(s.dry)) &^ 1
		s.processBlock(buf[:n])
		buf = buf[n:]
	}
}

func (s *Slot) processBlock(buf []float32) {
	dry := s.dry[:len(buf)]
	copy(dry, buf)
	s.wet(buf)

	from, to := s.mix, s.mixTarget
	if from == 1 && to == 1 {
		return
	}

	frames := len(buf) / 2
	step := (to - from) / float32(frames)

	for f := range frames {
		m := from + step*float32(f+1)
		if from == to {
			m = to
		}
		i := 2 * f
		buf[i] = dry[i] + (buf[i]-dry[i])*m
		buf[i+1] = dry[i+1] + (buf[i+1]-dry[i+1])*m
	}
	s.mix = to
}
