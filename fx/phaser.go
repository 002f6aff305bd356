// SPDX-License-Identifier: EPL-2.0

package fx

import "math"

const (
	phaserStages   = 4
	phaserMinFreq  = 200.0
	phaserMaxFreq  = 2000.0
	phaserFeedback = 0.5
	// right channel LFO lead, in cycles
	phaserStereoOffset = 0.25
)

// phaserStage is a first-order allpass.
type phaserStage struct {
	state float32
}

func (s *phaserStage) process(in, a1 float32) float32 {
	out := a1*in + s.state
	s.state = in - a1*out
	return out
}

// phaserState sweeps four allpass stages between 200 Hz and 2 kHz and sums
// them with the input to carve moving notches.
type phaserState struct {
	sampleRate float64
	rate       smoother
	depth      smoother
	mod        lfo

	stages [2][phaserStages]phaserStage
	last   [2]float32
}

func newPhaserState(sampleRate float64) phaserState {
	return phaserState{
		sampleRate: sampleRate,
		rate:       smoother{coeff: smoothSlow},
		depth:      smoother{coeff: smoothSlow},
	}
}

func (p *phaserState) reset() {
	p.stages = [2][phaserStages]phaserStage{}
	p.last = [2]float32{}
	p.mod.reset()
}

func (p *phaserState) setParams(x, y float32) {
	p.rate.set(PhaserRate(x))
	p.depth.set(PhaserDepth(y))
}

func (p *phaserState) snap() {
	p.rate.snap(p.rate.target)
	p.depth.snap(p.depth.target)
}

// coefficient maps an LFO value in [-1,1] to the allpass coefficient.
func (p *phaserState) coefficient(lfoValue, depth float64) float32 {
	sweep := (lfoValue + 1) / 2 * depth
	freq := phaserMinFreq * math.Pow(phaserMaxFreq/phaserMinFreq, sweep)
	t := math.Tan(math.Pi * freq / p.sampleRate)
	return float32((1 - t) / (1 + t))
}

func (p *phaserState) process(buf []float32) {
	for i := 0; i+1 < len(buf); i += 2 {
		rate := p.rate.next()
		depth := p.depth.next()

		for ch := range 2 {
			a1 := p.coefficient(p.mod.value(float64(ch)*phaserStereoOffset), depth)

			in := buf[i+ch]
			wet := max(-1, min(1, in+p.last[ch]*phaserFeedback))
			for s := range p.stages[ch] {
				wet = p.stages[ch][s].process(wet, a1)
			}
			p.last[ch] = wet
			buf[i+ch] = (in + wet) * 0.5
		}

		p.mod.advance(rate, p.sampleRate)
	}
}
