// SPDX-License-Identifier: EPL-2.0

package fx

// Freeverb tuning, in samples at 44.1 kHz.
var (
	combTuning    = [...]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	allpassTuning = [...]int{556, 441, 341, 225}
)

const (
	reverbInputGain = 0.015
	reverbDamping   = 0.2
	reverbSpread    = 23
)

// comb is a lowpass-feedback comb filter.
type comb struct {
	buf   []float32
	idx   int
	store float32
}

func (c *comb) process(in, feedback float32) float32 {
	out := c.buf[c.idx]
	c.store = out*(1-reverbDamping) + c.store*reverbDamping
	c.buf[c.idx] = in + c.store*feedback

	c.idx++
	if c.idx >= len(c.buf) {
		c.idx = 0
	}
	return out
}

// allpass is a Schroeder allpass section with unity gain at all frequencies.
type allpass struct {
	buf []float32
	idx int
}

func (a *allpass) process(in, feedback float32) float32 {
	delayed := a.buf[a.idx]
	v := in + feedback*delayed
	a.buf[a.idx] = v

	a.idx++
	if a.idx >= len(a.buf) {
		a.idx = 0
	}
	return delayed - feedback*v
}

// reverbState is a stereo Freeverb: eight parallel combs into four series
// allpasses per channel, fed from the mono sum.
type reverbState struct {
	room      smoother
	diffusion smoother

	combs     [2][len(combTuning)]comb
	allpasses [2][len(allpassTuning)]allpass
}

func newReverbState(sampleRate float64) reverbState {
	scale := sampleRate / 44100
	r := reverbState{
		room:      smoother{coeff: smoothSlow},
		diffusion: smoother{coeff: smoothSlow},
	}

	for ch := range 2 {
		spread := ch * reverbSpread
		for i, n := range combTuning {
			r.combs[ch][i].buf = make([]float32, max(1, int(float64(n+spread)*scale)))
		}
		for i, n := range allpassTuning {
			r.allpasses[ch][i].buf = make([]float32, max(1, int(float64(n+spread)*scale)))
		}
	}
	return r
}

func (r *reverbState) reset() {
	for ch := range 2 {
		for i := range r.combs[ch] {
			c := &r.combs[ch][i]
			clear(c.buf)
			c.idx = 0
			c.store = 0
		}
		for i := range r.allpasses[ch] {
			a := &r.allpasses[ch][i]
			clear(a.buf)
			a.idx = 0
		}
	}
}

func (r *reverbState) setParams(x, y float32) {
	r.room.set(ReverbRoom(x))
	r.diffusion.set(ReverbDiffusion(y))
}

func (r *reverbState) snap() {
	r.room.snap(r.room.target)
	r.diffusion.snap(r.diffusion.target)
}

func (r *reverbState) process(buf []float32) {
	for i := 0; i+1 < len(buf); i += 2 {
		room := float32(r.room.next())
		diffusion := float32(r.diffusion.next())
		in := (buf[i] + buf[i+1]) * reverbInputGain

		for ch := range 2 {
			var out float32
			for c := range r.combs[ch] {
				out += r.combs[ch][c].process(in, room)
			}
			for a := range r.allpasses[ch] {
				out = r.allpasses[ch][a].process(out, diffusion)
			}
			buf[i+ch] = out
		}
	}
}
