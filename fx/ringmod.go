// SPDX-License-Identifier: EPL-2.0

package fx

// ringModState multiplies the input by a sine carrier, blended by depth:
// out = in * (1 - depth + depth*sin).
type ringModState struct {
	sampleRate float64
	carrier    smoother
	depth      smoother
	osc        lfo
}

func newRingModState(sampleRate float64) ringModState {
	return ringModState{
		sampleRate: sampleRate,
		carrier:    smoother{coeff: smoothSlow},
		depth:      smoother{coeff: smoothSlow},
	}
}

func (r *ringModState) reset() { r.osc.reset() }

func (r *ringModState) setParams(x, y float32) {
	r.carrier.set(RingCarrier(x))
	r.depth.set(RingDepth(y))
}

func (r *ringModState) snap() {
	r.carrier.snap(r.carrier.target)
	r.depth.snap(r.depth.target)
}

func (r *ringModState) process(buf []float32) {
	for i := 0; i+1 < len(buf); i += 2 {
		d := r.depth.next()
		gain := float32(1 - d + d*r.osc.value(0))
		r.osc.advance(r.carrier.next(), r.sampleRate)

		buf[i] *= gain
		buf[i+1] *= gain
	}
}
