// SPDX-License-Identifier: EPL-2.0

package fx

import "math"

// filterState is a resonant lowpass built on the topology-preserving
// state variable filter. Cutoff and resonance glide toward their targets.
type filterState struct {
	sampleRate float64
	cutoff     smoother
	resonance  smoother

	// coefficients for lastCutoff/lastRes
	lastCutoff, lastRes float64
	a1, a2, a3          float64

	ic1eq, ic2eq [2]float64
}

func newFilterState(sampleRate float64) filterState {
	f := filterState{
		sampleRate: sampleRate,
		cutoff:     smoother{coeff: smoothSlow},
		resonance:  smoother{coeff: smoothSlow},
	}
	f.lastCutoff = -1
	return f
}

func (f *filterState) reset() {
	f.ic1eq = [2]float64{}
	f.ic2eq = [2]float64{}
	f.lastCutoff = -1
}

func (f *filterState) setParams(x, y float32) {
	f.cutoff.set(FilterCutoff(x, f.sampleRate))
	f.resonance.set(FilterResonance(y))
}

func (f *filterState) snap() {
	f.cutoff.snap(f.cutoff.target)
	f.resonance.snap(f.resonance.target)
}

func (f *filterState) coefficients(cutoff, res float64) {
	if cutoff == f.lastCutoff && res == f.lastRes {
		return
	}
	f.lastCutoff, f.lastRes = cutoff, res

	g := math.Tan(math.Pi * cutoff / f.sampleRate)
	k := 2 - 2*res
	f.a1 = 1 / (1 + g*(g+k))
	f.a2 = g * f.a1
	f.a3 = g * f.a2
}

func (f *filterState) process(buf []float32) {
	for i := 0; i+1 < len(buf); i += 2 {
		f.coefficients(f.cutoff.next(), f.resonance.next())

		for ch := range 2 {
			ic1, ic2 := f.ic1eq[ch], f.ic2eq[ch]

			v3 := float64(buf[i+ch]) - ic2
			v1 := f.a1*ic1 + f.a2*v3
			v2 := ic2 + f.a2*ic1 + f.a3*v3

			f.ic1eq[ch] = 2*v1 - ic1
			f.ic2eq[ch] = 2*v2 - ic2
			buf[i+ch] = float32(v2)
		}
	}
}
