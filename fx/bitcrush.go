// SPDX-License-Identifier: EPL-2.0

package fx

import "math"

// bitcrushState quantizes to a fractional bit depth and holds each captured
// frame for a whole number of samples.
type bitcrushState struct {
	bits    smoother
	divisor smoother

	lastBits float64
	steps    float32

	held    [2]float32
	counter int
}

func newBitcrushState() bitcrushState {
	return bitcrushState{
		bits:     smoother{cur: 16, target: 16, coeff: smoothFast},
		divisor:  smoother{cur: 1, target: 1, coeff: smoothFast},
		lastBits: -1,
	}
}

func (b *bitcrushState) reset() {
	b.held = [2]float32{}
	b.counter = 0
}

func (b *bitcrushState) setParams(x, y float32) {
	b.bits.set(CrushBits(x))
	b.divisor.set(CrushDivisor(y))
}

func (b *bitcrushState) snap() {
	b.bits.snap(b.bits.target)
	b.divisor.snap(b.divisor.target)
}

func (b *bitcrushState) process(buf []float32) {
	for i := 0; i+1 < len(buf); i += 2 {
		bits := b.bits.next()
		if bits != b.lastBits {
			b.lastBits = bits
			b.steps = float32(math.Exp2(bits))
		}
		div := max(1, int(b.divisor.next()))

		if b.counter == 0 {
			for ch := range 2 {
				b.held[ch] = float32(math.Floor(float64(buf[i+ch]*b.steps))) / b.steps
			}
		}
		buf[i] = b.held[0]
		buf[i+1] = b.held[1]

		b.counter++
		if b.counter >= div {
			b.counter = 0
		}
	}
}
