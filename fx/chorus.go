// SPDX-License-Identifier: EPL-2.0

package fx

const (
	chorusMaxDelay = 0.5   // seconds
	chorusLFORate  = 0.25  // Hz
	chorusLFODepth = 0.002 // seconds of sweep
	chorusWet      = 0.5
	chorusClamp    = 2
)

// chorusState is a modulated feedback delay line. The output is the input
// plus half the delayed signal; the feedback write is clamped to ±2.
type chorusState struct {
	sampleRate float64
	delay      smoother // seconds
	feedback   smoother
	mod        lfo

	line  [2][]float32
	write int
}

func newChorusState(sampleRate float64) chorusState {
	size := int((chorusMaxDelay+chorusLFODepth)*sampleRate) + 4
	return chorusState{
		sampleRate: sampleRate,
		delay:      smoother{coeff: smoothSlow},
		feedback:   smoother{coeff: smoothSlow},
		line:       [2][]float32{make([]float32, size), make([]float32, size)},
	}
}

func (c *chorusState) reset() {
	clear(c.line[0])
	clear(c.line[1])
	c.write = 0
	c.mod.reset()
}

func (c *chorusState) setParams(x, y float32) {
	c.delay.set(DelayTime(x))
	c.feedback.set(DelayFeedback(y))
}

func (c *chorusState) snap() {
	c.delay.snap(c.delay.target)
	c.feedback.snap(c.feedback.target)
}

func (c *chorusState) process(buf []float32) {
	size := len(c.line[0])

	for i := 0; i+1 < len(buf); i += 2 {
		sweep := 0.5 + 0.5*c.mod.value(0)
		c.mod.advance(chorusLFORate, c.sampleRate)

		delaySamples := (c.delay.next() + sweep*chorusLFODepth) * c.sampleRate
		fb := float32(c.feedback.next())

		readPos := float64(c.write) - delaySamples
		for readPos < 0 {
			readPos += float64(size)
		}
		idxA := int(readPos)
		idxB := idxA + 1
		if idxB >= size {
			idxB = 0
		}
		frac := float32(readPos - float64(idxA))

		for ch := range 2 {
			line := c.line[ch]
			delayed := line[idxA]*(1-frac) + line[idxB]*frac
			in := buf[i+ch]

			line[c.write] = max(-chorusClamp, min(chorusClamp, in+delayed*fb))
			buf[i+ch] = in + delayed*chorusWet
		}

		c.write++
		if c.write >= size {
			c.write = 0
		}
	}
}
