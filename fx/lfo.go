// SPDX-License-Identifier: EPL-2.0

package fx

import "math"

// lfo is a sine oscillator with phase kept in [0,1).
type lfo struct {
	phase float64
}

// value is sin of the current phase shifted by offset cycles.
func (l *lfo) value(offset float64) float64 {
	return math.Sin(2 * math.Pi * (l.phase + offset))
}

func (l *lfo) advance(hz, sampleRate float64) {
	l.phase += hz / sampleRate
	if l.phase >= 1 {
		l.phase -= math.Floor(l.phase)
	}
}

func (l *lfo) reset() { l.phase = 0 }
