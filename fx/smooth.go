// SPDX-License-Identifier: EPL-2.0

package fx

// Per-sample one-pole coefficients.
const (
	smoothSlow = 0.001
	smoothFast = 0.005
)

// smoother glides a parameter toward its target one sample at a time.
type smoother struct {
	cur    float64
	target float64
	coeff  float64
}

func (s *smoother) set(v float64) { s.target = v }

// snap jumps straight to v.
func (s *smoother) snap(v float64) {
	s.cur = v
	s.target = v
}

func (s *smoother) next() float64 {
	s.cur += (s.target - s.cur) * s.coeff
	return s.cur
}
