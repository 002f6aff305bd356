// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"math"

	"github.com/ik5/kaossfx/utils"
)

// Parameter mappings from normalized x/y in [0,1] to algorithm values.
// The control surface labels its pads with the same curves.

// FilterCutoff is 20 Hz at x=0 and 20 kHz at x=1, capped 100 Hz below Nyquist.
// It never drops under 20 Hz.
func FilterCutoff(x float32, sampleRate float64) float64 {
	return utils.Clamp64(20*math.Pow(1000, float64(x)), 20, sampleRate/2-100)
}

// FilterResonance is linear from 0 to 0.95.
func FilterResonance(y float32) float64 { return 0.95 * float64(y) }

// DelayTime is linear from 10 ms to 500 ms, in seconds.
func DelayTime(x float32) float64 { return 0.010 + 0.490*float64(x) }

// DelayFeedback is linear from 0 to 0.9.
func DelayFeedback(y float32) float64 { return 0.9 * float64(y) }

// CrushBits is 16 bits at x=0 down to 2 bits at x=1.
func CrushBits(x float32) float64 { return 16 - 14*float64(x) }

// CrushDivisor is the sample-and-hold period, from 1 to 32 samples.
func CrushDivisor(y float32) float64 { return 1 + 31*float64(y) }

// PhaserRate is 0.05 Hz at x=0 and 5 Hz at x=1.
func PhaserRate(x float32) float64 { return 0.05 * math.Pow(100, float64(x)) }

// PhaserDepth is linear from 0 to 1.
func PhaserDepth(y float32) float64 { return float64(y) }

// ReverbRoom is the comb feedback, from 0.7 to 0.98.
func ReverbRoom(x float32) float64 { return 0.7 + 0.28*float64(x) }

// ReverbDiffusion is the allpass feedback, from 0 to 0.7.
func ReverbDiffusion(y float32) float64 { return 0.7 * float64(y) }

// RingCarrier is 20 Hz at x=0 and 4 kHz at x=1.
func RingCarrier(x float32) float64 { return 20 * math.Pow(200, float64(x)) }

// RingDepth is linear from 0 to 1.
func RingDepth(y float32) float64 { return float64(y) }
