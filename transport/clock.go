// SPDX-License-Identifier: EPL-2.0

package transport

// Clock converts between frames and milliseconds at a fixed sample rate.
type Clock struct {
	Rate int64
}

// Ms returns the whole milliseconds covered by frames.
func (c Clock) Ms(frames int64) int64 {
	if c.Rate <= 0 {
		return 0
	}
	return frames * 1000 / c.Rate
}

// Frames returns the frame at ms.
func (c Clock) Frames(ms int64) int64 {
	return ms * c.Rate / 1000
}
