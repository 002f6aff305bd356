// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/kaossfx/utils"
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// Includes basic anti-aliasing filtering when downsampling.
type Resampler struct {
	src      Source
	srcRate  float64
	dstRate  float64
	ratio    float64 // srcRate / dstRate - how many source samples per output sample
	channels int

	// Window holding 4 frames for cubic interpolation
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// Position between frames[1] and frames[2] (in source frames)
	pos float64

	// Chunked reads from source; srcOff..srcLen is unread
	srcBuf []float32
	srcOff int
	srcLen int
	srcErr error
	eof    bool

	// Simple low-pass filter state for anti-aliasing (when downsampling)
	filterState []float32
	useFilter   bool
	seeded      bool
	filterAlpha float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	// Enable simple low-pass filter when downsampling
	useFilter := ratio > 1.0
	var filterAlpha float32
	if useFilter {
		// One-pole low-pass near the Nyquist frequency of the destination rate
		filterAlpha = 0.5
	}

	chunk := 1024 * channels

	r := &Resampler{
		src:         src,
		srcRate:     float64(src.SampleRate()),
		dstRate:     float64(dstRate),
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, chunk),
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float32, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Reset drops the interpolation window, pending source samples and filter
// state. Call it after repositioning the underlying source.
func (r *Resampler) Reset() {
	for i := range r.frames {
		clear(r.frames[i])
		r.hasFrame[i] = false
	}
	clear(r.filterState)
	r.seeded = false
	r.primed = false
	r.pos = 0
	r.srcOff = 0
	r.srcLen = 0
	r.srcErr = nil
	r.eof = false
}

// readFrame copies the next source frame into dst.
func (r *Resampler) readFrame(dst []float32) error {
	for r.srcLen-r.srcOff < r.channels {
		if r.srcErr != nil {
			return r.srcErr
		}

		// keep a partial frame at the front
		rest := copy(r.srcBuf, r.srcBuf[r.srcOff:r.srcLen])
		r.srcOff = 0
		r.srcLen = rest

		n, err := r.src.ReadSamples(r.srcBuf[rest:])
		r.srcLen += n
		if err != nil {
			r.srcErr = err
		} else if n == 0 {
			// a source that makes no progress is treated as ended
			r.srcErr = io.EOF
		}
	}

	copy(dst, r.srcBuf[r.srcOff:r.srcOff+r.channels])
	r.srcOff += r.channels

	if r.useFilter {
		if !r.seeded {
			// Seed with the first sample to avoid warm-up transients
			copy(r.filterState, dst)
			r.seeded = true
		}
		// One-pole low-pass: y[n] = alpha * x[n] + (1-alpha) * y[n-1]
		for c := range r.channels {
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}
	return nil
}

// fetchNextFrame shifts the window and reads the next frame into frames[3].
func (r *Resampler) fetchNextFrame() error {
	if r.eof && !r.hasFrame[3] {
		return io.EOF
	}

	// Shift frames: [0,1,2,3] -> [1,2,3,?]
	first := r.frames[0]
	r.frames[0], r.frames[1], r.frames[2] = r.frames[1], r.frames[2], r.frames[3]
	r.frames[3] = first
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]

	if r.eof {
		r.hasFrame[3] = false
		return nil
	}

	err := r.readFrame(r.frames[3])
	if err == nil {
		r.hasFrame[3] = true
		return nil
	}

	r.hasFrame[3] = false
	if err == io.EOF {
		r.eof = true
		return nil
	}
	return fmt.Errorf("%w", err)
}

// prime fills the window so the first output frame is the first source frame.
func (r *Resampler) prime() error {
	if err := r.readFrame(r.frames[1]); err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("%w", err)
	}
	copy(r.frames[0], r.frames[1])
	r.hasFrame[0] = true
	r.hasFrame[1] = true

	for i := 2; i < 4; i++ {
		err := r.readFrame(r.frames[i])
		if err == nil {
			r.hasFrame[i] = true
			continue
		}
		if err != io.EOF {
			return fmt.Errorf("%w", err)
		}
		r.eof = true
		break
	}

	r.primed = true
	return nil
}

// ReadSamples produces dst samples at r.dstRate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		// pos should be in range [0, 1) for interpolation between frames[1] and frames[2]
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.fetchNextFrame(); err != nil {
				if err == io.EOF {
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.hasFrame[1] {
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]

		if !r.hasFrame[2] {
			// last source frame: hold it
			if alpha > 0 {
				return written * r.channels, io.EOF
			}
			copy(out, r.frames[1])
		} else {
			for c := range r.channels {
				y0 := r.frames[0][c]
				y1 := r.frames[1][c]
				y2 := r.frames[2][c]
				y3 := y2
				if r.hasFrame[3] {
					y3 = r.frames[3][c]
				}
				out[c] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
			}
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
