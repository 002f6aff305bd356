// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/kaossfx/audio"
	"github.com/ik5/kaossfx/utils"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source and audio.Seeker.
type source struct {
	// reopen rewinds the file and returns a decoder positioned at frame 0
	reopen     func() (aiffReader, error)
	dec        aiffReader
	sampleRate int
	channels   int
	bitDepth   int
	frames     int64
	cursor     int64
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) Frames() int64   { return s.frames }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

// SeekFrame rewinds when moving backwards and decodes forward to frame.
// AIFF has no index, so this runs in time proportional to the distance.
func (s *source) SeekFrame(frame int64) error {
	frame = max(0, min(frame, s.frames))

	if frame < s.cursor {
		dec, err := s.reopen()
		if err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
		s.dec = dec
		s.cursor = 0
	}

	skip := make([]float32, 4096*s.channels)
	for s.cursor < frame {
		want := min(int64(len(skip)/s.channels), frame-s.cursor)
		n, err := s.ReadSamples(skip[:want*int64(s.channels)])
		if n == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("skip to frame %d: %w", frame, err)
		}
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	remaining := s.frames - s.cursor
	if remaining <= 0 {
		return 0, io.EOF
	}

	want := int(min(int64(len(dst)/s.channels), remaining)) * s.channels
	if want == 0 {
		return 0, nil
	}

	// Resize buffer if needed
	if s.intBuf == nil || cap(s.intBuf.Data) < want {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: s.dec.Format(),
		}
	}
	s.intBuf.Data = s.intBuf.Data[:want]

	n, err := s.dec.PCMBuffer(s.intBuf)
	n -= n % s.channels
	for i := range n {
		dst[i] = utils.IntToFloat32(s.intBuf.Data[i], s.bitDepth)
	}
	s.cursor += int64(n / s.channels)

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%w", err)
	}
	if n == 0 || s.cursor >= s.frames {
		// the SSND chunk ended early or exactly at the declared length
		if s.cursor < s.frames {
			s.frames = s.cursor
		}
		return n, io.EOF
	}
	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	var (
		frames   int64
		bitDepth int
	)

	reopen := func() (aiffReader, error) {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		dec := aiff.NewDecoder(r)
		if !dec.IsValidFile() {
			return nil, ErrNotAiffFile
		}

		// Read file info
		dec.ReadInfo()
		frames = int64(dec.NumSampleFrames)
		bitDepth = int(dec.BitDepth)
		return dec, nil
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
		}
		return nil, fmt.Errorf("%w", err)
	}

	dec, err := reopen()
	if err != nil {
		return nil, err
	}

	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return &source{
		reopen:     reopen,
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   bitDepth,
		frames:     frames,
	}, nil
}
