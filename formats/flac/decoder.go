// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	beepflac "github.com/gopxl/beep/v2/flac"
	"github.com/ik5/kaossfx/audio"
)

// beep streams are always stereo; mono files are duplicated
const channels = 2

// flacStream is an interface for beep.StreamSeekCloser to allow testing
type flacStream interface {
	Stream(samples [][2]float64) (n int, ok bool)
	Err() error
	Len() int
	Position() int
	Seek(p int) error
	Close() error
}

type source struct {
	stream     flacStream
	sampleRate int
	frames     [][2]float64
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) BufSize() int    { return cap(s.frames) * channels }
func (s *source) Frames() int64   { return int64(s.stream.Len()) }

func (s *source) Close() error {
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) SeekFrame(frame int64) error {
	frame = max(0, min(frame, int64(s.stream.Len())))
	if err := s.stream.Seek(int(frame)); err != nil {
		return fmt.Errorf("seek to frame %d: %w", frame, err)
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) / channels
	if want == 0 {
		return 0, nil
	}
	if s.stream.Position() >= s.stream.Len() {
		return 0, io.EOF
	}

	if cap(s.frames) < want {
		s.frames = make([][2]float64, want)
	}
	frames := s.frames[:want]

	n, ok := s.stream.Stream(frames)
	for i := range n {
		dst[2*i] = float32(frames[i][0])
		dst[2*i+1] = float32(frames[i][1])
	}

	if !ok {
		if err := s.stream.Err(); err != nil {
			return n * channels, fmt.Errorf("%w", err)
		}
		return n * channels, io.EOF
	}
	return n * channels, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	stream, format, err := beepflac.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	return newSource(stream, format)
}

func newSource(stream flacStream, format beep.Format) (*source, error) {
	if format.SampleRate <= 0 {
		_ = stream.Close()
		return nil, ErrInvalidStream
	}

	return &source{
		stream:     stream,
		sampleRate: int(format.SampleRate),
		frames:     make([][2]float64, 4096),
	}, nil
}
