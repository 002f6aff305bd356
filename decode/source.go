// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/kaossfx/audio"
)

// Internal stream layout every Source is conformed to.
const (
	SampleRate = 44100
	Channels   = 2
)

type options struct {
	registry *audio.Registry
	closer   io.Closer
}

// Option configures Open.
type Option func(*options)

// WithRegistry selects the decoders Open may use.
func WithRegistry(reg *audio.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// CloseWith hands ownership of the underlying handle to the Source, which
// closes c when it is closed itself.
func CloseWith(c io.Closer) Option {
	return func(o *options) { o.closer = c }
}

// Source is one opened audio file, conformed to SampleRate and Channels.
// It is not safe for concurrent use.
type Source struct {
	format  string
	in      *trackingReader
	raw     audio.SeekableSource
	resamp  *audio.Resampler
	stream  audio.Source
	closer  io.Closer
	srcRate int
	frames  int64
	cursor  int64
}

// Open sniffs and decodes the byte range [offset, offset+length) of r.
func Open(r io.ReaderAt, offset, length int64, opts ...Option) (*Source, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}

	in := &trackingReader{r: r}
	section := io.NewSectionReader(in, offset, max(length, 0))

	header := make([]byte, audio.SniffLen)
	n, err := section.ReadAt(header, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	format, err := audio.DetectFormat(header[:n])
	switch {
	case errors.Is(err, audio.ErrShortHeader):
		return nil, fmt.Errorf("%w: %d byte header", ErrTruncated, n)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	dec, ok := o.registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: no decoder for %s", ErrUnsupportedFormat, format)
	}

	src, err := dec.Decode(section)
	if err != nil {
		return nil, in.classify(err)
	}

	raw, ok := src.(audio.SeekableSource)
	if !ok {
		_ = src.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, audio.ErrNotSeekable)
	}
	if raw.Frames() < 0 {
		_ = src.Close()
		return nil, fmt.Errorf("%w: %s stream of unknown length", ErrUnsupportedFormat, format)
	}

	return conform(format, in, raw, o.closer)
}

func conform(format string, in *trackingReader, raw audio.SeekableSource, closer io.Closer) (*Source, error) {
	mixed, err := audio.NewChannelMixer(raw, Channels)
	if err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	s := &Source{
		format:  format,
		in:      in,
		raw:     raw,
		stream:  mixed,
		closer:  closer,
		srcRate: raw.SampleRate(),
	}
	if s.srcRate <= 0 {
		_ = raw.Close()
		return nil, fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, s.srcRate)
	}

	if s.srcRate != SampleRate {
		s.resamp = audio.NewResampler(mixed, SampleRate)
		s.stream = s.resamp
	}
	s.frames = s.toInternal(raw.Frames())

	return s, nil
}

// Format is the detected container name.
func (s *Source) Format() string { return s.format }

// SourceRate is the sample rate stored in the file.
func (s *Source) SourceRate() int { return s.srcRate }

// Frames is the stream length at SampleRate.
func (s *Source) Frames() int64 { return s.frames }

// Position is the next frame ReadFrames will return.
func (s *Source) Position() int64 { return s.cursor }

func (s *Source) toInternal(frames int64) int64 {
	return frames * SampleRate / int64(s.srcRate)
}

func (s *Source) toSource(frames int64) int64 {
	return frames * int64(s.srcRate) / SampleRate
}

// ReadFrames fills dst with interleaved stereo frames and returns how many
// frames were written. It returns io.EOF, possibly with n > 0, once the
// stream is exhausted.
func (s *Source) ReadFrames(dst []float32) (int, error) {
	remaining := s.frames - s.cursor
	if remaining <= 0 {
		return 0, io.EOF
	}

	want := int(min(int64(len(dst)/Channels), remaining))
	if want == 0 {
		return 0, nil
	}

	total := 0
	for total < want {
		n, err := s.stream.ReadSamples(dst[total*Channels : want*Channels])
		total += n / Channels
		if err != nil {
			s.cursor += int64(total)
			if errors.Is(err, io.EOF) {
				// the decoder ran dry before the header's length; shrink to what was played
				s.frames = s.cursor
				return total, io.EOF
			}
			return total, s.in.classify(err)
		}
		if n == 0 {
			break
		}
	}

	s.cursor += int64(total)
	if s.cursor >= s.frames {
		return total, io.EOF
	}
	return total, nil
}

// Seek repositions the stream at frame, clamped to [0, Frames()].
func (s *Source) Seek(frame int64) error {
	frame = max(0, min(frame, s.frames))

	if err := s.raw.SeekFrame(s.toSource(frame)); err != nil {
		return s.in.classify(err)
	}
	if s.resamp != nil {
		s.resamp.Reset()
	}
	s.cursor = frame
	return nil
}

// Close releases the decoder and, when set with CloseWith, the handle.
func (s *Source) Close() error {
	err := s.stream.Close()
	if s.closer != nil {
		err = errors.Join(err, s.closer.Close())
	}
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
