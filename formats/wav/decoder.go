// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/kaossfx/audio"
	"github.com/ik5/kaossfx/utils"
)

const (
	formatPCM        = 0x0001
	formatFloat      = 0x0003
	formatExtensible = 0xFFFE
)

type wavSource struct {
	r          io.ReadSeeker
	sampleRate int
	channels   int
	bitDepth   int
	float      bool
	frameSize  int
	dataStart  int64
	frames     int64
	cursor     int64 // next frame to read
	buf        []byte
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }
func (s *wavSource) BufSize() int    { return cap(s.buf) / (s.bitDepth / 8) }
func (s *wavSource) Frames() int64   { return s.frames }

func (s *wavSource) SeekFrame(frame int64) error {
	frame = max(0, min(frame, s.frames))
	if _, err := s.r.Seek(s.dataStart+frame*int64(s.frameSize), io.SeekStart); err != nil {
		return fmt.Errorf("seek to frame %d: %w", frame, err)
	}
	s.cursor = frame
	return nil
}

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	remaining := s.frames - s.cursor
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(int64(len(dst)/s.channels), remaining)
	if frames == 0 {
		return 0, nil
	}

	size := int(frames) * s.frameSize
	if cap(s.buf) < size {
		s.buf = make([]byte, size)
	}
	s.buf = s.buf[:size]

	n, err := io.ReadFull(s.r, s.buf)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		// the file ended before the data chunk did
		err = fmt.Errorf("%w: %w", ErrTruncated, io.ErrUnexpectedEOF)
	default:
		return 0, fmt.Errorf("%w", err)
	}

	got := n / s.frameSize
	samples := got * s.channels
	s.decode(dst[:samples], s.buf[:got*s.frameSize])
	s.cursor += int64(got)

	if err != nil {
		return samples, err
	}
	if s.cursor >= s.frames {
		return samples, io.EOF
	}
	return samples, nil
}

func (s *wavSource) decode(dst []float32, b []byte) {
	switch {
	case s.float && s.bitDepth == 32:
		for i := range dst {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
		}
	case s.float && s.bitDepth == 64:
		for i := range dst {
			dst[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:])))
		}
	case s.bitDepth == 8:
		// 8-bit WAV is unsigned
		for i := range dst {
			dst[i] = utils.IntToFloat32(int(b[i])-128, 8)
		}
	case s.bitDepth == 16:
		for i := range dst {
			dst[i] = utils.IntToFloat32(int(int16(binary.LittleEndian.Uint16(b[2*i:]))), 16)
		}
	case s.bitDepth == 24:
		for i := range dst {
			o := 3 * i
			v := int32(uint32(b[o])<<8|uint32(b[o+1])<<16|uint32(b[o+2])<<24) >> 8
			dst[i] = utils.IntToFloat32(int(v), 24)
		}
	case s.bitDepth == 32:
		for i := range dst {
			dst[i] = utils.IntToFloat32(int(int32(binary.LittleEndian.Uint32(b[4*i:]))), 32)
		}
	}
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	container := riff.New(r)
	if err := container.ParseHeaders(); err != nil {
		if isShortRead(err) {
			return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
		}
		return nil, ErrNotWavFile
	}
	if container.Format != riff.WavFormatID {
		return nil, ErrNotWavFile
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	dec := gowav.NewDecoder(r)
	if err := dec.FwdToPCM(); err != nil || dec.PCMChunk == nil {
		return nil, missingData(r, dec, int64(container.Size)+8)
	}

	// FwdToPCM stops right after the data chunk header
	dataStart, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	format := dec.WavAudioFormat
	if format == formatExtensible {
		if format, err = extensibleSubFormat(r); err != nil {
			return nil, err
		}
	}

	var isFloat bool
	switch {
	case format == formatPCM && (bitDepth == 8 || bitDepth == 16 || bitDepth == 24 || bitDepth == 32):
	case format == formatFloat && (bitDepth == 32 || bitDepth == 64):
		isFloat = true
	default:
		return nil, fmt.Errorf("%w: format 0x%04x, %d bits", ErrUnsupportedEncoding, format, bitDepth)
	}

	if channels < 1 || dec.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	frameSize := channels * bitDepth / 8

	// Clamp the declared size to what the file actually holds
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	dataLen := dec.PCMLen()
	if frameSize == 1 {
		// PCMLen counts the pad byte of an odd-sized chunk as a sample
		if dataLen, err = declaredDataLen(r, dataStart); err != nil {
			return nil, err
		}
	}
	dataLen = min(dataLen, max(0, end-dataStart))

	src := &wavSource{
		r:          r,
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		bitDepth:   bitDepth,
		float:      isFloat,
		frameSize:  frameSize,
		dataStart:  dataStart,
		frames:     dataLen / int64(frameSize),
		buf:        make([]byte, 4096*frameSize),
	}

	if err := src.SeekFrame(0); err != nil {
		return nil, err
	}
	return src, nil
}

// missingData explains why no data chunk was found: a file shorter than its
// RIFF header declares was cut off, otherwise the chunks are unusable.
func missingData(r io.Seeker, dec *gowav.Decoder, declared int64) error {
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	switch {
	case end < declared:
		return fmt.Errorf("%w: %w", ErrTruncated, ErrNoDataChunk)
	case dec.NumChans == 0:
		return ErrUnsupportedWavLayout
	}
	return ErrNoDataChunk
}

// declaredDataLen reads the unpadded size from the data chunk header.
func declaredDataLen(r io.ReadSeeker, dataStart int64) (int64, error) {
	if _, err := r.Seek(dataStart-4, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return 0, readErr(err)
	}
	return int64(size), nil
}

// extensibleSubFormat reads the format tag out of a WAVE_FORMAT_EXTENSIBLE
// fmt chunk. go-audio/wav stops at the base 16-byte header.
func extensibleSubFormat(r io.ReadSeeker) (uint16, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return 0, readErr(err)
	}

	var ext struct {
		Base        [16]byte
		Size        uint16
		ValidBits   uint16
		ChannelMask uint32
		SubFormat   uint16 // first two bytes of the sub-format GUID
	}
	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, readErr(err)
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}
		if ch.Size < binary.Size(ext) {
			return 0, ErrUnsupportedWavLayout
		}
		if err := ch.ReadLE(&ext); err != nil {
			return 0, readErr(err)
		}
		return ext.SubFormat, nil
	}
}

func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func readErr(err error) error {
	if isShortRead(err) {
		return fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return fmt.Errorf("%w", err)
}
