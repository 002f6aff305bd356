// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	sampleRate int
	channels   int
	samples    []int
	offset     int
	readErr    error
}

func (m *mockAiffReader) Format() *goaudio.Format {
	return &goaudio.Format{
		SampleRate:  m.sampleRate,
		NumChannels: m.channels,
	}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

// newMockSource builds a source whose reopen hands out a fresh reader over
// the same samples, and counts rewinds.
func newMockSource(channels, bitDepth int, samples []int, rewinds *int) *source {
	open := func() (aiffReader, error) {
		if rewinds != nil {
			*rewinds++
		}
		return &mockAiffReader{sampleRate: 44100, channels: channels, samples: samples}, nil
	}
	dec, _ := open()
	if rewinds != nil {
		*rewinds = 0
	}

	return &source{
		reopen:     open,
		dec:        dec,
		sampleRate: 44100,
		channels:   channels,
		bitDepth:   bitDepth,
		frames:     int64(len(samples) / channels),
	}
}

func counting(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not AIFF data")))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode() error = %v, want %v", err, ErrNotAiffFile)
	}
}

func TestDecoder_TruncatedInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("FORM\x00")))
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("Decode() error = %v, want %v", err, ErrTruncated)
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newMockSource(2, 16, counting(200), nil)

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.Frames() != 100 {
		t.Errorf("Frames() = %d, want 100", src.Frames())
	}
}

func TestSource_ReadSamples_BitDepthNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		input    int
		expected float32
	}{
		{"8-bit max", 8, 127, 127.0 / 128.0},
		{"8-bit min", 8, -128, -1.0},
		{"16-bit max", 16, 32767, 32767.0 / 32768.0},
		{"16-bit min", 16, -32768, -1.0},
		{"24-bit", 24, 8388607, 8388607.0 / 8388608.0},
		{"32-bit", 32, 2147483647, 2147483647.0 / 2147483648.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newMockSource(1, tt.bitDepth, []int{tt.input}, nil)

			dst := make([]float32, 4)
			n, err := src.ReadSamples(dst)
			if n != 1 {
				t.Fatalf("ReadSamples() n = %d, want 1", n)
			}
			if err != io.EOF {
				t.Errorf("ReadSamples() error = %v, want io.EOF", err)
			}

			tolerance := float32(0.001)
			if dst[0] < tt.expected-tolerance || dst[0] > tt.expected+tolerance {
				t.Errorf("ReadSamples() dst[0] = %f, want ~%f", dst[0], tt.expected)
			}
		})
	}
}

func TestSource_SeekFrame(t *testing.T) {
	t.Parallel()

	var rewinds int
	src := newMockSource(2, 16, counting(20000), &rewinds)

	// forward seek decodes ahead without rewinding
	if err := src.SeekFrame(6000); err != nil {
		t.Fatalf("SeekFrame(6000) error = %v", err)
	}
	if rewinds != 0 {
		t.Errorf("forward seek rewound %d times, want 0", rewinds)
	}

	dst := make([]float32, 2)
	if _, err := src.ReadSamples(dst); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if want := float32(12000) / 32768; dst[0] != want {
		t.Errorf("sample after forward seek = %v, want %v", dst[0], want)
	}

	// backward seek rewinds
	if err := src.SeekFrame(10); err != nil {
		t.Fatalf("SeekFrame(10) error = %v", err)
	}
	if rewinds != 1 {
		t.Errorf("backward seek rewound %d times, want 1", rewinds)
	}
	if _, err := src.ReadSamples(dst); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if want := float32(20) / 32768; dst[0] != want {
		t.Errorf("sample after backward seek = %v, want %v", dst[0], want)
	}

	// past the end clamps to the end
	if err := src.SeekFrame(1 << 40); err != nil {
		t.Fatalf("SeekFrame(past end) error = %v", err)
	}
	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = %d, %v; want 0, EOF", n, err)
	}
}

func TestSource_ShortSoundData(t *testing.T) {
	t.Parallel()

	// header claims 100 frames, only 60 present
	src := newMockSource(1, 16, counting(60), nil)
	src.frames = 100

	buf := make([]float32, 256)
	n, err := src.ReadSamples(buf)
	if n != 60 {
		t.Fatalf("ReadSamples() n = %d, want 60", n)
	}
	if err == nil {
		n, err = src.ReadSamples(buf)
	}
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v; want 0, EOF", n, err)
	}
	if src.Frames() != 60 {
		t.Errorf("Frames() = %d, want 60 after short read", src.Frames())
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newMockSource(1, 16, counting(10), nil)
	src.dec.(*mockAiffReader).readErr = io.ErrUnexpectedEOF

	if _, err := src.ReadSamples(make([]float32, 10)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrNotAiffFile, "not an AIFF file"},
		{ErrUnsupportedBitDepth, "unsupported AIFF bit depth"},
		{ErrUnsupportedAiffLayout, "unsupported AIFF layout"},
		{ErrTruncated, "truncated AIFF file"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	src := newMockSource(2, 16, counting(88200), nil)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if _, err := src.ReadSamples(buf); err == io.EOF {
			_ = src.SeekFrame(0)
		}
	}
}
