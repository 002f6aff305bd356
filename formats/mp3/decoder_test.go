// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate int
	pcm        []byte // 16-bit little-endian stereo
	offset     int64
	chunk      int // max bytes per Read, 0 means unlimited
	unknownLen bool
	readErr    error
}

func newMockMP3Reader(sampleRate int, samples []int16) *mockMP3Reader {
	pcm := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(s))
	}
	return &mockMP3Reader{sampleRate: sampleRate, pcm: pcm}
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }

func (m *mockMP3Reader) Length() int64 {
	if m.unknownLen {
		return -1
	}
	return int64(len(m.pcm))
}

func (m *mockMP3Reader) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart {
		return 0, errors.New("unsupported whence")
	}
	m.offset = offset
	return offset, nil
}

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if m.offset >= int64(len(m.pcm)) {
		return 0, io.EOF
	}
	if m.chunk > 0 && len(buf) > m.chunk {
		buf = buf[:m.chunk]
	}
	n := copy(buf, m.pcm[m.offset:])
	m.offset += int64(n)
	return n, nil
}

func readAll(t *testing.T, s *source, size int) []float32 {
	t.Helper()

	buf := make([]float32, size)
	var out []float32
	for {
		n, err := s.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("not an mp3 stream, just text")))
	if !errors.Is(err, ErrInvalidStream) {
		t.Errorf("Decode() error = %v, want %v", err, ErrInvalidStream)
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader(nil)); err == nil {
		t.Error("Decode() expected error for empty input")
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	s := newSource(newMockMP3Reader(48000, make([]int16, 2000)))

	if s.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", s.SampleRate())
	}
	if s.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", s.Channels())
	}
	if s.Frames() != 1000 {
		t.Errorf("Frames() = %d, want 1000", s.Frames())
	}

	unknown := newMockMP3Reader(44100, nil)
	unknown.unknownLen = true
	if got := newSource(unknown).Frames(); got != -1 {
		t.Errorf("Frames() with unknown length = %d, want -1", got)
	}
}

func TestSource_ReadSamples_Conversion(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767, -32768, 1}
	s := newSource(newMockMP3Reader(44100, samples))

	got := readAll(t, s, 64)
	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0, -1, 1.0 / 32768.0}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSource_ReadSamples_PartialFrames(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 400)
	for i := range samples {
		samples[i] = int16(i * 10)
	}
	m := newMockMP3Reader(44100, samples)
	m.chunk = 7 // never frame aligned
	s := newSource(m)

	got := readAll(t, s, 32)
	if len(got) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(got), len(samples))
	}
	for i, v := range samples {
		if want := float32(v) / 32768.0; got[i] != want {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestSource_SeekFrame(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 200)
	for i := range samples {
		samples[i] = int16(i)
	}
	m := newMockMP3Reader(44100, samples)
	s := newSource(m)

	if err := s.SeekFrame(40); err != nil {
		t.Fatalf("SeekFrame() error = %v", err)
	}
	if m.offset != 160 {
		t.Errorf("decoder offset = %d, want 160", m.offset)
	}

	buf := make([]float32, 2)
	if _, err := s.ReadSamples(buf); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if want := float32(80) / 32768.0; buf[0] != want {
		t.Errorf("first sample after seek = %v, want %v", buf[0], want)
	}

	if err := s.SeekFrame(10_000); err != nil {
		t.Fatalf("SeekFrame(past end) error = %v", err)
	}
	if m.offset != 400 {
		t.Errorf("decoder offset after clamp = %d, want 400", m.offset)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	m := newMockMP3Reader(44100, make([]int16, 10))
	m.readErr = io.ErrUnexpectedEOF
	s := newSource(m)

	_, err := s.ReadSamples(make([]float32, 10))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestSource_ReadSamples_OddDst(t *testing.T) {
	t.Parallel()

	s := newSource(newMockMP3Reader(44100, make([]int16, 10)))
	if n, err := s.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(len 1) = %d, %v; want 0, nil", n, err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	m := newMockMP3Reader(44100, make([]int16, 44100*2))
	s := newSource(m)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if _, err := s.ReadSamples(buf); err == io.EOF {
			_ = s.SeekFrame(0)
		}
	}
}
