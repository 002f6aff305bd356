// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ik5/kaossfx/audio"
)

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
		samples    int
	}{
		{name: "mono", sampleRate: 8000, channels: 1, samples: 5},
		{name: "stereo", sampleRate: 44100, channels: 2, samples: 8},
		{name: "empty", sampleRate: 16000, channels: 2, samples: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := new(bytes.Buffer)
			if err := WriteWAV16(buf, tt.sampleRate, tt.channels, make([]int16, tt.samples)); err != nil {
				t.Fatalf("WriteWAV16() error = %v", err)
			}

			data := buf.Bytes()
			if len(data) != 44+2*tt.samples {
				t.Fatalf("file size = %d, want %d", len(data), 44+2*tt.samples)
			}
			if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
				t.Errorf("markers = %q %q", data[0:4], data[8:12])
			}

			le := binary.LittleEndian
			checks := []struct {
				field string
				got   uint32
				want  uint32
			}{
				{"riff size", le.Uint32(data[4:8]), uint32(36 + 2*tt.samples)},
				{"format", uint32(le.Uint16(data[20:22])), 1},
				{"channels", uint32(le.Uint16(data[22:24])), uint32(tt.channels)},
				{"sample rate", le.Uint32(data[24:28]), uint32(tt.sampleRate)},
				{"byte rate", le.Uint32(data[28:32]), uint32(tt.sampleRate * tt.channels * 2)},
				{"block align", uint32(le.Uint16(data[32:34])), uint32(tt.channels * 2)},
				{"bits", uint32(le.Uint16(data[34:36])), 16},
				{"data size", le.Uint32(data[40:44]), uint32(2 * tt.samples)},
			}
			for _, c := range checks {
				if c.got != c.want {
					t.Errorf("%s = %d, want %d", c.field, c.got, c.want)
				}
			}
		})
	}
}

func TestWriteWAV16_InvalidChannels(t *testing.T) {
	t.Parallel()

	if err := WriteWAV16(new(bytes.Buffer), 8000, 0, nil); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("WriteWAV16(channels=0) error = %v, want %v", err, ErrInvalidChannels)
	}
}

func TestWriteWAV16_RoundTrip(t *testing.T) {
	t.Parallel()

	// longer than one write chunk
	samples := make([]int16, 20000)
	for i := range samples {
		samples[i] = int16(i*7 - 30000)
	}

	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, 48000, 2, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := src.(audio.Seeker).Frames(); got != 10000 {
		t.Errorf("Frames() = %d, want 10000", got)
	}

	got := decodeAll(t, src)
	if len(got) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(samples))
	}
	for i, s := range samples {
		if back := int16(got[i] * 32768); back != s {
			t.Fatalf("sample %d = %d, want %d", i, back, s)
		}
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriteWAV16_WriteError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	if err := WriteWAV16(failingWriter{boom}, 8000, 1, []int16{1}); !errors.Is(err, boom) {
		t.Errorf("WriteWAV16() error = %v, want %v", err, boom)
	}
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 88200)

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		var buf bytes.Buffer
		_ = WriteWAV16(&buf, 44100, 2, samples)
	}
}
