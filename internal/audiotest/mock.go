// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource is a test helper that generates audio data for testing.
// It implements audio.Source and audio.Seeker without importing the audio
// package, which keeps the helper usable from that package's own tests.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	cursor      int
	waveform    func(frame int, channel int) float32
}

// NewMockSource creates a new mock audio source that yields totalFrames
// frames, each sample computed by waveform.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalFrames, 0)
}

// NewSineSource creates a mock source that generates a sine wave on every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }
func (m *MockSource) Frames() int64   { return int64(m.totalFrames) }

// Position returns the next frame ReadSamples will produce.
func (m *MockSource) Position() int { return m.cursor }

// Reset rewinds to the first frame.
func (m *MockSource) Reset() {
	m.cursor = 0
}

// SeekFrame moves the cursor, clamping to [0, Frames()].
func (m *MockSource) SeekFrame(frame int64) error {
	m.cursor = int(max(0, min(frame, int64(m.totalFrames))))
	return nil
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.cursor >= m.totalFrames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalFrames-m.cursor)
	for frame := range frames {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.cursor+frame, ch)
		}
	}
	m.cursor += frames

	if m.cursor >= m.totalFrames {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}
