// SPDX-License-Identifier: EPL-2.0

package device

// Renderer fills out with interleaved float32 samples. It is called from
// the device's goroutine and must not block.
type Renderer interface {
	Render(out []float32) int
}

// Device is an audio output that pulls from a Renderer once opened.
type Device interface {
	// Open starts pulling blocks of about bufferFrames frames from r.
	Open(r Renderer, sampleRate, channels, bufferFrames int) error
	// Err reports a stream failure after Open, or nil.
	Err() error
	Close() error
}

func validFormat(sampleRate, channels, bufferFrames int) bool {
	return sampleRate > 0 && channels > 0 && bufferFrames > 0
}
