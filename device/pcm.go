// SPDX-License-Identifier: EPL-2.0

package device

import "unsafe"

// pcmReader adapts a Renderer to the io.Reader of little-endian float32
// bytes that a player pulls from.
type pcmReader struct {
	r   Renderer
	buf []float32
}

func newPCMReader(r Renderer, samples int) *pcmReader {
	return &pcmReader{r: r, buf: make([]float32, samples)}
}

func (p *pcmReader) Read(b []byte) (int, error) {
	n := len(b) / 4
	if n == 0 {
		clear(b)
		return len(b), nil
	}

	// grows only if the player asks for more than the configured buffer
	if cap(p.buf) < n {
		p.buf = make([]float32, n)
	}
	samples := p.buf[:n]
	p.r.Render(samples)

	copy(b, unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), n*4))
	clear(b[n*4:])
	return len(b), nil
}
