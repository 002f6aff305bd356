// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Headless pulls from the Renderer on a wall clock without a sound card,
// at the rate a device of the same format would.
type Headless struct {
	mu     sync.Mutex // only for Open and Close
	cancel context.CancelFunc
	done   chan struct{}

	frames atomic.Int64
}

func NewHeadless() *Headless { return &Headless{} }

func (h *Headless) Open(r Renderer, sampleRate, channels, bufferFrames int) error {
	if !validFormat(sampleRate, channels, bufferFrames) {
		return ErrInvalidFormat
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancel != nil {
		return ErrAlreadyOpen
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.done = make(chan struct{})

	period := time.Duration(bufferFrames) * time.Second / time.Duration(sampleRate)
	buf := make([]float32, bufferFrames*channels)

	go func() {
		defer close(h.done)

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Render(buf)
				h.frames.Add(int64(bufferFrames))
			}
		}
	}()
	return nil
}

// Frames is how many frames have been pulled since the first Open.
func (h *Headless) Frames() int64 { return h.frames.Load() }

func (h *Headless) Err() error { return nil }

func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancel == nil {
		return nil
	}
	h.cancel()
	<-h.done
	h.cancel = nil
	return nil
}
