// SPDX-License-Identifier: EPL-2.0

package kaossfx

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ik5/kaossfx/decode"
	"github.com/ik5/kaossfx/engine"
)

// Host is the boundary a UI drives the engine through. Every call is safe
// from any goroutine and none of them fail: bad input is clamped or
// dropped, and calls before Start or after Stop do nothing.
type Host struct {
	cfg engine.Config
	log *log.Logger

	mu  sync.Mutex
	eng *engine.Engine
}

// NewHost returns a stopped host that will build its engine from cfg.
func NewHost(cfg engine.Config) *Host {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Host{cfg: cfg, log: logger}
}

// Start creates the engine and opens the output device.
func (h *Host) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.eng != nil {
		return nil
	}

	eng, err := engine.New(h.cfg)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := eng.Start(context.Background()); err != nil {
		_ = eng.Close()
		return fmt.Errorf("start: %w", err)
	}
	h.eng = eng
	return nil
}

// Stop closes the device and releases the loaded source.
func (h *Host) Stop() error {
	h.mu.Lock()
	eng := h.eng
	h.eng = nil
	h.mu.Unlock()

	if eng == nil {
		return nil
	}
	if err := eng.Close(); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}

func (h *Host) engine() *engine.Engine {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.eng
}

// Err is the device failure that stopped playback, or nil.
func (h *Host) Err() error {
	if eng := h.engine(); eng != nil {
		return eng.Err()
	}
	return nil
}

// LoadFile loads length bytes at offset from the open file descriptor fd.
// A length of zero or less reads to the end of the file. The host takes
// ownership of fd and closes it when the source is replaced, or right
// away if the load fails. On failure the current source keeps playing.
func (h *Host) LoadFile(fd uintptr, offset, length int64) bool {
	f := os.NewFile(fd, "kaossfx-input")
	if f == nil {
		h.log.Printf("load: invalid file descriptor %d", fd)
		return false
	}

	if length <= 0 {
		info, err := f.Stat()
		if err != nil {
			h.log.Printf("load: %v", err)
			_ = f.Close()
			return false
		}
		length = info.Size() - offset
	}

	if !h.load(f, offset, length, decode.CloseWith(f)) {
		_ = f.Close()
		return false
	}
	return true
}

// LoadReader is LoadFile for any io.ReaderAt. The caller keeps ownership
// of r, which must stay readable until another source replaces it.
func (h *Host) LoadReader(r io.ReaderAt, offset, length int64) bool {
	return h.load(r, offset, length)
}

func (h *Host) load(r io.ReaderAt, offset, length int64, opts ...decode.Option) bool {
	eng := h.engine()
	if eng == nil {
		h.log.Printf("load: engine not started")
		return false
	}

	src, err := decode.Open(r, offset, length, opts...)
	if err != nil {
		h.log.Printf("load: %v", err)
		return false
	}
	eng.Load(src)
	return true
}

func (h *Host) Play() {
	if eng := h.engine(); eng != nil {
		eng.Play()
	}
}

func (h *Host) Pause() {
	if eng := h.engine(); eng != nil {
		eng.Pause()
	}
}

// StopPlayback returns to the start and silences output.
func (h *Host) StopPlayback() {
	if eng := h.engine(); eng != nil {
		eng.StopPlayback()
	}
}

// SeekTo moves to ms, clamped to [0, duration]. It is ignored while
// stopped.
func (h *Host) SeekTo(ms int64) {
	if eng := h.engine(); eng != nil {
		eng.SeekMs(ms)
	}
}

func (h *Host) GetDurationMs() int64 {
	if eng := h.engine(); eng != nil {
		return eng.DurationMs()
	}
	return 0
}

func (h *Host) GetPositionMs() int64 {
	if eng := h.engine(); eng != nil {
		return eng.PositionMs()
	}
	return 0
}

func (h *Host) IsPlaying() bool {
	if eng := h.engine(); eng != nil {
		return eng.IsPlaying()
	}
	return false
}

// SetXY moves a slot's pad. Slots other than 0 and 1 are ignored.
func (h *Host) SetXY(slot int, x, y float32) {
	if eng := h.engine(); eng != nil {
		_ = eng.SetXY(slot, x, y)
	}
}

// SetEffectMode selects a slot's effect, -1 for bypass, and resets its
// state.
func (h *Host) SetEffectMode(slot, mode int) {
	if eng := h.engine(); eng != nil {
		_ = eng.SetMode(slot, mode)
	}
}

func (h *Host) SetWetMix(slot int, mix float32) {
	if eng := h.engine(); eng != nil {
		_ = eng.SetMix(slot, mix)
	}
}

// GetVisualizerData copies up to len(buf) points of the latest snapshot
// and returns how many it wrote, 0 when not playing.
func (h *Host) GetVisualizerData(buf []float32) int {
	if eng := h.engine(); eng != nil {
		return eng.Visualizer(buf)
	}
	return 0
}
