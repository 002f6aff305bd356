// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/ik5/kaossfx/decode"
	"github.com/ik5/kaossfx/fx"
	"github.com/ik5/kaossfx/params"
	"github.com/ik5/kaossfx/ringbuf"
	"github.com/ik5/kaossfx/transport"
	"github.com/ik5/kaossfx/visualizer"
)

// NumSlots is the number of effect slots, processed A then B.
const NumSlots = 2

// Engine plays one decoded source through two effect slots.
//
// Control methods may be called from any goroutine. Render is called by
// the output device and never blocks or allocates. The decode worker
// started by Start is the only goroutine that touches the source.
type Engine struct {
	cfg Config
	log *log.Logger

	ring   *ringbuf.Ring
	slots  [NumSlots]params.Slot
	cell   params.Transport[transport.Request]
	status transport.Status
	ctrl   *transport.Controller
	vis    visualizer.Snapshot

	// inbox holds a loaded source until the worker adopts it.
	inbox   atomic.Pointer[decode.Source]
	eofSeq  atomic.Uint64
	starved atomic.Uint64
	devErr  atomic.Pointer[error]
	wakeCh  chan struct{}

	loadMu sync.Mutex

	mu     sync.Mutex // lifecycle
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool

	w worker   // owned by the worker goroutine
	r renderer // owned by the render goroutine
}

// New builds an idle engine. Call Start to open the device.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}

	ring, err := ringbuf.New(cfg.RingFrames, decode.Channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	e := &Engine{
		cfg:    cfg,
		log:    cfg.Logger,
		ring:   ring,
		wakeCh: make(chan struct{}, 1),
		w:      newWorker(cfg.ReadFrames),
	}
	e.ctrl = transport.NewController(&e.cell, &e.status, decode.SampleRate, e.wake)

	for i := range e.slots {
		e.r.slots[i] = fx.NewSlot(decode.SampleRate, max(cfg.BufferFrames, 1024))
		e.slots[i].SetXY(0.5, 0.5)
		e.slots[i].SetMix(1)
		e.slots[i].SetMode(fx.Bypass)
	}
	return e, nil
}

func (e *Engine) wake() {
	select {
	case e.wakeCh <- struct{}{}:
	default:
	}
}

// Start opens the output device and starts the decode worker. Calling it
// on a running engine does nothing.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if e.cancel != nil {
		return nil
	}

	if err := e.cfg.Device.Open(e, decode.SampleRate, decode.Channels, e.cfg.BufferFrames); err != nil {
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	e.wg.Add(2)
	go func() {
		defer e.wg.Done()
		e.runWorker(ctx)
	}()
	go func() {
		defer e.wg.Done()
		e.watchDevice(ctx)
	}()
	return nil
}

// Close stops the worker, closes the device and releases the sources.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	var errs []error
	if e.cancel != nil {
		e.cancel()
		e.wg.Wait()
		e.cancel = nil
		if err := e.cfg.Device.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrDevice, err))
		}
	}

	if src := e.inbox.Swap(nil); src != nil {
		errs = append(errs, src.Close())
	}
	if e.w.src != nil {
		errs = append(errs, e.w.src.Close())
		e.w.src = nil
	}
	return errors.Join(errs...)
}

// Err is the device failure that stopped playback, or nil.
func (e *Engine) Err() error {
	if p := e.devErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Load makes src the current source, stopped at 0. The previous source is
// closed once the worker lets go of it. The engine owns src afterwards.
func (e *Engine) Load(src *decode.Source) {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	if old := e.inbox.Swap(src); old != nil {
		// never reached the worker
		if err := old.Close(); err != nil {
			e.log.Printf("close skipped source: %v", err)
		}
	}
	e.ctrl.Load(src.Frames())
}

func (e *Engine) Play()                  { e.ctrl.Play() }
func (e *Engine) Pause()                 { e.ctrl.Pause() }
func (e *Engine) StopPlayback()          { e.ctrl.Stop() }
func (e *Engine) SeekMs(ms int64)        { e.ctrl.SeekMs(ms) }
func (e *Engine) DurationMs() int64      { return e.ctrl.DurationMs() }
func (e *Engine) PositionMs() int64      { return e.ctrl.PositionMs() }
func (e *Engine) IsPlaying() bool        { return e.ctrl.IsPlaying() }
func (e *Engine) State() transport.State { return e.ctrl.State() }

func (e *Engine) slot(i int) (*params.Slot, error) {
	if i < 0 || i >= NumSlots {
		if e.cfg.Debug {
			e.log.Printf("dropped control for slot %d", i)
		}
		return nil, fmt.Errorf("%w: %d", ErrInvalidParameter, i)
	}
	return &e.slots[i], nil
}

// SetXY moves slot's pad. x and y are clamped to [0,1].
func (e *Engine) SetXY(slot int, x, y float32) error {
	s, err := e.slot(slot)
	if err != nil {
		return err
	}
	s.SetXY(x, y)
	return nil
}

// SetMode selects slot's effect by index, -1 for bypass. Unknown indexes
// select bypass. The slot's DSP state is reset even when the mode repeats.
func (e *Engine) SetMode(slot, mode int) error {
	s, err := e.slot(slot)
	if err != nil {
		return err
	}
	s.SetMode(fx.ModeFromIndex(mode))
	return nil
}

// Mode is the last mode selected for slot.
func (e *Engine) Mode(slot int) (fx.Mode, error) {
	s, err := e.slot(slot)
	if err != nil {
		return fx.Bypass, err
	}
	return s.Mode(), nil
}

// SetMix sets slot's wet amount, clamped to [0,1].
func (e *Engine) SetMix(slot int, mix float32) error {
	s, err := e.slot(slot)
	if err != nil {
		return err
	}
	s.SetMix(mix)
	return nil
}

// Visualizer copies the latest snapshot into dst. It returns 0 unless
// playing.
func (e *Engine) Visualizer(dst []float32) int {
	if !e.ctrl.IsPlaying() {
		return 0
	}
	return e.vis.Read(dst)
}
