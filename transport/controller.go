// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"sync"

	"github.com/ik5/kaossfx/params"
)

// Controller is the control side of the transport. Its methods may be
// called from any goroutine; they only publish through the parameter
// bridge and never wait for the render goroutine.
type Controller struct {
	mu sync.Mutex

	cell   *params.Transport[Request]
	status *Status
	clock  Clock
	wake   func()

	loaded   bool
	duration int64
	intent   State
	seq      uint64
	frame    int64
}

// NewController writes to cell and reads status. wake, if set, is called
// after every new Request so the decode worker can refill early.
func NewController(cell *params.Transport[Request], status *Status, rate int, wake func()) *Controller {
	if wake == nil {
		wake = func() {}
	}
	return &Controller{
		cell:   cell,
		status: status,
		clock:  Clock{Rate: int64(rate)},
		wake:   wake,
	}
}

// reconcile folds an end of stream seen by the render side into intent.
// Callers hold mu.
func (c *Controller) reconcile() {
	if c.intent == Playing && c.status.Ended() == c.seq {
		c.intent = Paused
	}
}

// atEnd reports whether the current request ran to the end. Callers hold mu.
func (c *Controller) atEnd() bool {
	return c.loaded && c.status.Ended() == c.seq
}

// reposition publishes a new Request at frame. Callers hold mu.
func (c *Controller) reposition(frame int64) {
	c.seq++
	c.frame = frame
	c.cell.Request(&Request{Seq: c.seq, Frame: frame, Duration: c.duration})
	c.wake()
}

// Load switches to a source of frames frames, stopped at 0.
func (c *Controller) Load(frames int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loaded = true
	c.duration = max(frames, 0)
	c.intent = Stopped
	// stop first so the old source is never played past the new request
	c.cell.Send(uint8(CmdStop))
	c.reposition(0)
}

// Play starts or resumes playback. At the end of the stream it rewinds
// to 0 first. Without a source it does nothing.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reconcile()
	if !c.loaded || c.intent == Playing {
		return
	}
	if c.atEnd() {
		c.reposition(0)
	}
	c.intent = Playing
	c.cell.Send(uint8(CmdPlay))
}

// Pause holds the position. It does nothing unless playing.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reconcile()
	if c.intent != Playing {
		return
	}
	c.intent = Paused
	c.cell.Send(uint8(CmdPause))
}

// Stop returns to frame 0 and flushes buffered audio.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}
	c.intent = Stopped
	c.reposition(0)
	c.cell.Send(uint8(CmdStop))
}

// SeekFrame moves playback to frame, clamped to [0, duration]. It is
// ignored while stopped.
func (c *Controller) SeekFrame(frame int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reconcile()
	if !c.loaded || c.intent == Stopped {
		return
	}
	c.reposition(max(0, min(frame, c.duration)))
}

// SeekMs is SeekFrame in milliseconds.
func (c *Controller) SeekMs(ms int64) {
	c.mu.Lock()
	dur := c.clock.Ms(c.duration)
	c.mu.Unlock()

	// one past the end still converts to at least the last frame
	ms = max(0, min(ms, dur+1))
	c.SeekFrame(c.clock.Frames(ms))
}

// DurationFrames is 0 before a source loads.
func (c *Controller) DurationFrames() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

func (c *Controller) DurationMs() int64 {
	return c.clock.Ms(c.DurationFrames())
}

// PositionFrames is the requested frame until the render side adopts the
// latest request, and the rendered position after.
func (c *Controller) PositionFrames() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status.Applied() != c.seq {
		return c.frame
	}
	_, pos := c.status.Load()
	return min(pos, c.duration)
}

func (c *Controller) PositionMs() int64 {
	return c.clock.Ms(c.PositionFrames())
}

// State is the transport state as the control side sees it.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reconcile()
	return c.intent
}

func (c *Controller) IsPlaying() bool { return c.State() == Playing }

// Loaded reports whether a source has been loaded.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}
