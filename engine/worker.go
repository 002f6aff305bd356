// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/kaossfx/decode"
	"github.com/ik5/kaossfx/transport"
)

const starvationReportEvery = time.Second

// worker is the decode goroutine's state.
type worker struct {
	src *decode.Source
	seq uint64
	eof bool
	buf []float32

	starved    uint64
	lastReport time.Time
}

func newWorker(readFrames int) worker {
	return worker{buf: make([]float32, readFrames*decode.Channels)}
}

func (e *Engine) runWorker(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for {
		for e.step() {
			if ctx.Err() != nil {
				return
			}
		}
		e.reportStarvation(time.Now())

		select {
		case <-ctx.Done():
			return
		case <-e.wakeCh:
		case <-ticker.C:
		}
	}
}

// step applies a pending reposition and decodes one chunk into the ring.
// It reports whether it made progress.
func (e *Engine) step() bool {
	w := &e.w
	progressed := false

	if req := e.cell.Pending(); req != nil && req.Seq != w.seq {
		e.reposition(req)
		progressed = true
	}

	if w.src == nil || w.eof {
		return progressed
	}

	free := e.ring.Free()
	if free == 0 {
		return progressed
	}

	want := min(free, len(w.buf)/decode.Channels)
	n, err := w.src.ReadFrames(w.buf[:want*decode.Channels])
	if n > 0 {
		e.ring.Push(w.buf[:n*decode.Channels])
	}
	if err != nil {
		if !errors.Is(err, io.EOF) {
			e.log.Printf("decode at frame %d: %v", w.src.Position(), err)
		}
		w.eof = true
		e.eofSeq.Store(w.seq)
	}
	return progressed || n > 0
}

func (e *Engine) reposition(req *transport.Request) {
	w := &e.w

	if src := e.inbox.Swap(nil); src != nil {
		if w.src != nil {
			if err := w.src.Close(); err != nil {
				e.log.Printf("close previous source: %v", err)
			}
		}
		w.src = src
	}

	w.seq = req.Seq
	w.eof = false
	if w.src != nil {
		if err := w.src.Seek(req.Frame); err != nil {
			e.log.Printf("seek to frame %d: %v", req.Frame, err)
			w.eof = true
		}
	}

	// everything pushed from here on belongs to req
	e.ring.Mark(w.seq)
	if w.eof {
		e.eofSeq.Store(w.seq)
	}
}

func (e *Engine) reportStarvation(now time.Time) {
	w := &e.w
	w.starved += e.starved.Swap(0)
	if w.starved == 0 || now.Sub(w.lastReport) < starvationReportEvery {
		return
	}
	e.log.Printf("render starved for %d callbacks", w.starved)
	w.starved = 0
	w.lastReport = now
}

func (e *Engine) watchDevice(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.WatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.cfg.Device.Err(); err != nil {
				err = fmt.Errorf("%w: %w", ErrDevice, err)
				e.log.Printf("%v; stopping playback", err)
				e.ctrl.Stop()
				e.devErr.Store(&err)
				return
			}
		}
	}
}
