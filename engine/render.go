// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"github.com/ik5/kaossfx/fx"
	"github.com/ik5/kaossfx/params"
	"github.com/ik5/kaossfx/transport"
	"github.com/ik5/kaossfx/utils"
)

// renderer is the render goroutine's state.
type renderer struct {
	slots [NumSlots]*fx.Slot
	mode  [NumSlots]params.ModeWord
	xy    [NumSlots]uint64

	state transport.State
	pos   int64
	dur   int64
	seq   uint64
	cmd   params.CommandWord
}

// Render fills out with interleaved stereo and returns the frames written.
// A trailing odd sample is zeroed.
func (e *Engine) Render(out []float32) int {
	r := &e.r
	frames := len(out) / 2
	block := out[:frames*2]
	clear(out[frames*2:])

	e.applyParams()
	e.applyTransport()

	synced := e.ring.Discard(r.seq)
	playing := r.state == transport.Playing

	if playing {
		played := 0
		if synced {
			played = e.ring.Pop(block)
		}
		clear(block[played*2:])
		r.pos = min(r.pos+int64(played), r.dur)

		if played < frames {
			if synced && e.eofSeq.Load() == r.seq && e.ring.Len() == 0 {
				r.state = transport.Paused
				r.pos = r.dur
				e.status.End(r.seq)
			} else {
				e.starved.Add(1)
			}
		}

		for _, s := range r.slots {
			s.Process(block)
		}
		for i, v := range block {
			block[i] = utils.ClampUnit(v)
		}
		e.vis.Write(block)
	} else {
		clear(block)
		e.vis.Clear()
	}

	e.status.Publish(r.state, r.pos, r.seq)
	return frames
}

func (e *Engine) applyParams() {
	r := &e.r
	for i := range e.slots {
		p, s := &e.slots[i], r.slots[i]

		if w := p.XYWord(); w != r.xy[i] {
			r.xy[i] = w
			s.SetXY(params.UnpackXY(w))
		}
		if m := p.Mix(); m != s.Mix() {
			s.SetMix(m)
		}
		// after XY so a new mode starts at the current position
		if w := p.ModeWord(); w != r.mode[i] {
			r.mode[i] = w
			s.SetMode(w.Mode())
		}
	}
}

// applyTransport reads the command before the request; the control side
// publishes in the opposite order, so the request is never older than the
// command it goes with.
func (e *Engine) applyTransport() {
	r := &e.r
	cmd := e.cell.Command()

	if req := e.cell.Pending(); req != nil && req.Seq != r.seq {
		r.seq, r.pos, r.dur = req.Seq, req.Frame, req.Duration
	}

	if cmd == r.cmd {
		return
	}
	r.cmd = cmd

	switch transport.Command(cmd.Cmd()) {
	case transport.CmdPlay:
		if r.seq != 0 {
			r.state = transport.Playing
		}
	case transport.CmdPause:
		if r.state == transport.Playing {
			r.state = transport.Paused
		}
	case transport.CmdStop:
		r.state = transport.Stopped
		r.pos = 0
	}
}
