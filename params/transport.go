// SPDX-License-Identifier: EPL-2.0

package params

import "sync/atomic"

// CommandWord is a sequenced command: seq<<8 | cmd. A repeated command
// still produces a new word.
type CommandWord uint64

func (w CommandWord) Cmd() uint8  { return uint8(w) }
func (w CommandWord) Seq() uint64 { return uint64(w) >> 8 }

// Transport is the control-to-render cell for transport commands plus the
// latest immutable reposition request of type R.
//
// Writers store the request before the command, so a reader that loads the
// command first and the request second sees a request at least as new as
// the command.
type Transport[R any] struct {
	cmd atomic.Uint64
	req atomic.Pointer[R]
}

// Send publishes cmd with the next sequence number.
func (t *Transport[R]) Send(cmd uint8) CommandWord {
	for {
		old := t.cmd.Load()
		next := (old>>8+1)<<8 | uint64(cmd)
		if t.cmd.CompareAndSwap(old, next) {
			return CommandWord(next)
		}
	}
}

// Command returns the latest command word. Zero means nothing was sent.
func (t *Transport[R]) Command() CommandWord { return CommandWord(t.cmd.Load()) }

// Request publishes r, which must not be modified afterwards.
func (t *Transport[R]) Request(r *R) { t.req.Store(r) }

// Pending returns the latest request, or nil.
func (t *Transport[R]) Pending() *R { return t.req.Load() }
