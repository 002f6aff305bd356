// SPDX-License-Identifier: EPL-2.0

package transport

import "fmt"

// State is the playback state.
type State uint8

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Command is a transport command sent to the render goroutine.
type Command uint8

const (
	CmdNone Command = iota
	CmdPlay
	CmdPause
	CmdStop
)

// Request repositions playback. Every Load, Stop and Seek publishes a new
// Request with a higher Seq; the decode worker flushes the ring for it and
// the render goroutine adopts Frame and Duration.
type Request struct {
	Seq      uint64
	Frame    int64
	Duration int64
}
