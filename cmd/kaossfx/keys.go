// SPDX-License-Identifier: EPL-2.0

package main

import "github.com/ik5/kaossfx/fx"

type key int

const (
	keyNone key = iota
	keyQuit
	keyPlayPause
	keyStop
	keyBack
	keyForward
	keyFocus
	keyUp
	keyDown
	keyLeft
	keyRight
	keyWetDown
	keyWetUp
	keyMode0 // bypass; keyMode0+n selects mode index n-1
)

func (k key) delta() (float32, float32) {
	switch k {
	case keyUp:
		return 0, xyStep
	case keyDown:
		return 0, -xyStep
	case keyLeft:
		return -xyStep, 0
	case keyRight:
		return xyStep, 0
	}
	return 0, 0
}

func (k key) mode() (fx.Mode, bool) {
	if k < keyMode0 || k > keyMode0+key(fx.NumModes) {
		return fx.Bypass, false
	}
	return fx.ModeFromIndex(int(k-keyMode0) - 1), true
}

// keyReader decodes raw terminal bytes, including ESC [ A..D arrows.
type keyReader struct {
	esc int // bytes of an escape sequence seen so far
}

func (r *keyReader) feed(b byte) (key, bool) {
	switch r.esc {
	case 1:
		if b == '[' {
			r.esc = 2
			return keyNone, false
		}
		r.esc = 0
		return keyQuit, true
	case 2:
		r.esc = 0
		switch b {
		case 'A':
			return keyUp, true
		case 'B':
			return keyDown, true
		case 'C':
			return keyRight, true
		case 'D':
			return keyLeft, true
		}
		return keyNone, false
	}

	switch {
	case b == 0x1b:
		r.esc = 1
		return keyNone, false
	case b == 'q' || b == 3: // ctrl-c in raw mode
		return keyQuit, true
	case b == ' ':
		return keyPlayPause, true
	case b == 's':
		return keyStop, true
	case b == ',':
		return keyBack, true
	case b == '.':
		return keyForward, true
	case b == '\t':
		return keyFocus, true
	case b == '[':
		return keyWetDown, true
	case b == ']':
		return keyWetUp, true
	case b == 'h':
		return keyLeft, true
	case b == 'l':
		return keyRight, true
	case b == 'k':
		return keyUp, true
	case b == 'j':
		return keyDown, true
	case b >= '0' && b <= '0'+byte(fx.NumModes):
		return keyMode0 + key(b-'0'), true
	}
	return keyNone, false
}
