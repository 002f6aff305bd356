// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/ik5/kaossfx/fx"
	"github.com/ik5/kaossfx/utils"
)

const (
	xyStep   = 0.05
	wetStep  = 0.1
	seekStep = 5000
	meterLen = 12
)

// controls is the part of kaossfx.Host the panel drives.
type controls interface {
	Play()
	Pause()
	StopPlayback()
	SeekTo(ms int64)
	GetDurationMs() int64
	GetPositionMs() int64
	IsPlaying() bool
	SetXY(slot int, x, y float32)
	SetEffectMode(slot, mode int)
	SetWetMix(slot int, mix float32)
	GetVisualizerData(buf []float32) int
}

type slotView struct {
	mode fx.Mode
	x, y float32
	wet  float32
}

// panel mirrors what the user set, since the host only takes input.
type panel struct {
	c     controls
	focus int
	slots [2]slotView
	keys  keyReader
	vis   []float32
}

func newPanel(c controls, a, b slotView) *panel {
	p := &panel{c: c, slots: [2]slotView{a, b}, vis: make([]float32, 256)}
	for i, s := range p.slots {
		c.SetXY(i, s.x, s.y)
		c.SetWetMix(i, s.wet)
		c.SetEffectMode(i, int(s.mode))
	}
	return p
}

// feed handles one input byte and reports whether the user asked to quit.
func (p *panel) feed(b byte) bool {
	key, ok := p.keys.feed(b)
	if !ok {
		return false
	}
	return p.handle(key)
}

func (p *panel) handle(k key) bool {
	s := &p.slots[p.focus]

	switch k {
	case keyQuit:
		return true
	case keyPlayPause:
		if p.c.IsPlaying() {
			p.c.Pause()
		} else {
			p.c.Play()
		}
	case keyStop:
		p.c.StopPlayback()
	case keyBack:
		p.c.SeekTo(p.c.GetPositionMs() - seekStep)
	case keyForward:
		p.c.SeekTo(p.c.GetPositionMs() + seekStep)
	case keyFocus:
		p.focus = 1 - p.focus
	case keyUp, keyDown, keyLeft, keyRight:
		dx, dy := k.delta()
		s.x = utils.Clamp01(s.x + dx)
		s.y = utils.Clamp01(s.y + dy)
		p.c.SetXY(p.focus, s.x, s.y)
	case keyWetDown, keyWetUp:
		d := float32(wetStep)
		if k == keyWetDown {
			d = -d
		}
		s.wet = utils.Clamp01(s.wet + d)
		p.c.SetWetMix(p.focus, s.wet)
	default:
		if m, ok := k.mode(); ok {
			s.mode = m
			p.c.SetEffectMode(p.focus, int(m))
		}
	}
	return false
}

func (p *panel) status() string {
	state := "stopped"
	switch {
	case p.c.IsPlaying():
		state = "playing"
	case p.c.GetPositionMs() > 0:
		state = "paused"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\r%-7s %s / %s %s", state,
		clock(p.c.GetPositionMs()), clock(p.c.GetDurationMs()), p.meter())

	for i, s := range p.slots {
		mark := ' '
		if i == p.focus {
			mark = '>'
		}
		fmt.Fprintf(&b, "  %c%c %-8s x=%.2f y=%.2f wet=%.1f", mark, 'A'+i, s.mode, s.x, s.y, s.wet)
	}
	b.WriteString("\x1b[K")
	return b.String()
}

// meter draws the peak of the latest visualizer snapshot.
func (p *panel) meter() string {
	n := p.c.GetVisualizerData(p.vis)
	var peak float64
	for _, v := range p.vis[:n] {
		peak = max(peak, math.Abs(float64(v)))
	}
	lit := int(math.Round(min(peak, 1) * meterLen))
	return "[" + strings.Repeat("#", lit) + strings.Repeat(".", meterLen-lit) + "]"
}

func clock(ms int64) string {
	s := ms / 1000
	return fmt.Sprintf("%d:%02d.%d", s/60, s%60, ms%1000/100)
}
