// SPDX-License-Identifier: EPL-2.0

package fx

import "strconv"

// Mode selects the algorithm a slot runs. The integer values are the mode
// indexes used at the host boundary.
type Mode int

const (
	Bypass Mode = iota - 1
	Filter
	Chorus
	Reverb
	Phaser
	BitCrush
	RingMod
)

// NumModes is the number of processing modes, not counting Bypass.
const NumModes = int(RingMod) + 1

// ModeFromIndex maps a host mode index to a Mode. Unknown indexes select
// Bypass.
func ModeFromIndex(i int) Mode {
	if i < int(Filter) || i > int(RingMod) {
		return Bypass
	}
	return Mode(i)
}

func (m Mode) String() string {
	switch m {
	case Bypass:
		return "bypass"
	case Filter:
		return "filter"
	case Chorus:
		return "chorus"
	case Reverb:
		return "reverb"
	case Phaser:
		return "phaser"
	case BitCrush:
		return "bitcrush"
	case RingMod:
		return "ringmod"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}
