// SPDX-License-Identifier: EPL-2.0

package kaossfx

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/kaossfx/decode"
	"github.com/ik5/kaossfx/formats/wav"
	"github.com/ik5/kaossfx/fx"
	"github.com/ik5/kaossfx/utils"
)

// SlotSettings is one effect slot's controls for an offline bounce.
type SlotSettings struct {
	Mode fx.Mode
	X, Y float32
	Mix  float32
}

// Bypassed is a slot that leaves audio untouched.
var Bypassed = SlotSettings{Mode: fx.Bypass, X: 0.5, Y: 0.5, Mix: 1}

// Bounce renders src from its current position to the end through slot A
// then slot B, and collects the result as interleaved 16-bit stereo PCM at
// decode.SampleRate.
//
// bufferSize is the block size in frames; it sets how often a parameter
// change could take effect and does not change the output for fixed
// settings.
func Bounce(src *decode.Source, slots [2]SlotSettings, bufferSize int) ([]int16, error) {
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	chain := make([]*fx.Slot, len(slots))
	for i, s := range slots {
		chain[i] = fx.NewSlot(decode.SampleRate, bufferSize)
		chain[i].SetXY(s.X, s.Y)
		chain[i].SetMode(s.Mode)
		chain[i].SetMix(s.Mix)
		chain[i].SnapMix()
	}

	remaining := max(src.Frames()-src.Position(), 0)
	pcm16 := make([]int16, 0, remaining*decode.Channels)
	buf := make([]float32, bufferSize*decode.Channels)

	for {
		n, err := src.ReadFrames(buf)
		if n > 0 {
			block := buf[:n*decode.Channels]
			for _, s := range chain {
				s.Process(block)
			}
			for _, x := range block {
				pcm16 = append(pcm16, utils.Float32ToInt16(x))
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bounce at frame %d: %w", src.Position(), err)
		}
	}

	return pcm16, nil
}

// BounceWAV runs Bounce and writes the result to w as a 16-bit WAV file.
func BounceWAV(w io.Writer, src *decode.Source, slots [2]SlotSettings, bufferSize int) error {
	pcm16, err := Bounce(src, slots, bufferSize)
	if err != nil {
		return err
	}
	return wav.WriteWAV16(w, decode.SampleRate, decode.Channels, pcm16)
}
