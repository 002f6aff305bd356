// SPDX-License-Identifier: EPL-2.0

package kaossfx_test

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/ik5/kaossfx"
	"github.com/ik5/kaossfx/decode"
	"github.com/ik5/kaossfx/device"
	"github.com/ik5/kaossfx/engine"
	"github.com/ik5/kaossfx/formats/wav"
	"github.com/ik5/kaossfx/fx"
)

// Example_host loads an in-memory file and drives the transport. The
// headless device stands in for a sound card.
func Example_host() {
	cfg := engine.DefaultConfig()
	cfg.Device = device.NewHeadless()
	cfg.Logger = log.New(io.Discard, "", 0)

	h := kaossfx.NewHost(cfg)
	if err := h.Start(); err != nil {
		fmt.Println(err)
		return
	}
	defer h.Stop()

	samples := make([]int16, 44100*2*3) // 3 s of stereo silence
	var file bytes.Buffer
	if err := wav.WriteWAV16(&file, 44100, 2, samples); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("loaded:", h.LoadReader(bytes.NewReader(file.Bytes()), 0, int64(file.Len())))
	fmt.Println("duration ms:", h.GetDurationMs())

	h.SetEffectMode(0, int(fx.Filter))
	h.SetXY(0, 0.2, 0.9)
	h.SetEffectMode(1, int(fx.Reverb))
	h.SetWetMix(1, 0.3)

	h.Play()
	fmt.Println("playing:", h.IsPlaying())

	h.Pause()
	h.SeekTo(1500)
	fmt.Println("position ms:", h.GetPositionMs())

	h.StopPlayback()
	fmt.Println("position after stop:", h.GetPositionMs())
	// Output:
	// loaded: true
	// duration ms: 3000
	// playing: true
	// position ms: 1500
	// position after stop: 0
}

// Example_bounce renders a file through two slots without a device.
func Example_bounce() {
	samples := make([]int16, 44100*2)
	for i := range samples {
		samples[i] = int16(i % 2000)
	}
	var file bytes.Buffer
	if err := wav.WriteWAV16(&file, 44100, 2, samples); err != nil {
		fmt.Println(err)
		return
	}

	src, err := decode.Open(bytes.NewReader(file.Bytes()), 0, int64(file.Len()))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer src.Close()

	var out bytes.Buffer
	err = kaossfx.BounceWAV(&out, src, [2]kaossfx.SlotSettings{
		{Mode: fx.BitCrush, X: 0.5, Y: 0.1, Mix: 1},
		kaossfx.Bypassed,
	}, 1024)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("bytes written:", out.Len())
	// Output: bytes written: 176444
}
