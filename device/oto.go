// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto allows one context per process.
var (
	otoOnce     sync.Once
	otoCtx      *oto.Context
	otoErr      error
	otoRate     int
	otoChannels int
)

func otoContext(sampleRate, channels, bufferFrames int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   time.Duration(bufferFrames) * time.Second / time.Duration(sampleRate),
		}

		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			otoErr = fmt.Errorf("%w", err)
			return
		}
		<-ready

		otoCtx, otoRate, otoChannels = ctx, sampleRate, channels
	})

	if otoErr != nil {
		return nil, otoErr
	}
	if otoRate != sampleRate || otoChannels != channels {
		return nil, fmt.Errorf("%w: have %d Hz x%d", ErrFormatChanged, otoRate, otoChannels)
	}
	return otoCtx, nil
}

// Oto plays through the system sound card.
type Oto struct {
	mu     sync.Mutex // only for Open and Close
	player *oto.Player
}

// Default returns the sound card output.
func Default() Device { return &Oto{} }

func (o *Oto) Open(r Renderer, sampleRate, channels, bufferFrames int) error {
	if !validFormat(sampleRate, channels, bufferFrames) {
		return ErrInvalidFormat
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		return ErrAlreadyOpen
	}

	ctx, err := otoContext(sampleRate, channels, bufferFrames)
	if err != nil {
		return err
	}

	o.player = ctx.NewPlayer(newPCMReader(r, bufferFrames*channels))
	o.player.SetBufferSize(bufferFrames * channels * 4)
	o.player.Play()
	return nil
}

func (o *Oto) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return nil
	}
	if err := otoCtx.Err(); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := o.player.Err(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
