// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ik5/kaossfx/device"
)

// Config holds the engine's tunables.
type Config struct {
	// BufferFrames is the device callback size asked for.
	BufferFrames int
	// RingFrames is the decoded audio queued ahead of the render callback.
	// It must hold at least two callbacks.
	RingFrames int
	// ReadFrames is how many frames the worker decodes per step.
	ReadFrames int
	// PollInterval is how often the idle worker checks for ring space.
	PollInterval time.Duration
	// WatchInterval is how often the device is checked for stream errors.
	WatchInterval time.Duration

	Device device.Device
	Logger *log.Logger
	// Debug logs dropped control input.
	Debug bool
}

func DefaultConfig() Config {
	return Config{
		BufferFrames:  512,
		RingFrames:    4096,
		ReadFrames:    1024,
		PollInterval:  5 * time.Millisecond,
		WatchInterval: 100 * time.Millisecond,
		Device:        device.Default(),
		Logger:        log.New(os.Stderr, "kaossfx: ", log.LstdFlags),
	}
}

func (c Config) Validate() error {
	switch {
	case c.BufferFrames <= 0:
		return fmt.Errorf("%w: buffer of %d frames", ErrInvalidConfig, c.BufferFrames)
	case c.RingFrames < 2*c.BufferFrames:
		return fmt.Errorf("%w: ring of %d frames holds less than two %d-frame callbacks",
			ErrInvalidConfig, c.RingFrames, c.BufferFrames)
	case c.ReadFrames <= 0 || c.ReadFrames > c.RingFrames:
		return fmt.Errorf("%w: read size %d outside (0, %d]", ErrInvalidConfig, c.ReadFrames, c.RingFrames)
	case c.PollInterval <= 0 || c.WatchInterval <= 0:
		return fmt.Errorf("%w: intervals must be positive", ErrInvalidConfig)
	case c.Device == nil:
		return fmt.Errorf("%w: no output device", ErrInvalidConfig)
	}
	return nil
}
