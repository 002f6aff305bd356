// SPDX-License-Identifier: EPL-2.0

// Command kaossfx plays an audio file through two XY effect slots from the
// terminal, or bounces it through them to a WAV file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/ik5/kaossfx"
	"github.com/ik5/kaossfx/decode"
	"github.com/ik5/kaossfx/device"
	"github.com/ik5/kaossfx/engine"
	"github.com/ik5/kaossfx/fx"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

const statusEvery = 30 * time.Millisecond

type options struct {
	bufferFrames int
	ringFrames   int
	bounce       string
	headless     bool
	debug        bool
	slots        [2]slotView
	file         string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var (
		o            options
		modeA, modeB int
	)

	cfg := engine.DefaultConfig()
	fs := flag.NewFlagSet("kaossfx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.bufferFrames, "buffer", cfg.BufferFrames, "device callback size in frames")
	fs.IntVar(&o.ringFrames, "ring", cfg.RingFrames, "decoded frames queued ahead of playback")
	fs.StringVar(&o.bounce, "bounce", "", "render to this WAV file instead of playing")
	fs.BoolVar(&o.headless, "headless", false, "pull audio on a timer instead of a sound card")
	fs.BoolVar(&o.debug, "debug", false, "log dropped control input")
	fs.IntVar(&modeA, "mode-a", -1, "slot A effect: -1 bypass, 0 filter, 1 chorus, 2 reverb, 3 phaser, 4 bitcrush, 5 ringmod")
	fs.IntVar(&modeB, "mode-b", -1, "slot B effect, as -mode-a")
	for i, name := range []string{"a", "b"} {
		s := &o.slots[i]
		fs.Var(unitFlag{&s.x}, "x-"+name, "slot "+name+" pad x in [0,1] (default 0.5)")
		fs.Var(unitFlag{&s.y}, "y-"+name, "slot "+name+" pad y in [0,1] (default 0.5)")
		fs.Var(unitFlag{&s.wet}, "wet-"+name, "slot "+name+" wet mix in [0,1] (default 1)")
		s.x, s.y, s.wet = 0.5, 0.5, 1
	}

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: kaossfx [flags] file")
		fmt.Fprintln(stderr, "Keys: space play/pause, s stop, , . seek, tab slot, 0-6 mode, arrows XY, [ ] wet, q quit")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return o, errors.New("expected one input file")
	}

	o.file = fs.Arg(0)
	o.slots[0].mode = fx.ModeFromIndex(modeA)
	o.slots[1].mode = fx.ModeFromIndex(modeB)
	return o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if o.bounce != "" {
		err = bounce(o)
	} else {
		err = play(o)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func bounce(o options) error {
	in, err := os.Open(o.file)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	src, err := decode.Open(in, 0, info.Size())
	if err != nil {
		return fmt.Errorf("decode %s: %w", o.file, err)
	}
	defer src.Close()

	out, err := os.Create(o.bounce)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	var settings [2]kaossfx.SlotSettings
	for i, s := range o.slots {
		settings[i] = kaossfx.SlotSettings{Mode: s.mode, X: s.x, Y: s.y, Mix: s.wet}
	}
	if err := kaossfx.BounceWAV(out, src, settings, o.bufferFrames); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	log.Printf("bounced %s (%s) to %s", o.file, src.Format(), o.bounce)
	return nil
}

func play(o options) error {
	cfg := engine.DefaultConfig()
	cfg.BufferFrames = o.bufferFrames
	cfg.RingFrames = o.ringFrames
	cfg.Debug = o.debug
	if o.headless {
		cfg.Device = device.NewHeadless()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	in, err := os.Open(o.file)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}

	h := kaossfx.NewHost(cfg)
	if err := h.Start(); err != nil {
		return err
	}
	defer h.Stop()

	if !h.LoadReader(in, 0, info.Size()) {
		return fmt.Errorf("%s: unsupported or unreadable audio", o.file)
	}

	p := newPanel(h, o.slots[0], o.slots[1])
	h.Play()

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw terminal: %w", err)
		}
		defer term.Restore(fd, state)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	input := make(chan byte, 16)
	go readKeys(os.Stdin, input)

	g, ctx := errgroup.WithContext(ctx)
	quit := errors.New("quit")

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case b, ok := <-input:
				if !ok || p.feed(b) {
					return quit
				}
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(statusEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				fmt.Print(p.status())
				if err := h.Err(); err != nil {
					return err
				}
			}
		}
	})

	err = g.Wait()
	fmt.Print("\r\n")
	if errors.Is(err, quit) {
		return nil
	}
	return err
}

// readKeys forwards stdin bytes until it fails. It is not stopped on exit;
// the blocked Read ends with the process.
func readKeys(r io.Reader, out chan<- byte) {
	defer close(out)
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			out <- b
		}
		if err != nil {
			return
		}
	}
}
