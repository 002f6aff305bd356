// SPDX-License-Identifier: EPL-2.0

// Package kaossfx plays an audio file through two XY-controlled effect
// slots in real time.
//
// A Host is the whole control surface: load a file, drive the transport,
// move each slot's pad and poll position and a waveform snapshot. Calls
// never block on audio and never fail; a UI is expected to poll every
// 30 ms or so.
//
//	h := kaossfx.NewHost(engine.DefaultConfig())
//	if err := h.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer h.Stop()
//
//	f, _ := os.Open("song.mp3")
//	defer f.Close()
//	info, _ := f.Stat()
//	if !h.LoadReader(f, 0, info.Size()) {
//		log.Fatal("unsupported file")
//	}
//	h.SetEffectMode(0, int(fx.Filter))
//	h.SetXY(0, 0.3, 0.8)
//	h.Play()
//
// # Supported Formats
//
// Files are sniffed, not named: WAV (PCM and float), AIFF, MP3, Ogg Vorbis
// and FLAC. Everything is converted to 44.1 kHz stereo on the fly.
//
// # Offline Rendering
//
// Bounce and BounceWAV run the same effect chain over a whole file without
// an output device.
package kaossfx
