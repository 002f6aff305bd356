// SPDX-License-Identifier: EPL-2.0

// Package fx implements the effect slots of the playback chain.
//
// A Slot runs one of six algorithms over interleaved stereo float32 audio:
//
//	Filter    x: cutoff 20 Hz..20 kHz (exponential)  y: resonance 0..0.95
//	Chorus    x: delay 10..500 ms                    y: feedback 0..0.9
//	Reverb    x: room size                           y: diffusion
//	Phaser    x: LFO 0.05..5 Hz (exponential)        y: sweep depth
//	BitCrush  x: 16..2 bits                          y: hold 1..32 samples
//	RingMod   x: carrier 20 Hz..4 kHz (exponential)  y: depth
//
// Continuous parameters glide per sample so pad motion does not click. A
// mode change clears the algorithm's state. Bypass passes audio through
// untouched.
package fx
