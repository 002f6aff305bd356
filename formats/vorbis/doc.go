// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis. Samples are already
// float32 in [-1, 1] and interleaved:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// The returned source implements audio.Seeker on top of the Ogg granule
// index, so seeking does not decode the skipped audio.
package vorbis
