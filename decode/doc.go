// SPDX-License-Identifier: EPL-2.0

// Package decode opens an audio file by byte range and exposes it as a
// seekable stream of 44.1 kHz interleaved stereo float32 frames.
//
// The container is sniffed from the first bytes, decoded by the matching
// formats/* package, then passed through audio.ChannelMixer and, when the
// file rate differs, audio.Resampler.
//
// Failures are reported as one of ErrUnsupportedFormat, ErrTruncated or
// ErrIO, each wrapping the decoder's own error:
//
//	src, err := decode.Open(file, 0, size, decode.CloseWith(file))
//	switch {
//	case errors.Is(err, decode.ErrTruncated):
//	    // the file is cut short
//	case err != nil:
//	    // ...
//	}
package decode
