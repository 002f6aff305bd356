// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC audio file decoding.
//
// Decoding goes through github.com/gopxl/beep/v2/flac, which wraps
// github.com/mewkiz/flac. The beep stream always yields stereo frames, so
// the returned source reports two channels even for mono files.
//
// The reader passed to Decode must stay open for the life of the source.
// Seeking uses the FLAC seek table when present.
//
//	source, err := flac.Decoder{}.Decode(file)
//	seeker := source.(audio.Seeker)
//	_ = seeker.SeekFrame(seeker.Frames() / 2)
package flac
