// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3. The decoder always
// produces 16-bit stereo, so the source reports two channels and converts
// samples to float32 in [-1, 1].
//
// The returned source implements audio.Seeker. Frames reports -1 when the
// stream length is unknown.
//
//	source, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // errors.Is(err, mp3.ErrInvalidStream)
//	}
//	_ = source.(audio.Seeker).SeekFrame(44100)
package mp3
