// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding checks the RIFF/WAVE container with github.com/go-audio/riff and
// forwards to the data chunk with github.com/go-audio/wav, so the returned
// source can seek to any frame with a single byte offset.
//
// # Supported Formats
//
//   - Integer PCM at 8 (unsigned), 16, 24 and 32 bits
//   - IEEE float at 32 and 64 bits
//   - WAVE_FORMAT_EXTENSIBLE wrapping either of the above
//   - Any channel count and sample rate
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	seeker := source.(audio.Seeker)
//	fmt.Println(seeker.Frames())
//	_ = seeker.SeekFrame(44100)
//
// # Writing WAV Files
//
// WriteWAV16 writes interleaved 16-bit PCM with a canonical 44-byte header:
//
//	err := wav.WriteWAV16(file, 44100, 2, samples)
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not RIFF/WAVE
//   - ErrTruncated: the file ends before the data chunk
//   - ErrNoDataChunk: a complete file without a data chunk
//   - ErrUnsupportedEncoding: compressed or odd sample encodings
//
// A data chunk that declares more bytes than the file holds is clamped to
// the whole frames actually present.
package wav
