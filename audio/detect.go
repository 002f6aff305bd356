// SPDX-License-Identifier: EPL-2.0

package audio

import "bytes"

// Format keys used by the registry and returned by DetectFormat.
const (
	FormatWAV    = "wav"
	FormatAIFF   = "aiff"
	FormatVorbis = "ogg vorbis"
	FormatFLAC   = "flac"
	FormatMP3    = "mp3"
)

// SniffLen is the number of leading bytes DetectFormat wants to see.
const SniffLen = 12

// DetectFormat identifies the container from the first bytes of a file.
// MP3 is recognised by an ID3v2 tag or an MPEG audio frame sync.
func DetectFormat(header []byte) (string, error) {
	if len(header) < 4 {
		return "", ErrShortHeader
	}

	switch {
	case bytes.HasPrefix(header, []byte("RIFF")):
		if len(header) < 12 {
			return "", ErrShortHeader
		}
		if bytes.Equal(header[8:12], []byte("WAVE")) {
			return FormatWAV, nil
		}
		return "", ErrUnknownFormat
	case bytes.HasPrefix(header, []byte("FORM")):
		if len(header) < 12 {
			return "", ErrShortHeader
		}
		kind := header[8:12]
		if bytes.Equal(kind, []byte("AIFF")) || bytes.Equal(kind, []byte("AIFC")) {
			return FormatAIFF, nil
		}
		return "", ErrUnknownFormat
	case bytes.HasPrefix(header, []byte("OggS")):
		return FormatVorbis, nil
	case bytes.HasPrefix(header, []byte("fLaC")):
		return FormatFLAC, nil
	case bytes.HasPrefix(header, []byte("ID3")):
		return FormatMP3, nil
	case isMPEGFrameSync(header):
		return FormatMP3, nil
	}

	return "", ErrUnknownFormat
}

// isMPEGFrameSync checks for an 11-bit frame sync followed by a valid
// version, layer III, bitrate and sample rate index.
func isMPEGFrameSync(h []byte) bool {
	if h[0] != 0xFF || h[1]&0xE0 != 0xE0 {
		return false
	}
	version := (h[1] >> 3) & 0x03
	layer := (h[1] >> 1) & 0x03
	bitrate := h[2] >> 4
	rate := (h[2] >> 2) & 0x03

	return version != 0x01 && layer == 0x01 && bitrate != 0x0F && rate != 0x03
}
