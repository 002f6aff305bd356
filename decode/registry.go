// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"github.com/ik5/kaossfx/audio"
	"github.com/ik5/kaossfx/formats/aiff"
	"github.com/ik5/kaossfx/formats/flac"
	"github.com/ik5/kaossfx/formats/mp3"
	"github.com/ik5/kaossfx/formats/vorbis"
	"github.com/ik5/kaossfx/formats/wav"
)

// DefaultRegistry returns a registry holding every bundled format decoder.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(audio.FormatWAV, wav.Decoder{})
	reg.Register(audio.FormatAIFF, aiff.Decoder{})
	reg.Register(audio.FormatVorbis, vorbis.Decoder{})
	reg.Register(audio.FormatFLAC, flac.Decoder{})
	reg.Register(audio.FormatMP3, mp3.Decoder{})
	return reg
}
