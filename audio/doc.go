// SPDX-License-Identifier: EPL-2.0

// Package audio provides low-level audio stream primitives.
//
// This package contains the building blocks the decoder layer chains
// together:
//   - Source interface for audio input, Seeker for length and repositioning
//   - DetectFormat for sniffing a container from its leading bytes
//   - Resampler for sample rate conversion
//   - ChannelMixer for conforming to mono or stereo
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is the foundation of audio processing:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Every format decoder additionally implements Seeker, so a loaded file
// knows its frame count and can jump to any frame:
//
//	type Seeker interface {
//	    Frames() int64
//	    SeekFrame(frame int64) error
//	}
//
// # Resampling
//
// The Resampler changes the sample rate using cubic interpolation. After
// the underlying source is repositioned, Reset drops the interpolation
// window:
//
//	resampler := audio.NewResampler(source, 44100)
//	_ = seeker.SeekFrame(frame)
//	resampler.Reset()
//
// # Channel Mixing
//
// ChannelMixer converts any layout to mono or stereo:
//
//	stereo, err := audio.NewChannelMixer(source, 2)
//
// # Format Registry
//
// The registry maps the keys returned by DetectFormat to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register(audio.FormatWAV, wav.Decoder{})
//	format, _ := audio.DetectFormat(header)
//	decoder, ok := registry.Get(format)
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0].
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available. A call may
// return samples together with io.EOF, so always consume n first:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
