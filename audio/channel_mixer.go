// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer conforms a source to a mono or stereo layout.
//
// Downmix to mono averages every channel. Mono to stereo duplicates the
// channel. More than two channels to stereo averages even channels into the
// left output and odd channels into the right.
type ChannelMixer struct {
	src Source
	out int
	tmp []float32
}

func NewChannelMixer(src Source, outChannels int) (*ChannelMixer, error) {
	if outChannels != 1 && outChannels != 2 {
		return nil, fmt.Errorf("%w: output %d", ErrInvalidChannels, outChannels)
	}
	if src.Channels() < 1 {
		return nil, fmt.Errorf("%w: input %d", ErrInvalidChannels, src.Channels())
	}

	return &ChannelMixer{
		src: src,
		out: outChannels,
		tmp: make([]float32, 8192),
	}, nil
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.out }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) < m.out {
		return 0, nil
	}

	in := m.src.Channels()
	if in == m.out {
		// Pass-through
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.out
	samplesNeeded := frames * in

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, samplesNeeded)
	}
	tmp := m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(tmp)
	if n == 0 {
		return 0, err
	}
	frames = n / in

	switch {
	case m.out == 2 && in == 1:
		for f := range frames {
			v := tmp[f]
			dst[f<<1] = v
			dst[f<<1+1] = v
		}
	case m.out == 1 && in == 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (tmp[idx] + tmp[idx+1]) * 0.5
		}
	case m.out == 1:
		invChannels := float32(1.0) / float32(in)
		for f := range frames {
			sum := float32(0)
			base := f * in
			for c := range in {
				sum += tmp[base+c]
			}
			dst[f] = sum * invChannels
		}
	default:
		left := (in + 1) / 2
		right := in / 2
		invLeft := float32(1.0) / float32(left)
		invRight := float32(1.0) / float32(right)
		for f := range frames {
			var l, r float32
			base := f * in
			for c := 0; c < in; c += 2 {
				l += tmp[base+c]
			}
			for c := 1; c < in; c += 2 {
				r += tmp[base+c]
			}
			dst[f<<1] = l * invLeft
			dst[f<<1+1] = r * invRight
		}
	}

	return frames * m.out, err
}
