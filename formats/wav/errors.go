// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedEncoding  = errors.New("unsupported WAV sample encoding")
	ErrNoDataChunk          = errors.New("WAV data chunk not found")
	ErrTruncated            = errors.New("truncated WAV file")
	ErrInvalidChannels      = errors.New("channel count must be positive")
)
