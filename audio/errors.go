// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnknownFormat is returned by DetectFormat when no known container
	// signature matches.
	ErrUnknownFormat = errors.New("unknown audio container")

	// ErrShortHeader is returned by DetectFormat when fewer bytes than a
	// container signature were supplied.
	ErrShortHeader = errors.New("header too short to identify format")

	// ErrNotSeekable is returned when a seek is requested on a source that
	// does not implement Seeker.
	ErrNotSeekable = errors.New("source is not seekable")

	// ErrInvalidChannels is returned for a channel layout that cannot be mixed.
	ErrInvalidChannels = errors.New("unsupported channel count")
)
