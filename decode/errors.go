// SPDX-License-Identifier: EPL-2.0

package decode

import "errors"

var (
	// ErrUnsupportedFormat indicates the container or codec could not be parsed.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrTruncated indicates the input ran out of bytes inside a header or frame.
	ErrTruncated = errors.New("truncated audio data")

	// ErrIO indicates the underlying handle failed to read.
	ErrIO = errors.New("audio read failed")
)
