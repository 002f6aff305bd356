// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	// ErrAlreadyOpen is returned by Open on a device that is already pulling.
	ErrAlreadyOpen = errors.New("audio device already open")

	// ErrInvalidFormat is returned for a non-positive rate, channel count or buffer.
	ErrInvalidFormat = errors.New("invalid audio device format")

	// ErrFormatChanged is returned when the process-wide output context was
	// created with a different rate or channel count.
	ErrFormatChanged = errors.New("audio device format differs from the open context")
)
