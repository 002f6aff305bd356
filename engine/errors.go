// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	// ErrInvalidParameter is returned for a slot index outside [0, NumSlots).
	ErrInvalidParameter = errors.New("invalid effect slot")

	// ErrDevice wraps a failure to open or keep streaming to the output device.
	ErrDevice = errors.New("audio output device failed")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid engine config")

	// ErrClosed is returned by Start after Close.
	ErrClosed = errors.New("engine closed")
)
