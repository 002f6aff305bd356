// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

// ErrInvalidStream wraps the beep error when the FLAC stream header cannot be read.
var ErrInvalidStream = errors.New("invalid FLAC stream")
